package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"menvy/internal/catalog"
	"menvy/internal/infrastructure/metrics"
	purchasesctrl "menvy/internal/purchases/controller"
	salesctrl "menvy/internal/sales/controller"
	"menvy/internal/settings"
)

func NewRouter(
	catalogCtrl *catalog.Controller,
	salesCtrl *salesctrl.SalesController,
	purchasesCtrl *purchasesctrl.PurchasesController,
	settingsCtrl *settings.Controller,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogCtrl.HandleListProducts)
			r.Post("/", catalogCtrl.HandleCreateProduct)
			r.Get("/low-stock", catalogCtrl.HandleListLowStock)
			r.Get("/{productId}", catalogCtrl.HandleGetProduct)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", salesCtrl.HandleListSales)
			r.Post("/", salesCtrl.HandleRecordSale)
			r.Delete("/{saleId}", salesCtrl.HandleDeleteSale)
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Get("/", purchasesCtrl.HandleListPurchases)
			r.Post("/", purchasesCtrl.HandleRecordPurchase)
			r.Delete("/{purchaseId}", purchasesCtrl.HandleDeletePurchase)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsCtrl.HandleGetSettings)
			r.Put("/", settingsCtrl.HandleUpdateSettings)
		})
	})

	logger.Info("router configured")

	return r
}
