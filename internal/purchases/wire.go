package purchases

import (
	"database/sql"

	"go.uber.org/zap"

	productrepo "menvy/internal/catalog/repository"
	"menvy/internal/config"
	"menvy/internal/docnum"
	"menvy/internal/purchases/controller"
	purchaserepo "menvy/internal/purchases/repository"
	"menvy/internal/purchases/service"
	"menvy/internal/purchases/usecase"
)

func NewModule(db *sql.DB, numbers docnum.Generator, cfg *config.Config, logger *zap.Logger) *controller.PurchasesController {
	productRepo := productrepo.NewMySQLRepository(db)
	purchaseRepo := purchaserepo.NewMySQLPurchaseRepository(db)

	recorder := service.NewRecorderService(
		db,
		productRepo,
		purchaseRepo,
		numbers,
		logger,
		cfg.Purchases.TxTimeout,
		cfg.Purchases.MaxNumberAttempts,
	)

	uc := usecase.NewRecordPurchaseUseCase(
		productRepo,
		recorder,
		purchaseRepo,
		logger,
		cfg.Purchases.MaxRetryAttempts,
	)

	return controller.NewPurchasesController(uc, logger)
}
