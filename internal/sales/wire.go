package sales

import (
	"database/sql"

	"go.uber.org/zap"

	productrepo "menvy/internal/catalog/repository"
	"menvy/internal/config"
	"menvy/internal/docnum"
	"menvy/internal/sales/controller"
	salesrepo "menvy/internal/sales/repository"
	"menvy/internal/sales/service"
	"menvy/internal/sales/usecase"
)

func NewModule(db *sql.DB, numbers docnum.Generator, cfg *config.Config, logger *zap.Logger) *controller.SalesController {
	productRepo := productrepo.NewMySQLRepository(db)
	saleRepo := salesrepo.NewMySQLSaleRepository(db)

	recorder := service.NewRecorderService(
		db,
		productRepo,
		saleRepo,
		numbers,
		logger,
		cfg.Sales.TxTimeout,
		cfg.Sales.MaxNumberAttempts,
	)

	uc := usecase.NewRecordSaleUseCase(productRepo, recorder, saleRepo, logger)

	return controller.NewSalesController(uc, logger)
}
