package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"menvy/internal/catalog/repository"
	"menvy/internal/catalog/service"
	"menvy/internal/catalog/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo)
	uc := usecase.NewCatalogUseCase(svc)
	return NewController(uc, logger)
}
