package settings

import (
	"database/sql"

	"go.uber.org/zap"

	"menvy/internal/settings/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLSettingsRepository(db)
	return NewController(repo, logger)
}
