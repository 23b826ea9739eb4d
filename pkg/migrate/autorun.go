package migrate

import (
	"context"
	"fmt"

	"github.com/parksense/parksense-backend/pkg/config"
	"github.com/parksense/parksense-backend/pkg/db"
	"github.com/parksense/parksense-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations at startup when the auto-migrate
// flag is set. Intended for dev environments; production deploys run the
// migrate command explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, client *db.Client, logg *logger.Logger) error {
	if cfg == nil || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if !cfg.App.IsDev() {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("unwrap sql db: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "migrate.autorun")
	}
	return Run(ctx, sqlDB, DefaultDir, "up")
}
