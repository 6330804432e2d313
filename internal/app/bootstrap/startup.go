// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"strings"

	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return ensureAdmin(ctx, deps, appCfg, logger)
}

// ensureAdmin creates the bootstrap admin when one is configured and no
// admin exists yet. An existing admin is never touched.
func ensureAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	email := strings.TrimSpace(appCfg.BootstrapAdminEmail)
	if email == "" {
		return nil
	}
	e, created, err := employeestore.New(deps.OfficeHubMongoDatabase).
		EnsureAdmin(ctx, appCfg.BootstrapAdminName, email, appCfg.BootstrapAdminPassword)
	if err != nil {
		logger.Error("bootstrap admin failed", zap.Error(err))
		return err
	}
	if created {
		logger.Info("bootstrap admin created",
			zap.String("email", e.Personal.Email),
			zap.String("login_code", e.LoginCode))
	}
	return nil
}
