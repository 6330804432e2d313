// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/ratelimit"
	"github.com/dalemusser/officehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for OfficeHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: OFFICEHUB_MONGO_URI, OFFICEHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "officehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "officehub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Session cookie lifetime (e.g., 12h, 30m)"},

	// Uploads
	{Name: "upload_dir", Default: "./uploads", Desc: "Directory uploaded files are stored in"},
	{Name: "upload_url_prefix", Default: "/uploads", Desc: "URL prefix for serving uploaded files"},
	{Name: "max_upload_mb", Default: 10, Desc: "Maximum size of one uploaded file in MB"},

	{Name: "cors_allowed_origins", Default: "", Desc: "Comma-separated origins allowed to call the API"},

	// Rate limits
	{Name: "login_rate_limit", Default: ratelimit.DefaultCodeRate, Desc: "Login attempts allowed per login code (ulule format, e.g. 5-M)"},
	{Name: "login_ip_rate_limit", Default: "20-M", Desc: "Login requests allowed per client IP (ulule format)"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Admin bootstrap
	{Name: "bootstrap_admin_name", Default: "Administrator", Desc: "Name of the admin created on first start"},
	{Name: "bootstrap_admin_email", Default: "", Desc: "Email of the admin created when none exists"},
	{Name: "bootstrap_admin_password", Default: "", Desc: "Password of the admin created when none exists"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// WAFFLE_* and OFFICEHUB_* environment variables and command-line flags,
// merged with precedence flags > env > files > defaults. Database and
// request timeouts are read from TIMEOUT_* here as well so the connect
// hook already sees them.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "OFFICEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 12*time.Hour),

		UploadDir:       appValues.String("upload_dir"),
		UploadURLPrefix: appValues.String("upload_url_prefix"),
		MaxUploadMB:     int64(appValues.Int("max_upload_mb")),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		LoginRateLimit:   appValues.String("login_rate_limit"),
		LoginIPRateLimit: appValues.String("login_ip_rate_limit"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		BootstrapAdminName:     appValues.String("bootstrap_admin_name"),
		BootstrapAdminEmail:    appValues.String("bootstrap_admin_email"),
		BootstrapAdminPassword: appValues.String("bootstrap_admin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// OfficeHub checks the MongoDB URI and rate strings up front so a typo
// fails startup instead of the first login, and refuses the built-in
// session key outside development.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return errors.New("mongo_database must be set")
	}

	for name, rate := range map[string]string{
		"login_rate_limit":    appCfg.LoginRateLimit,
		"login_ip_rate_limit": appCfg.LoginIPRateLimit,
	} {
		if rate == "" {
			continue
		}
		if _, err := limiter.NewRateFromFormatted(rate); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, rate, err)
		}
	}

	if appCfg.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", appCfg.MaxUploadMB)
	}
	if !strings.HasPrefix(appCfg.UploadURLPrefix, "/") {
		return fmt.Errorf("upload_url_prefix must start with '/', got %q", appCfg.UploadURLPrefix)
	}

	for name, mode := range map[string]string{
		"audit_log_auth":  appCfg.AuditLogAuth,
		"audit_log_admin": appCfg.AuditLogAdmin,
	} {
		if !auditlog.ValidMode(mode) {
			return fmt.Errorf("%s must be all, db, log or off, got %q", name, mode)
		}
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey || len(appCfg.SessionKey) < 32 {
			return errors.New("session_key must be set to a strong secret (32+ chars) in production")
		}
	}
	if (appCfg.BootstrapAdminEmail == "") != (appCfg.BootstrapAdminPassword == "") {
		return errors.New("bootstrap_admin_email and bootstrap_admin_password must be set together")
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
