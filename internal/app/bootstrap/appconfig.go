// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level, body limits); everything
// the back office itself needs lives here and is passed to every lifecycle
// hook.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: officehub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Uploaded files (resumes, vacancy documents, rules and plans)
	UploadDir       string // Directory files are written under
	UploadURLPrefix string // URL prefix files are served from (e.g., /uploads)
	MaxUploadMB     int64  // Per-file size limit

	// Browser clients allowed to call the API with credentials
	CORSAllowedOrigins []string

	// Rate limits in ulule format ("10-M", "5-H")
	LoginRateLimit   string // per login code
	LoginIPRateLimit string // per client IP on POST /api/auth/login

	// Audit logging: "all", "db", "log" or "off"
	AuditLogAuth  string
	AuditLogAdmin string

	// First admin, created on startup when no admin exists
	BootstrapAdminName     string
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}
