// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	assignmentsfeature "github.com/dalemusser/officehub/internal/app/features/assignments"
	candidatesfeature "github.com/dalemusser/officehub/internal/app/features/candidates"
	contactsfeature "github.com/dalemusser/officehub/internal/app/features/contacts"
	dashboardfeature "github.com/dalemusser/officehub/internal/app/features/dashboard"
	documentsfeature "github.com/dalemusser/officehub/internal/app/features/documents"
	employeesfeature "github.com/dalemusser/officehub/internal/app/features/employees"
	errorsfeature "github.com/dalemusser/officehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/officehub/internal/app/features/health"
	loginfeature "github.com/dalemusser/officehub/internal/app/features/login"
	vacanciesfeature "github.com/dalemusser/officehub/internal/app/features/vacancies"
	auditstore "github.com/dalemusser/officehub/internal/app/store/audit"
	employeestore "github.com/dalemusser/officehub/internal/app/store/employees"
	"github.com/dalemusser/officehub/internal/app/system/auditlog"
	"github.com/dalemusser/officehub/internal/app/system/auth"
	"github.com/dalemusser/officehub/internal/app/system/authz"
	"github.com/dalemusser/officehub/internal/app/system/filestore"
	"github.com/dalemusser/officehub/internal/app/system/httpmetrics"
	"github.com/dalemusser/officehub/internal/app/system/ratelimit"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. OfficeHub serves a JSON API under /api
// plus /health, /metrics and the uploaded files.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.OfficeHubMongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch the employee on every request so role changes and disabled
	// accounts take effect immediately.
	sessionMgr.SetUserFetcher(employeestore.NewFetcher(db).FetchUser)

	files, err := filestore.NewOS(appCfg.UploadDir, appCfg.UploadURLPrefix, appCfg.MaxUploadMB)
	if err != nil {
		logger.Error("file store init failed", zap.Error(err))
		return nil, err
	}

	loginLimiter, err := ratelimit.NewLoginLimiter(appCfg.LoginRateLimit)
	if err != nil {
		return nil, err
	}
	var ipLimit func(http.Handler) http.Handler
	if appCfg.LoginIPRateLimit != "" {
		ipLimit, err = ratelimit.IPMiddleware(appCfg.LoginIPRateLimit, func(r *http.Request) {
			logger.Warn("login ip rate limit hit", zap.String("ip", auditlog.ClientIP(r)))
		})
		if err != nil {
			return nil, err
		}
	}

	audit := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	errLog := errorsfeature.NewErrorLogger(logger)
	metrics := httpmetrics.New("officehub")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	if len(appCfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   appCfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.OfficeHubMongoClient, files, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", metrics.Handler())

	// Uploaded files, read-only and signed-in only. Resumes follow the
	// candidate API's role gate. Rules and future-plan files are not
	// served here; clients use the documents' download endpoints.
	r.Route(files.Prefix(), func(fr chi.Router) {
		fr.Use(sessionMgr.LoadSessionUser)
		fr.Use(sessionMgr.RequireSignedIn)
		fr.With(sessionMgr.RequireRole(authz.Recruiters...)).Handle("/"+candidatesfeature.ResumeDir+"/*", files.Handler())
		fr.Handle("/"+vacanciesfeature.DocumentDir+"/*", files.Handler())
	})

	r.Route("/api", func(api chi.Router) {
		// Loads the signed-in employee into context for every API call.
		api.Use(sessionMgr.LoadSessionUser)

		loginHandler := loginfeature.NewHandler(db, sessionMgr, loginLimiter, audit, errLog, logger)
		api.Mount("/auth", loginfeature.Routes(loginHandler, sessionMgr, ipLimit))

		employeesHandler := employeesfeature.NewHandler(db, audit, errLog, logger)
		api.Mount("/employees", employeesfeature.Routes(employeesHandler, sessionMgr))

		candidatesHandler := candidatesfeature.NewHandler(db, files, audit, errLog, logger)
		api.Mount("/candidates", candidatesfeature.Routes(candidatesHandler, sessionMgr))

		vacanciesHandler := vacanciesfeature.NewHandler(db, files, audit, errLog, logger)
		api.Mount("/vacancies", vacanciesfeature.Routes(vacanciesHandler, sessionMgr))

		rulesHandler := documentsfeature.NewHandler(db, models.DocumentKindRules, files, audit, errLog, logger)
		api.Mount(documentsfeature.MountPath(models.DocumentKindRules), documentsfeature.Routes(rulesHandler, sessionMgr))

		plansHandler := documentsfeature.NewHandler(db, models.DocumentKindFuturePlan, files, audit, errLog, logger)
		api.Mount(documentsfeature.MountPath(models.DocumentKindFuturePlan), documentsfeature.Routes(plansHandler, sessionMgr))

		contactsHandler := contactsfeature.NewHandler(db, audit, errLog, logger)
		api.Mount("/contacts", contactsfeature.Routes(contactsHandler, sessionMgr))

		assignmentsHandler := assignmentsfeature.NewHandler(db, audit, errLog, logger)
		api.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler, sessionMgr))

		dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger)
		api.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

		api.NotFound(errorsfeature.NotFound)
		api.MethodNotAllowed(errorsfeature.MethodNotAllowed)
	})

	return r, nil
}
