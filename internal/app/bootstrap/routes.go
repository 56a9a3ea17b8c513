// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	assignmentsfeature "github.com/peerloop/peerloop/internal/app/features/assignments"
	collaboratefeature "github.com/peerloop/peerloop/internal/app/features/collaborate"
	dashboardfeature "github.com/peerloop/peerloop/internal/app/features/dashboard"
	errorsfeature "github.com/peerloop/peerloop/internal/app/features/errors"
	feedbackfeature "github.com/peerloop/peerloop/internal/app/features/feedback"
	healthfeature "github.com/peerloop/peerloop/internal/app/features/health"
	homefeature "github.com/peerloop/peerloop/internal/app/features/home"
	loginfeature "github.com/peerloop/peerloop/internal/app/features/login"
	logoutfeature "github.com/peerloop/peerloop/internal/app/features/logout"
	profilefeature "github.com/peerloop/peerloop/internal/app/features/profile"
	reviewsfeature "github.com/peerloop/peerloop/internal/app/features/reviews"
	signupfeature "github.com/peerloop/peerloop/internal/app/features/signup"
	statisticsfeature "github.com/peerloop/peerloop/internal/app/features/statistics"
	teamsfeature "github.com/peerloop/peerloop/internal/app/features/teams"
	workspacefeature "github.com/peerloop/peerloop/internal/app/features/workspace"
	"github.com/peerloop/peerloop/internal/app/system/assist"
	"github.com/peerloop/peerloop/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler for the app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. It boots the template engine, applies the
// session middleware, and mounts feature routers for every area of the
// application.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	assistClient := assist.New(appCfg.AssistBaseURL, appCfg.AssistAPIKey, logger)
	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads the SessionUser into context so
	// handlers can use auth.CurrentUser(r) / authz.UserCtx(r).
	r.Use(auth.LoadSessionUser)

	// Health probes for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(db, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(db, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	feedbackHandler := feedbackfeature.NewHandler(db, logger)
	r.Mount("/feedback", feedbackfeature.Routes(feedbackHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	signupHandler := signupfeature.NewHandler(db, logger)
	r.Mount("/signup", signupfeature.Routes(signupHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.NotFound(errorsHandler.NotFound)

	// Role-based dashboard
	dashboardHandler := dashboardfeature.NewHandler(db, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

	// Teacher: assignments, teams, statistics
	assignmentsHandler := assignmentsfeature.NewHandler(db, logger, assistClient)
	r.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler))

	teamsHandler := teamsfeature.NewHandler(db, logger)
	r.Mount("/teams", teamsfeature.Routes(teamsHandler))

	statisticsHandler := statisticsfeature.NewHandler(db, logger)
	r.Mount("/statistics", statisticsfeature.Routes(statisticsHandler))

	// Student: workspace, reviews, profile
	workspaceHandler := workspacefeature.NewHandler(db, logger)
	r.Mount("/workspace", workspacefeature.Routes(workspaceHandler))

	reviewsHandler := reviewsfeature.NewHandler(db, logger, assistClient)
	r.Mount("/reviews", reviewsfeature.Routes(reviewsHandler))

	profileHandler := profilefeature.NewHandler(db, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler))

	// Shared: per-assignment discussion
	collaborateHandler := collaboratefeature.NewHandler(db, logger, assistClient)
	r.Mount("/collaborate", collaboratefeature.Routes(collaborateHandler))

	return r, nil
}
