// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	authgooglefeature "github.com/dalemusser/careerhub/internal/app/features/authgoogle"
	eventsfeature "github.com/dalemusser/careerhub/internal/app/features/events"
	groupsfeature "github.com/dalemusser/careerhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/careerhub/internal/app/features/health"
	interviewsfeature "github.com/dalemusser/careerhub/internal/app/features/interviews"
	jobsfeature "github.com/dalemusser/careerhub/internal/app/features/jobs"
	loginfeature "github.com/dalemusser/careerhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/careerhub/internal/app/features/logout"
	mentorshipfeature "github.com/dalemusser/careerhub/internal/app/features/mentorship"
	messagesfeature "github.com/dalemusser/careerhub/internal/app/features/messages"
	profilefeature "github.com/dalemusser/careerhub/internal/app/features/profile"
	usersfeature "github.com/dalemusser/careerhub/internal/app/features/users"
	"github.com/dalemusser/careerhub/internal/app/system/auth"
	"github.com/dalemusser/careerhub/internal/app/workflow/groupflow"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. CareerHub is a JSON API serving a
// separate front end, so the router carries a CORS policy for the
// configured front-end origin, session middleware, and one mounted
// feature router per API area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// The browser front end runs on a different origin and authenticates
	// with the session cookie, so credentials must be allowed.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, logger)
	r.Mount("/auth/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/auth/logout", logoutfeature.Routes(logoutHandler))

	googleHandler := authgooglefeature.NewHandler(db, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.FrontendURL, logger)
	if googleHandler.IsConfigured() {
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	} else {
		logger.Info("Google OAuth not configured; /auth/google routes disabled")
	}

	// Account and profile management
	profileHandler := profilefeature.NewHandler(db, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	// Mentorship groups and the application workflow
	groupsHandler := groupsfeature.NewHandler(db, groupflow.Config{
		RecheckCapacityOnAccept: appCfg.RecheckCapacityOnAccept,
	}, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	// One-on-one mentorship requests
	mentorshipHandler := mentorshipfeature.NewHandler(db, logger)
	r.Mount("/mentorship", mentorshipfeature.Routes(mentorshipHandler, sessionMgr))

	// Job board and applications
	jobsHandler := jobsfeature.NewHandler(db, logger)
	r.Mount("/jobs", jobsfeature.Routes(jobsHandler, sessionMgr))

	interviewsHandler := interviewsfeature.NewHandler(db, logger)
	r.Mount("/interviews", interviewsfeature.Routes(interviewsHandler, sessionMgr))

	// Career events
	eventsHandler := eventsfeature.NewHandler(db, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, sessionMgr))

	// Direct messaging
	messagesHandler := messagesfeature.NewHandler(db, logger)
	r.Mount("/messages", messagesfeature.Routes(messagesHandler, sessionMgr))

	return r, nil
}
