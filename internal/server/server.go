// internal/server/server.go

// Package server wires the task handlers into the HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"cookmate-backend/internal/common/auth"
	"cookmate-backend/internal/common/config"
	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/models"
	sendnotification "cookmate-backend/internal/workers/communication/send-notification"
	generatesuggestions "cookmate-backend/internal/workers/meal/generate-suggestions"
	savepreferences "cookmate-backend/internal/workers/meal/save-preferences"
	validatepreferences "cookmate-backend/internal/workers/meal/validate-preferences"
	archivesuggestion "cookmate-backend/internal/workers/search/archive-suggestion"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Interfaces over the task handlers, for mocking.
type PreferenceValidator interface {
	Execute(ctx context.Context, input *validatepreferences.Input) (*validatepreferences.Output, error)
}

type PreferenceStore interface {
	Execute(ctx context.Context, input *savepreferences.Input) (*savepreferences.Output, error)
	GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error)
}

type SuggestionGenerator interface {
	Execute(ctx context.Context, input *generatesuggestions.Input) (*generatesuggestions.Output, error)
}

type SuggestionArchiver interface {
	Execute(ctx context.Context, input *archivesuggestion.Input) (*archivesuggestion.Output, error)
	Search(ctx context.Context, input *archivesuggestion.SearchInput) (*archivesuggestion.SearchOutput, error)
}

type NotificationSender interface {
	Execute(ctx context.Context, input *sendnotification.Input) (*sendnotification.Output, error)
}

type UserAccounts interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, id string) error
}

type Sessions interface {
	Create(ctx context.Context, userID, email string) (string, error)
	Validate(ctx context.Context, token string) (*auth.Session, error)
	Destroy(ctx context.Context, token string) error
}

type TokenIssuer interface {
	Issue(userID, purpose string) (string, error)
	Verify(tokenStr, purpose string) (*auth.VerificationClaims, error)
}

type Server struct {
	config         *config.Config
	logger         logger.Logger
	hub            *Hub
	limiter        *rate.Limiter
	requestTimeout time.Duration
	accounts       UserAccounts
	sessions       Sessions
	tokens         TokenIssuer
	validator      PreferenceValidator
	prefs          PreferenceStore
	generator      SuggestionGenerator
	archiver       SuggestionArchiver
	notifier       NotificationSender
}

// Deps carries everything the server needs. Archiver may be nil when the
// search backend is disabled.
type Deps struct {
	Accounts  UserAccounts
	Sessions  Sessions
	Tokens    TokenIssuer
	Validator PreferenceValidator
	Prefs     PreferenceStore
	Generator SuggestionGenerator
	Archiver  SuggestionArchiver
	Notifier  NotificationSender
}

func New(cfg *config.Config, deps Deps, log logger.Logger) *Server {
	rps := cfg.Server.GenerateRPS
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Server.GenerateBurst
	if burst <= 0 {
		burst = 5
	}
	requestTimeout := time.Duration(cfg.Server.RequestTimeout) * time.Second
	if requestTimeout <= 0 {
		requestTimeout = 2 * time.Minute
	}

	return &Server{
		config: cfg,
		logger: log.With(map[string]interface{}{"component": "http-server"}),
		hub:    NewHub(log),
		// Suggestion generation hits a paid model API, so it gets a small
		// global budget.
		limiter:        rate.NewLimiter(rate.Limit(rps), burst),
		requestTimeout: requestTimeout,
		accounts:       deps.Accounts,
		sessions:       deps.Sessions,
		tokens:         deps.Tokens,
		validator:      deps.Validator,
		prefs:          deps.Prefs,
		generator:      deps.Generator,
		archiver:       deps.Archiver,
		notifier:       deps.Notifier,
	}
}

// Hub exposes the event hub so other components (the bot) can broadcast.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.corsMiddleware)

	// The event stream stays open until the client disconnects, so it must
	// not sit behind the request timeout.
	r.Get("/events", s.hub.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(s.requestTimeout))

		r.Get("/", s.handleRoot)
		r.Get("/generate/health", s.handleHealth)
		r.Handle("/metrics", promhttp.Handler())

		r.Post("/api/register", s.handleRegister)
		r.Post("/api/login", s.handleLogin)
		r.Post("/api/logout", s.handleLogout)

		r.Post("/send-email", s.handleSendEmail)
		r.Post("/generate/validate-user", s.handleValidateUser)

		// Routes that need a session.
		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Post("/submit-preferences", s.handleSubmitPreferences)
			r.With(s.rateLimitMiddleware).Post("/generate/suggestions", s.handleGenerateSuggestions)
			r.Get("/api/suggestions/history", s.handleSuggestionHistory)
		})
	})

	return r
}
