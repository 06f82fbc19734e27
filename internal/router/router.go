package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/realtimefeedback/feedback-api/internal/config"
	"github.com/realtimefeedback/feedback-api/internal/crypto"
	"github.com/realtimefeedback/feedback-api/internal/handler"
	"github.com/realtimefeedback/feedback-api/internal/metrics"
	"github.com/realtimefeedback/feedback-api/internal/middleware"
)

// Deps are the collaborators the route table is built from.
type Deps struct {
	Log            zerolog.Logger
	Tokens         *crypto.TokenIssuer
	DB             handler.Pinger
	RequestTimeout time.Duration
	RateLimit      config.RateLimitConfig

	Auth     handler.AuthService
	Events   handler.EventService
	Sessions handler.SessionService
	Feedback handler.FeedbackService
	Question handler.QuestionService
}

// New builds the HTTP handler. ctx bounds background work owned by the
// router, such as rate limiter eviction.
func New(ctx context.Context, d Deps) http.Handler {
	v := handler.NewValidator()
	authHandler := handler.NewAuthHandler(d.Auth, v)
	eventHandler := handler.NewEventHandler(d.Events, v)
	sessionHandler := handler.NewSessionHandler(d.Sessions, v)
	feedbackHandler := handler.NewFeedbackHandler(d.Feedback, v)
	questionHandler := handler.NewQuestionHandler(d.Question, v)
	healthHandler := handler.NewHealthHandler(d.DB)

	r := chi.NewRouter()
	r.Use(middleware.Logger(d.Log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.HTTPMiddleware)

	r.Get("/health", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		// Request deadline; repository calls inherit it through the context.
		r.Use(chimw.Timeout(d.RequestTimeout))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(ctx, d.RateLimit.RPS, d.RateLimit.Burst, d.RateLimit.TrustedProxies))
			r.Post("/feedback/register", authHandler.HandleRegister)
			r.Post("/feedback/login", authHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(d.Tokens))

			r.Get("/users/me", authHandler.HandleMe)

			r.Post("/events/create", eventHandler.HandleCreate)
			r.Post("/events/join", eventHandler.HandleJoin)
			r.Get("/events", eventHandler.HandleList)
			r.Get("/events/{id}", eventHandler.HandleGet)
			r.Patch("/events/{id}", eventHandler.HandleUpdate)
			r.Post("/events/{id}/access-code", eventHandler.HandleRegenerateAccessCode)

			r.Post("/events/{id}/sessions", sessionHandler.HandleCreate)
			r.Get("/events/{id}/sessions", sessionHandler.HandleList)
			r.Patch("/sessions/{id}", sessionHandler.HandleUpdateStatus)

			r.Post("/feedback", feedbackHandler.HandleSubmit)
			r.Get("/feedback", feedbackHandler.HandleList)

			r.Post("/questions", questionHandler.HandleAsk)
			r.Get("/questions", questionHandler.HandleList)
			r.Patch("/questions/{id}", questionHandler.HandleAct)
		})
	})

	return r
}
