package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/realtimefeedback/feedback-api/internal/crypto"
	"github.com/realtimefeedback/feedback-api/internal/metrics"
	"github.com/realtimefeedback/feedback-api/internal/repository"
	"github.com/realtimefeedback/feedback-api/internal/router"
	"github.com/realtimefeedback/feedback-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	tokens, err := crypto.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.Expiry)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	metrics.Init()

	users := repository.NewUserRepository(db)
	events := repository.NewEventRepository(db)
	sessions := repository.NewSessionRepository(db)

	handler := router.New(ctx, router.Deps{
		Log:            log,
		Tokens:         tokens,
		DB:             db,
		RequestTimeout: cfg.RequestTimeout,
		RateLimit:      cfg.RateLimit,
		Auth:           service.NewAuthService(users, tokens),
		Events:         service.NewEventService(users, events),
		Sessions:       service.NewSessionService(users, events, sessions),
		Feedback:       service.NewFeedbackService(users, events, sessions, repository.NewFeedbackRepository(db)),
		Question:       service.NewQuestionService(users, events, sessions, repository.NewQuestionRepository(db)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
