package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pitchboard/docs"
	"pitchboard/pkg/boundary"
	"pitchboard/pkg/config"
	"pitchboard/pkg/feedback"
	"pitchboard/pkg/harness"
	"pitchboard/pkg/logger"
	"pitchboard/pkg/reporting"
	"pitchboard/pkg/sendemail"
	"pitchboard/pkg/session"
	"pitchboard/pkg/startups"
	"pitchboard/pkg/web"
)

const (
	sessionTTL        = 24 * time.Hour
	sessionPruneEvery = 10 * time.Minute
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	cfg := c.cfg

	reporter, err := reporting.New(reporting.Options{
		DSN:              cfg.Sentry.DSN,
		Environment:      cfg.Env,
		Release:          cfg.Sentry.Release,
		Debug:            cfg.Sentry.Debug,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
	})
	if err != nil {
		return err
	}
	defer reporter.Flush(cfg.Sentry.FlushTimeout)

	pool, err := c.openDatabase(ctx)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	} else {
		log.Info().Msg("DATABASE_URL not set; feedback is not persisted")
	}

	startupsRepo, err := c.startupRepository(pool)
	if err != nil {
		return err
	}
	startupsService := startups.NewStartupService(startupsRepo)
	startupsHandler := startups.NewStartupHandler(startupsService)

	var feedbackRepo feedback.FeedbackRepository
	if pool != nil {
		feedbackRepo = feedback.NewPostgresFeedbackRepository(pool)
	}
	emailService := sendemail.NewEmailService(cfg.Email)
	feedbackService := feedback.NewFeedbackService(
		reporter.DSN(),
		feedback.DialogOptions(cfg.Feedback.Dialog),
		feedbackRepo,
		emailService,
		cfg.Email.FeedbackRecipient,
	)

	sessions := session.NewStore(sessionTTL)
	feedbackHandler := feedback.NewFeedbackHandler(feedbackService, sessions)
	harnessHandler := harness.NewHandler(reporter, feedbackService, sessions)
	boundaryHandler := boundary.NewHandler(reporter, feedbackService, sessions, boundary.Options{
		ShowDetails: !cfg.IsProduction(),
		DialogDelay: cfg.Feedback.DialogDelay,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	web.Install(router)
	installMiddleware(router, boundaryHandler, cfg)

	startupsHandler.RegisterRoutes(router)
	feedbackHandler.RegisterRoutes(router)
	boundaryHandler.RegisterRoutes(router)
	harnessHandler.RegisterRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.ListenPort(),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listen(srv, cfg.Env, cfg.TLS)
	}()
	log.Info().Str("addr", srv.Addr).Bool("tls", cfg.TLS.Enabled).Str("env", cfg.Env).Msg("server started")

	pruneCtx, stopPrune := context.WithCancel(ctx)
	defer stopPrune()
	go pruneSessions(pruneCtx, sessions)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-quit:
	}
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited")
	return nil
}

// installMiddleware puts the request logger outermost so requests that crash into the
// boundary still get their access line.
func installMiddleware(router *gin.Engine, boundaryHandler *boundary.Handler, cfg *config.Config) {
	router.Use(logger.Middleware(), boundaryHandler.Middleware())
	router.Use(cors.New(corsConfig(cfg.CORS)))
	router.Use(session.Middleware(cfg.TLS.Enabled))
}

func corsConfig(s config.CORSSettings) cors.Config {
	return cors.Config{
		AllowOrigins:     s.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: s.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func pruneSessions(ctx context.Context, sessions *session.Store) {
	ticker := time.NewTicker(sessionPruneEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(); n > 0 {
				log.Debug().Int("removed", n).Msg("pruned idle sessions")
			}
		}
	}
}
