package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"songrelay/internal/http/handlers"
	httpapi "songrelay/internal/http/httpapi"
	"songrelay/internal/infra"
	"songrelay/internal/jobs"
	"songrelay/internal/providers/suno"
	"songrelay/internal/words"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx := context.Background()
	store, closeStore, err := buildJobStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("job_store", cfg.JobStore).Msg("failed to open job store")
	}
	defer closeStore()

	client := suno.NewClient(suno.Options{
		APIKey:         cfg.SunoAPIKey,
		BaseURL:        cfg.SunoBaseURL,
		PublicBaseURL:  cfg.PublicBaseURL,
		Logger:         &logger,
		RequestTimeout: cfg.SunoTimeout,
	})
	if !client.HasCredentials() {
		logger.Warn().Msg("SUNO_API_KEY is not set, generation and status polling will fail")
	}
	if cfg.PollingMode() {
		logger.Info().Msg("PUBLIC_BASE_URL is not set, results are only available by polling")
	}

	app := &handlers.App{
		Submitter:  jobs.NewSubmitter(store, client, &logger),
		Reconciler: jobs.NewReconciler(store, client, &logger),
		Callbacks:  jobs.NewCallbackProcessor(store, &logger),
		Store:      store,
		Words:      words.NewCollection(),
		Logger:     &logger,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:      cfg.StaticDir,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("job_store", cfg.JobStore).
			Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
