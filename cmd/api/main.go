//	@title			i.magiccap API
//	@version		1.0
//	@description	Upload gateway for MagicCap captures: authenticated multipart
//	@description	uploads into object storage, public streamed retrieval by key.
//
//	@host		i.magiccap.me
//	@BasePath	/

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"github.com/magiccap/imagehost/internal/config"
	"github.com/magiccap/imagehost/internal/db"
	"github.com/magiccap/imagehost/internal/install"
	"github.com/magiccap/imagehost/internal/keygen"
	appMiddleware "github.com/magiccap/imagehost/internal/middleware"
	"github.com/magiccap/imagehost/internal/object"
	"github.com/magiccap/imagehost/internal/storage"
	"github.com/magiccap/imagehost/internal/telemetry"

	_ "github.com/magiccap/imagehost/docs/swagger"
)

const keyLength = 8

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	handler := log.NewWithOptions(os.Stdout, log.Options{
		TimeFormat:      time.RFC3339,
		ReportTimestamp: true,
	})
	slog.SetDefault(slog.New(handler))

	var reporter telemetry.Reporter = telemetry.Nop{}
	if cfg.SentryDSN != "" {
		sentryReporter, err := telemetry.NewSentryReporter(cfg.SentryDSN, cfg.AppEnv)
		if err != nil {
			return fmt.Errorf("error reporting init failed: %w", err)
		}
		defer sentryReporter.Close()
		reporter = sentryReporter
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	store, err := storage.NewMinioStorage(ctx, storage.MinioConfig{
		Endpoint:   cfg.StorageEndpoint,
		AccessKey:  cfg.StorageAccessKey,
		SecretKey:  cfg.StorageSecretKey,
		Region:     cfg.StorageRegion,
		Bucket:     cfg.StorageBucket,
		UseSSL:     cfg.StorageUseSSL,
		PublicBase: cfg.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("object storage init failed: %w", err)
	}

	// Wire dependencies: repository → service → handler
	installRepo := install.NewRepository(pool)
	gate := install.NewService(installRepo)
	uploadRepo := object.NewRepository(pool)
	objectHandler := object.NewHandler(gate, keygen.New(keyLength), store, uploadRepo, reporter)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(appMiddleware.Recoverer(reporter))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — static routes win over the /{key} wildcard below.
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Mount("/", objectHandler.Routes(cfg.RedirectURL))

	// No WriteTimeout: retrieval streams objects of arbitrary size and must
	// not be cut off mid-download. Slow-client protection comes from
	// ReadHeaderTimeout and the storage backend's own request timeouts.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	eg.Go(func() error {
		slog.Info("server listening", "port", cfg.Port, "env", cfg.AppEnv)
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	return eg.Wait()
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
