package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"medverify/internal/config"
	"medverify/internal/domain"
	"medverify/internal/extractor/tesseract"
	"medverify/internal/extractor/zxing"
	"medverify/internal/handler"
	noopnotify "medverify/internal/notify/noop"
	sesnotify "medverify/internal/notify/ses"
	"medverify/internal/port"
	"medverify/internal/repository/postgres"
	"medverify/internal/router"
	"medverify/internal/service"
	localstorage "medverify/internal/storage/local"
	s3storage "medverify/internal/storage/s3"
)

// @title MedVerify API
// @version 1.0
// @description Medicine label verification: expiry, batch and tamper checks from a label photo.
// @host localhost:8080
// @BasePath /api
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connects on first use so the service starts without a database.
	db := postgres.NewLazyDB(&cfg.DB)
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("closing database: %v", err)
		}
	}()

	// Initialize repositories
	verificationRepo := postgres.NewVerificationRepo(db)

	// Initialize storage and notifications
	artifacts, err := newArtifactStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize artifact store: %w", err)
	}
	notifier, err := newNotifier(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	// Initialize recognition engines
	recognizer := tesseract.NewRecognizer(tesseract.Config{
		Languages:      strings.Split(cfg.OCR.Language, "+"),
		TessdataPrefix: cfg.OCR.TessdataPrefix,
	})
	scanner := zxing.NewScanner()

	// Start review worker
	reviewWorker := service.NewReviewWorker(artifacts, notifier, service.ReviewWorkerConfig{})
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	var workerWg sync.WaitGroup
	workerWg.Add(1)
	go func() {
		defer workerWg.Done()
		reviewWorker.Start(workerCtx)
	}()
	defer func() {
		cancelWorker()
		workerWg.Wait()
	}()

	// Initialize services
	verificationSvc := service.NewVerificationService(service.VerificationDeps{
		Recognizer: recognizer,
		Scanner:    scanner,
		Repo:       verificationRepo,
		Reviews:    reviewWorker,
	}, &cfg.OCR, &cfg.Upload)
	reviewSvc := service.NewReviewService(verificationRepo)

	// Initialize handlers
	verifyH := handler.NewVerificationHandler(verificationSvc, cfg.Upload.MaxBytes)
	reviewH := handler.NewReviewHandler(reviewSvc)
	healthH := handler.NewHealthHandler(verificationRepo)

	// Setup router
	r := router.Setup(verifyH, reviewH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newArtifactStore(cfg *config.Config) (port.ArtifactStore, error) {
	switch cfg.Artifacts.Backend {
	case domain.ArtifactBackendS3:
		return s3storage.NewArtifactStore(&cfg.S3, cfg.Artifacts.Prefix)
	default:
		return localstorage.NewArtifactStore(cfg.Artifacts.UploadsDir), nil
	}
}

func newNotifier(cfg *config.Config) (port.ReviewNotifier, error) {
	switch cfg.Notify.Provider {
	case "ses":
		return sesnotify.NewSESNotifier(&cfg.Notify)
	default:
		return noopnotify.NewNoopNotifier(cfg.Notify.ReviewURL), nil
	}
}
