package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wewillshine/internal/config"
	"wewillshine/internal/handlers"
	"wewillshine/internal/progress"
	"wewillshine/internal/remote"
	"wewillshine/internal/security"
	"wewillshine/internal/service"
	"wewillshine/internal/session"
	"wewillshine/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithFile()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Local mirror for session, progress, settings and admin state
	local, err := storage.Open(cfg.LocalStoreType, cfg.LocalStorePath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	if c, ok := local.(io.Closer); ok {
		defer c.Close()
	}
	log.Printf("Local store ready (type: %s)", cfg.LocalStoreType)

	// Remote record store (supports sql, rest, off)
	gateway, remoteCloser, err := remote.Open(remote.Options{
		Mode:         cfg.RemoteMode,
		DatabaseType: cfg.DatabaseType,
		DatabaseURL:  cfg.DatabaseURL,
		DatabasePath: cfg.DatabasePath,
		Migrations:   cfg.MigrationsPath,
		URL:          cfg.RemoteURL,
		APIKey:       cfg.RemoteAPIKey,
		Timeout:      cfg.RemoteTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to open remote store: %v", err)
	}
	defer remoteCloser.Close()
	log.Printf("Remote store ready (mode: %s)", cfg.RemoteMode)

	outbox := progress.NewAsyncOutbox(cfg.OutboxSize, cfg.RemoteTimeout, progress.LogFailure)

	progressStore := progress.NewStore(progress.NewKVRepository(local), gateway, outbox)
	progressStore.SetLoginTimeout(cfg.RemoteTimeout)

	// Initialize services
	settingsService := service.NewSettingsService(local)
	emailService, err := service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.TeacherEmail, cfg.Debug)
	if err != nil {
		log.Printf("Warning: Failed to initialize email service: %v", err)
	}
	signer := security.NewTokenSigner(cfg.AdminJWTKey, cfg.AdminTokenTTL)
	if cfg.AdminJWTKey == "" {
		log.Printf("Warning: ADMIN_JWT_KEY not set, admin tokens will not survive a restart")
	}
	adminService := service.NewAdminService(gateway, local, signer)
	studentService := service.NewStudentService(service.StudentDeps{
		Sessions: session.NewManager(local, cfg.SessionTTL),
		Progress: progressStore,
		Gateway:  gateway,
		Outbox:   outbox,
		Settings: settingsService,
		Email:    emailService,
	})

	if p, err := studentService.Restore(context.Background()); err != nil {
		log.Printf("Warning: Failed to restore previous session: %v", err)
	} else if p != nil {
		log.Printf("Restored session for %s", p.StudentCode)
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()
	middleware := handlers.NewMiddleware(adminService, limiter)
	mux := handlers.Routes(
		handlers.NewStudentHandler(studentService, settingsService),
		handlers.NewAdminHandler(adminService),
		middleware,
	)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Warning: HTTP shutdown: %v", err)
	}
	if err := outbox.Close(ctx); err != nil {
		log.Printf("Warning: pending remote writes dropped: %v", err)
	}
}
