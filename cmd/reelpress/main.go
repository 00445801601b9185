// Package main is the entry point for the ReelPress server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reelpress/internal/ai"
	"reelpress/internal/cache"
	"reelpress/internal/config"
	"reelpress/internal/database"
	"reelpress/internal/handlers"
	"reelpress/internal/mail"
	"reelpress/internal/middleware"
	"reelpress/internal/render"
	"reelpress/internal/router"
	"reelpress/internal/session"
	"reelpress/internal/storage"
	"reelpress/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	// PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Redis backs sessions, the page cache, and the display-order lists.
	redisClient, err := cache.Connect(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(redisClient, secureCookies)
	orderStore := cache.NewOrderStore(redisClient)
	pageCache := cache.NewPageCache(redisClient, cache.DefaultPageTTL)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	userStore := store.NewUserStore(db)
	blogStore := store.NewBlogStore(db)
	authorStore := store.NewAuthorStore(db)
	teamStore := store.NewTeamStore(db)
	galleryStore := store.NewGalleryStore(db)
	testimonialStore := store.NewTestimonialStore(db)

	// S3-compatible object storage (optional, uploads are disabled without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize s3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// SMTP for the contact and booking forms (optional).
	var mailer mail.Sender
	if cfg.MailEnabled() {
		mailer = mail.NewSMTPSender(
			cfg.SMTPAddr(), cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPassword,
			cfg.MailFrom, cfg.MailRecipients,
		)
		slog.Info("smtp configured", "host", cfg.SMTPHost, "recipients", len(cfg.MailRecipients))
	} else {
		slog.Warn("smtp not configured, enquiry forms disabled")
	}

	// LLM chat provider (optional, a nil provider disables the widget site-wide).
	chatProvider, err := ai.New(cfg.ChatProvider, ai.ProviderConfig{
		APIKey:  cfg.ChatAPIKey,
		Model:   cfg.ChatModel,
		BaseURL: cfg.ChatBaseURL,
	})
	if err != nil {
		slog.Error("failed to initialize chat provider", "error", err)
		os.Exit(1)
	}
	if chatProvider != nil {
		slog.Info("chat provider initialized", "provider", chatProvider.Name())
	} else {
		slog.Warn("chat api key not set, chat widget disabled")
	}

	adminHandlers := handlers.NewAdmin(
		blogStore, authorStore, teamStore, galleryStore, testimonialStore,
		storageClient, orderStore, pageCache,
	)
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	publicHandlers := handlers.NewPublic(
		renderer, blogStore, authorStore, teamStore, galleryStore,
		testimonialStore, orderStore, pageCache, chatProvider != nil,
	)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()
	publicLimiter := middleware.NewRateLimiter(30, time.Minute)
	defer publicLimiter.Stop()

	r := router.New(router.Deps{
		Sessions:      sessionStore,
		Admin:         adminHandlers,
		Auth:          authHandlers,
		Public:        publicHandlers,
		Contact:       handlers.Contact(mailer),
		Booking:       handlers.Booking(mailer),
		Chat:          handlers.Chat(chatProvider),
		LoginLimiter:  loginLimiter,
		PublicLimiter: publicLimiter,
		SecureCookies: secureCookies,
	})

	// WriteTimeout must accommodate the streaming chat endpoint, which
	// holds the response open while the LLM generates.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
