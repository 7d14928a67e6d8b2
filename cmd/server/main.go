package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/vibrant-blog/internal/auth"
	"github.com/ayush/vibrant-blog/internal/blog"
	"github.com/ayush/vibrant-blog/internal/config"
	"github.com/ayush/vibrant-blog/internal/logger"
	"github.com/ayush/vibrant-blog/internal/newsletter"
	"github.com/ayush/vibrant-blog/internal/profile"
	"github.com/ayush/vibrant-blog/internal/store"
)

func main() {
	envFile := flag.String("c", ".env", "path to env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Log.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Fatalw("server stopped", "err", err)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(ctx)
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		return err
	}
	db := mongoClient.Database(cfg.MongoDB)
	if err := store.Migrate(connectCtx, db); err != nil {
		return err
	}
	logger.Log.Infow("connected to mongo", "db", cfg.MongoDB)

	users := store.NewUserStore(db)
	subs := store.NewSubscriptionStore(db)
	blogs := store.NewBlogStore(db)

	// ── Images ───────────────────────────────────────────────
	images, err := newImageStore(ctx, cfg)
	if err != nil {
		return err
	}

	// ── Mail ─────────────────────────────────────────────────
	mailer, err := newsletter.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	if err != nil {
		return err
	}

	// ── Handlers ─────────────────────────────────────────────
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	uploads := blog.NewUploader(images)

	handler := newRouter(routes{
		auth:          auth.NewHandler(users, tokens),
		profile:       profile.NewHandler(users, blogs),
		newsletter:    newsletter.NewHandler(subs, mailer),
		blogs:         blog.NewHandler(blogs, uploads),
		uploads:       uploads,
		tokens:        tokens,
		allowedOrigin: cfg.AllowedOrigin,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infow("server listening", "port", cfg.Port, "uploads", cfg.UploadBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Log.Infow("shutting down", "signal", sig.String())
	}

	shutCtx, cancelShut := context.WithTimeout(ctx, 10*time.Second)
	defer cancelShut()
	return srv.Shutdown(shutCtx)
}

func newImageStore(ctx context.Context, cfg *config.Config) (blog.ImageStore, error) {
	if cfg.UploadBackend == config.UploadMinio {
		images, err := store.NewMinioImages(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		return images, nil
	}
	images, err := store.NewDiskImages(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return images, nil
}
