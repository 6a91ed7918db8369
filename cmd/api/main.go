//	@title			imgbed API
//	@version		1.0
//	@description	Media hosting behind stable logical filenames, backed by a Telegram channel relay and an S3-compatible object store.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/imgbed/service/internal/admin"
	"github.com/imgbed/service/internal/alias"
	"github.com/imgbed/service/internal/config"
	"github.com/imgbed/service/internal/db"
	"github.com/imgbed/service/internal/imglog"
	appMiddleware "github.com/imgbed/service/internal/middleware"
	"github.com/imgbed/service/internal/naming"
	"github.com/imgbed/service/internal/storage"
	"github.com/imgbed/service/internal/telegram"
	"github.com/imgbed/service/internal/upload"

	_ "github.com/imgbed/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		sugar.Fatalf("database migration failed: %v", err)
	}

	objects, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		sugar.Fatalf("object storage init failed: %v", err)
	}

	tg := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID)
	if !tg.Configured() {
		sugar.Warn("telegram provider not configured, channel uploads disabled")
	}

	origin := cfg.PublicBaseURL
	if origin == "" {
		origin = "http://localhost:" + cfg.Port
	}

	// Wire dependencies: repository → service → handler
	logRepo := imglog.NewRepository(pool)
	recorder := imglog.NewRecorder(logRepo, sugar)
	allocator := naming.NewAllocator(logRepo)

	aliasSvc := alias.NewService(logRepo, cfg.SigningSecret, origin)
	aliasHandler := alias.NewHandler(aliasSvc, objects, tg, sugar)

	uploadSvc := upload.NewService(allocator, recorder, objects, tg)
	uploadHandler := upload.NewHandler(uploadSvc, sugar)

	adminSvc := admin.NewService(logRepo, cfg.AdminToken, cfg.JWTSecret, cfg.SigningSecret, origin)
	adminHandler := admin.NewHandler(adminSvc, sugar)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(sugar))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public read surface
	r.Get("/p/{filename}", aliasHandler.ResolveAlias)
	r.Get("/cfile/{fileID}", aliasHandler.FetchTelegram)
	r.Get("/rfile/{key}", aliasHandler.FetchObject)

	// Admin surface
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", adminHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireAdmin(cfg.JWTSecret))
			r.Get("/sign", adminHandler.Sign)
			r.Get("/list", adminHandler.List)
			r.Post("/delete", adminHandler.Delete)
			r.Post("/upload/tgchannel", uploadHandler.UploadTelegram)
			r.Post("/upload/r2", uploadHandler.UploadObjectStore)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	sugar.Info("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalf("forced shutdown: %v", err)
	}

	sugar.Info("server stopped")
}
