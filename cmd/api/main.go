package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lendingapi/internal/config"
	apphttp "lendingapi/internal/http"
	"lendingapi/internal/store"
	"lendingapi/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := mustBuildLogger(cfg.LogLevel)
	defer logger.Sync()

	dbPool := mustOpenDB(cfg.DatabaseDSN, logger)
	defer dbPool.Close()

	bookRepository := store.NewBookPG(dbPool)
	categoryRepository := store.NewCategoryPG(dbPool)
	userRepository := store.NewUserPG(dbPool)
	transactionRepository := store.NewTransactionPG(dbPool)

	lendingService := usecase.NewLendingService(bookRepository, transactionRepository, logger.Named("lending"))

	authHandler := apphttp.NewAuthHandler(userRepository, cfg.JWTSecret)
	bookHandler := apphttp.NewBookHandler(bookRepository)
	categoryHandler := apphttp.NewCategoryHandler(categoryRepository)
	transactionHandler := apphttp.NewTransactionHandler(transactionRepository)
	lendingHandler := apphttp.NewLendingHandler(lendingService)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /v1/api/auth/register", authHandler.Register)
	router.HandleFunc("POST /v1/api/auth/login", authHandler.Login)

	authed := apphttp.AuthMiddleware(cfg.JWTSecret)
	admin := func(h http.HandlerFunc) http.Handler {
		return authed(apphttp.RequireRole("ROLE_ADMIN")(h))
	}

	router.Handle("POST /v1/api/customer/request-book", authed(http.HandlerFunc(lendingHandler.RequestBook)))
	router.Handle("POST /v1/api/customer/return-book", authed(http.HandlerFunc(lendingHandler.ReturnBook)))

	router.Handle("GET /v1/api/book/{id}", authed(http.HandlerFunc(bookHandler.Get)))
	router.Handle("GET /v1/api/books", authed(http.HandlerFunc(bookHandler.List)))
	router.Handle("GET /v1/api/book-pageable", authed(http.HandlerFunc(bookHandler.List)))
	router.Handle("GET /v1/api/available-books", authed(http.HandlerFunc(bookHandler.ListAvailable)))
	router.Handle("GET /v1/api/available-books-category/{id}", authed(http.HandlerFunc(bookHandler.ListAvailable)))
	router.Handle("POST /v1/api/book", admin(bookHandler.Create))
	router.Handle("PATCH /v1/api/book/{id}", admin(bookHandler.Patch))
	router.Handle("DELETE /v1/api/book/{id}", admin(bookHandler.Delete))

	router.Handle("GET /v1/api/book-category/{id}", authed(http.HandlerFunc(categoryHandler.Get)))
	router.Handle("GET /v1/api/book-categories", authed(http.HandlerFunc(categoryHandler.List)))
	router.Handle("GET /v1/api/book-category-pageable", authed(http.HandlerFunc(categoryHandler.List)))
	router.Handle("POST /v1/api/book-category", admin(categoryHandler.Create))
	router.Handle("PUT /v1/api/book-category/{id}", admin(categoryHandler.Update))
	router.Handle("DELETE /v1/api/book-category/{id}", admin(categoryHandler.Delete))

	router.Handle("GET /v1/api/transaction/{id}", authed(http.HandlerFunc(transactionHandler.Get)))
	router.Handle("GET /v1/api/transaction-pageable", authed(http.HandlerFunc(transactionHandler.List)))
	router.Handle("DELETE /v1/api/transaction/{id}", admin(transactionHandler.Delete))

	rateLimiter := apphttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	httpLogger := logger.Named("http")
	handler := apphttp.RequestID(
		apphttp.RequestLogger(httpLogger)(
			apphttp.Recoverer(httpLogger)(
				rateLimiter.Middleware(router))))

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func mustBuildLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		log.Fatalf("invalid log level %q: %v", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	return logger
}

func mustOpenDB(dsn string, logger *zap.Logger) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("cannot create db pool", zap.Error(err))
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Fatal("cannot ping database", zap.Error(err))
	}
	logger.Info("database connection OK")
	return pool
}
