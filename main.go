package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"verde-backend/internal/loans"
	"verde-backend/internal/platform/auth"
	"verde-backend/internal/platform/config"
	"verde-backend/internal/platform/logger"
	"verde-backend/internal/platform/metrics"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting", zap.String("mode", cfg.Mode), zap.String("backend", cfg.Storage.Backend))

	store, err := loans.OpenStore(cfg.Storage)
	if err != nil {
		log.Fatal("failed to open record store", zap.Error(err))
	}
	defer store.Close()

	authSvc, err := auth.NewService(cfg.Auth)
	if err != nil {
		log.Fatal("invalid auth config", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(logger.RequestLogger(log), gin.Recovery(), metrics.Middleware())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == "dev" {
		// CORS only matters while the frontend runs on its own port
		origins := cfg.HTTP.CORSOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:3000"}
		}
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Location"},
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	auth.RegisterRoutes(api, authSvc)

	protected := api.Group("")
	protected.Use(auth.RequireAuth(authSvc.Secret()))

	loans.RegisterRoutes(api, protected, loans.NewService(store))

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: r,
	}

	go func() {
		var err error
		if cfg.HTTP.TLS.Cert != "" && cfg.HTTP.TLS.Key != "" {
			log.Info("listening with TLS", zap.String("addr", cfg.HTTP.Addr))
			err = srv.ListenAndServeTLS(cfg.HTTP.TLS.Cert, cfg.HTTP.TLS.Key)
		} else {
			log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}
}
