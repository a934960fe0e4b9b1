package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Allknowingroger/Image-Fusion/internal/cache"
	"github.com/Allknowingroger/Image-Fusion/internal/config"
	"github.com/Allknowingroger/Image-Fusion/internal/gemini"
	"github.com/Allknowingroger/Image-Fusion/internal/handler"
	"github.com/Allknowingroger/Image-Fusion/internal/metrics"
	"github.com/Allknowingroger/Image-Fusion/internal/service"
	"github.com/Allknowingroger/Image-Fusion/internal/session"
	"github.com/Allknowingroger/Image-Fusion/internal/web"

	_ "github.com/Allknowingroger/Image-Fusion/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Image Fusion API
// @version 1.0
// @description Fuses a handful of user images into a single picture with a caption.
// @host localhost:8080
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.Default()

	genClient, err := gemini.NewClient(ctx, cfg.Gemini)
	if err != nil {
		logger.Fatalf("gemini client error: %v", err)
	}

	fuseService := service.NewFuseService(logger, genClient, cfg.Gemini)

	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(cfg.RedisConfig)
		fuseService.SetCacheClient(redisCache)
		logger.Println("set redis as cache")
	}

	sessions := session.NewManager(cfg.Session.TTL, cfg.Session.DefaultImages, logger)
	go sessions.StartJanitor(ctx, cfg.Session.CleanupInterval)

	h := handler.NewFusionHandler(fuseService, sessions, cfg.Upload.MaxBytes)

	ui, err := web.NewUI(web.IndexData{
		MinImages:     session.MinImages,
		MaxImages:     session.MaxImages,
		DefaultImages: cfg.Session.DefaultImages,
	})
	if err != nil {
		logger.Fatalf("ui error: %v", err)
	}

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.Logger,
		middleware.Recoverer,
		middleware.Throttle(cfg.Server.ThrottleLimit),
		middleware.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
	}...)

	r.Route("/api", h.Routes)
	r.Get("/ready", h.Ready)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", ui.Index)
	r.Handle("/static/*", web.Static())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Printf("server started :%s\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Println("server stopped")
}
