package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/presbrey/base62kit/config"
	"github.com/presbrey/base62kit/echobase62"
)

func main() {
	configPath := flag.String("config", "", "configuration file (.yaml, .toml or .json)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("API bind address: %s", cfg.ListenAddress())
	log.Printf("Max body bytes: %d", cfg.Server.MaxBodyBytes)
	log.Printf("Metrics enabled: %v", cfg.Metrics.Enabled)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.Server.MaxBodyBytes, 10)))

	echobase62.Setup(e, echobase62.Config{MaxBodyBytes: cfg.Server.MaxBodyBytes})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, echobase62.MetricsHandler())
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddress(),
			Handler: mux,
		}
		go func() {
			log.Printf("Metrics listening on %s%s", cfg.MetricsAddress(), cfg.Metrics.Path)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server failed: %v", err)
			}
		}()
	}

	go func() {
		if err := e.Start(cfg.ListenAddress()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Error stopping server: %v", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			log.Printf("Error stopping metrics server: %v", err)
		}
	}

	log.Println("Server stopped. Goodbye!")
}
