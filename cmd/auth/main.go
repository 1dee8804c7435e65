package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/itineraire-app/auth-service/internal/config"
	"github.com/itineraire-app/auth-service/internal/events"
	"github.com/itineraire-app/auth-service/internal/hash"
	"github.com/itineraire-app/auth-service/internal/httpserver"
	"github.com/itineraire-app/auth-service/internal/logging"
	loggingmw "github.com/itineraire-app/auth-service/internal/middleware/logging"
	"github.com/itineraire-app/auth-service/internal/repo"
	"github.com/itineraire-app/auth-service/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	svc := &service.AuthService{
		Repo:      repo.GormRepo{DB: db},
		Hasher:    hash.New(hash.DefaultCost),
		JWTSecret: cfg.JWTSecret,
		Events:    producer,
	}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: svc},
		CORSOrigin:  cfg.CORSOrigin,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.AuthPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
