// main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"storefront-backend/config"
	"storefront-backend/internal/auth"
	"storefront-backend/internal/handler"
	"storefront-backend/internal/metrics"
	"storefront-backend/internal/seed"
	"storefront-backend/internal/service"
	"storefront-backend/internal/store"
	"storefront-backend/internal/store/memstore"
	"storefront-backend/internal/store/mongostore"
)

func main() {
	conf := config.CreateNewConfig()
	setupLogger(conf.LogLevel)

	if conf.GinMode != "" {
		gin.SetMode(conf.GinMode)
	}

	ctx := context.Background()
	s := openStore(ctx, conf.StoreConfig)
	if s != nil {
		defer s.Close(context.Background())
	}

	if conf.StoreConfig.SeedOnStart {
		if err := seed.Run(ctx, s); err != nil {
			log.Error().Err(err).Str("component", "Seed").Msg("seeding failed")
		}
	}

	svc := service.New(s, service.Options{
		PaymentBaseURL: conf.PaymentBaseURL,
		Tokens:         auth.NewTokenIssuer(conf.JWTSecret),
		Passwords:      auth.NewPasswords(conf.PasswordHashing),
	})

	m := metrics.New()
	m.SetStoreAvailable(svc.Available())

	r := handler.NewRouter(handler.New(svc), handler.RouterConfig{
		AllowOrigins: conf.CORSAllowOrigins,
		Metrics:      m,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", conf.ServicePort),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	log.Info().Msg("HTTP server stopped")
}

func setupLogger(level string) {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
}

// openStore returns nil when no database is reachable; the service then runs
// in degraded mode.
func openStore(ctx context.Context, conf config.StoreConfig) store.Store {
	switch conf.Driver {
	case config.DriverMemory:
		log.Info().Msg("Using in-memory store")
		return memstore.New()
	case config.DriverMongo:
	default:
		log.Warn().Str("driver", conf.Driver).Msg("Unknown STORE_DRIVER, falling back to mongo")
	}

	if conf.URL == "" {
		log.Warn().Msg("DATABASE_URL not set, running without a database")
		return nil
	}

	log.Info().Str("database", conf.Name).Msg("Connecting to MongoDB")
	s, err := mongostore.NewStore(ctx, conf.URL, conf.Name)
	if err != nil {
		log.Warn().Err(err).Msg("MongoDB not reachable, running without a database")
		return nil
	}
	return s
}
