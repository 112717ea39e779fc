// Command api serves the movies catalogue over HTTP.
//
//	@title						Movies API
//	@version					1.0
//	@description				Catalogue of movies and directors with JWT authentication and role-based access.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cinevault/movies-api/internal/app"
	"github.com/cinevault/movies-api/internal/pkg/config"
	"github.com/cinevault/movies-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "movies-api"})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "movies-api",
	})
	log := logger.Get()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close(context.Background())

	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		a.Close(context.Background())
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
