// Command api runs the parkit-auth HTTP and gRPC servers.
//
// @title Parkit Auth API
// @version 1.0
// @description Login, registration, password reset and parking pre-enrollment for Parkit.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/parkit/parkit-auth/gen/docs/swagger"
	"github.com/parkit/parkit-auth/internal/infra/app"
	"github.com/parkit/parkit-auth/internal/infra/config"
)

func main() {
	log.SetPrefix("parkit-auth: ")
	log.SetFlags(log.LstdFlags | log.LUTC)

	// .env is optional; containers pass real environment variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring unreadable .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("start %s (%s): %v", cfg.App.Name, cfg.App.Env, err)
	}

	if err := application.Run(ctx); err != nil {
		log.Printf("%s stopped: %v", cfg.App.Name, err)
		os.Exit(1)
	}
}
