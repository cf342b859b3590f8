package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/qiwen5/dressup/internal/buildinfo"
	"github.com/qiwen5/dressup/internal/logging"
	"github.com/qiwen5/dressup/internal/relay"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := relay.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := relay.NewServer(cfg, logging.NewTintLogger())
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
