package main

import (
	"context"
	"log"
	"os"

	"github.com/qiwen5/dressup/internal/buildinfo"
	"github.com/qiwen5/dressup/internal/client/cli"
	"github.com/qiwen5/dressup/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
