package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/OscarDom1/community-resource-platform/internal/client/cli"
	"github.com/OscarDom1/community-resource-platform/internal/client/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
