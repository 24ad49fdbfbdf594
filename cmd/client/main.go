package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-feed-client/internal/client"
	"github.com/MKhiriev/go-feed-client/internal/config"
	"github.com/MKhiriev/go-feed-client/internal/logger"
	"github.com/MKhiriev/go-feed-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("go-feed-client").Fatal().Err(err).Msg("error getting configs")
	}

	log, closeLog := logger.NewClientLogger("go-feed-client", cfg.Log.Path)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	app, err := client.NewApp(ctx, cfg, os.Stdin, os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		stop()
		_ = closeLog()
		os.Exit(1)
	}
}
