package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-compositor/internal/adapter"
	"github.com/MKhiriev/go-compositor/internal/client"
	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/tui"
	"github.com/MKhiriev/go-compositor/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("compositor-monitor")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create http adapter")
	}

	var vsyncAdapter adapter.VSyncAdapter
	if cfg.Adapter.GRPCAddress != "" {
		vsyncAdapter, err = adapter.NewGRPCVSyncAdapter(cfg.Adapter, serverAdapter.Token, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create vsync adapter")
		}
		defer vsyncAdapter.Close()
	}

	ui, err := tui.New(serverAdapter, cfg.App.RefreshInterval, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(serverAdapter, vsyncAdapter, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
