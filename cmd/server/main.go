package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-compositor/internal/backend"
	"github.com/MKhiriev/go-compositor/internal/composer"
	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/handler"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/internal/metrics"
	"github.com/MKhiriev/go-compositor/internal/pipeline"
	"github.com/MKhiriev/go-compositor/internal/server"
	"github.com/MKhiriev/go-compositor/internal/service"
	"github.com/MKhiriev/go-compositor/internal/store"
	"github.com/MKhiriev/go-compositor/internal/transaction"
	"github.com/MKhiriev/go-compositor/internal/vsync"
	"github.com/MKhiriev/go-compositor/internal/workers"
	"github.com/MKhiriev/go-compositor/models"
	"golang.org/x/sync/errgroup"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("compositor")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Uint32("refresh_rate", cfg.VSync.RefreshRate).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	components, err := newComponents(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating compositor components")
	}

	compositor, err := pipeline.NewCompositor(pipeline.Components{
		Generator:    components.Generator,
		Distributor:  components.Distributor,
		Synchronizer: components.Synchronizer,
		Engine:       components.Engine,
		Backend:      components.Backend,
		Metrics:      components.Metrics,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating compositor")
	}
	components.Executor = compositor

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(components, storages, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var watchPath string
	if cfg.Workers.WatchConfig {
		watchPath = cfg.JSONFilePath
	}
	background := workers.NewWorkers(log,
		workers.NewCompositorWorker(compositor),
		workers.NewCheckpointJob(services.DFXService, cfg.Workers.CheckpointInterval, log),
		workers.NewConfigWatcher(watchPath, *cfg, components.Generator, log),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return background.Run(ctx) })
	g.Go(func() error { return srv.RunServer(ctx) })

	if err = g.Wait(); err != nil {
		log.Err(err).Msg("compositor stopped with error")
		return
	}
	log.Info().Msg("compositor stopped")
}

// newComponents builds the compositor parts. Without a vendor driver the
// software device is used, with cfg.Composer.SimScreens physical screens
// plugged in before the composition loop starts.
func newComponents(cfg config.StructuredConfig, log *logger.Logger) (service.Components, error) {
	generator, err := vsync.NewGenerator(cfg.VSync.RefreshRate, log)
	if err != nil {
		return service.Components{}, fmt.Errorf("error creating vsync generator: %w", err)
	}
	distributor := vsync.NewDistributor(cfg.VSync.MaxConnections, log)

	device := backend.NewSimDevice(log)
	b, err := backend.NewBackend(device, backend.Config{
		CallbackBudget:          cfg.Composer.CallbackBudget,
		DirectClientComposition: cfg.Composer.DirectClientComposition,
	}, log)
	if err != nil {
		return service.Components{}, fmt.Errorf("error creating hardware backend: %w", err)
	}

	width, height, err := config.ParseResolution(cfg.Composer.SimResolution)
	if err != nil {
		return service.Components{}, err
	}
	for i := range cfg.Composer.SimScreens {
		device.Plug(models.ScreenCapability{
			ScreenID:      models.ScreenID(i),
			Name:          fmt.Sprintf("sim-%d", i),
			Width:         width,
			Height:        height,
			LayerCapacity: cfg.Composer.SimLayerCapacity,
			RefreshRate:   cfg.VSync.RefreshRate,
		})
	}

	return service.Components{
		Generator:    generator,
		Distributor:  distributor,
		Stub:         vsync.NewStub(distributor, generator, log),
		Synchronizer: transaction.NewSynchronizer(cfg.Transactions.SyncTimeout, cfg.Transactions.QueueLimit, log),
		Engine:       composer.NewEngine(log),
		Backend:      b,
		Metrics:      metrics.New(),
	}, nil
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
