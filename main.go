package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sheikhrachel/gol-arena/model"
	"github.com/sheikhrachel/gol-arena/server"
	"github.com/sheikhrachel/gol-arena/utils"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON configuration file")
	mode := flag.String("mode", "", "override the configured mode: server or terminal")
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			log.Fatalf("%v", err)
		}
		log.Printf("Using default configuration (%s not found)", *configPath)
		config = utils.DefaultConfig()
	}
	if *mode != "" {
		config.Mode = *mode
	}
	config.ApplyEnv()
	if err = config.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", config.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	grid, engine, err := initializeWorld(config)
	if err != nil {
		log.Fatalf("%v", err)
	}

	switch config.Mode {
	case utils.ModeTerminal:
		runTerminal(ctx, config, grid, engine)
	default:
		if err = runServer(ctx, config, grid, engine); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

// initializeWorld builds the grid and the engine the configuration asks for
func initializeWorld(config utils.Config) (*model.Grid, *model.Engine, error) {
	grid, err := model.NewGrid(config.Size, model.NewRandomSource(config.Seed))
	if err != nil {
		return nil, nil, errors.Wrap(err, "[initializeWorld] failed to create grid")
	}

	opts := []model.EngineOption{model.WithWorkers(config.EngineWorkers())}
	if config.UseMemoryPool {
		opts = append(opts, model.WithPool(model.NewGridPool()))
	}
	return grid, model.NewEngine(opts...), nil
}

func runServer(ctx context.Context, config utils.Config, grid *model.Grid, engine *model.Engine) error {
	var store server.Store = server.NopStore{}
	if config.SnapshotPath != "" {
		store = server.NewFileStore(config.SnapshotPath)
	}

	world := server.NewWorldServer(grid, engine, store,
		server.WithTickInterval(config.TickInterval),
		server.WithRequestTimeout(config.RequestTimeout),
		server.WithMaxSize(config.MaxSize),
		server.WithPlaying(config.Playing),
	)
	if err := world.Restore(ctx); err != nil {
		log.Warnf("%v", err)
	}

	loopDone := make(chan struct{})
	go func() {
		world.Loop(ctx)
		close(loopDone)
	}()

	httpServer := &http.Server{Addr: config.Addr, Handler: world}
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", config.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return errors.Wrap(err, "[runServer] http server stopped")
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http shutdown: %v", err)
	}
	<-loopDone
	return nil
}
