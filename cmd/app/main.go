package main

import (
	"context"
	"contactbook/internal/adapters/driven/memrepo"
	"contactbook/internal/adapters/driving/httpadapter"
	"contactbook/internal/assets"
	"contactbook/internal/config"
	"contactbook/internal/core/service/contact"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
)

var version = "dev"

// CLI holds the command line flags. Flags win over the config file and environment.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Path to a YAML config file." default:"contactbook.yaml" type:"path"`
	Addr    string           `help:"Address to listen on, overrides server_addr."`
	Seed    string           `help:"JSON file with contacts to load at startup, overrides seed_file." type:"path"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("contactbook"),
		kong.Description("In-memory contact book served over HTTP."),
		kong.Vars{"version": version},
	)

	fmt.Println(assets.BannerString)

	// detect the operating mode at runtime
	cfg, err := bootstrap(cli, os.Stdin)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("configuration loaded", "server_addr", cfg.ServerAddr, "batch_size", cfg.BatchSize, "max_batch_size", cfg.MaxBatchSize)

	repo, err := loadRepository(cfg, os.Stdin)
	if err != nil {
		logger.Error("failed to create repository", "error", err)
		os.Exit(1)
	}

	// create the context
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := run(appCtx, cfg, repo, logger); err != nil {
		logger.Error("application run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting gracefully")
}

// setupSignalHandler configures a listener for OS signals to trigger a graceful shutdown.
func setupSignalHandler(cancelFunc context.CancelFunc) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM) // listen to OS interrupt signal

	// clean shutdown sequence
	go func() {
		<-quit
		slog.Info("shutdown signal received")
		cancelFunc()
	}()
}

// bootstrap loads the config, applies flag overrides and picks the operating mode.
// Piped stdin switches to pipe mode, where stdin carries the seed document.
func bootstrap(cli CLI, stdin *os.File) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}

	if cli.Addr != "" {
		cfg.ServerAddr = cli.Addr
	}
	if cli.Seed != "" {
		cfg.SeedFile = cli.Seed
	}

	cfg.OpMode = config.ModeServer
	if stat, err := stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		cfg.OpMode = config.ModePipe
	}

	return cfg, nil
}

// loadRepository builds the in-memory repository, seeded from stdin in pipe mode or from the seed file if one is set.
func loadRepository(cfg *config.Config, stdin io.Reader) (contact.Repository, error) {
	switch {
	case cfg.OpMode == config.ModePipe:
		slog.Info("initialising repository from stdin data")
		return memrepo.NewMemRepositoryFromSeed(stdin)

	case cfg.SeedFile != "":
		slog.Info("initialising repository from seed file", "path", cfg.SeedFile)

		f, err := os.Open(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("could not open seed file: %w", err)
		}
		defer f.Close()

		return memrepo.NewMemRepositoryFromSeed(f)

	default:
		slog.Info("initialising empty repository")
		return memrepo.NewMemRepository(), nil
	}
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func run(appCtx context.Context, cfg *config.Config, repo contact.Repository, logger *slog.Logger) error {
	// service and handler
	contactSvc := contact.NewService(repo, contact.WithBatchSize(cfg.BatchSize, cfg.MaxBatchSize))
	apiHandler := httpadapter.NewHandler(contactSvc, logger)

	// config the server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiHandler.SetupRoutes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// start the server
	go func() {
		logger.Info("server starting", "addr", cfg.ServerAddr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen error", "error", err)
		}
	}()

	// listen for context cancellation
	<-appCtx.Done()
	logger.Info("context cancelled, initiating server shutdown")

	// graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}
