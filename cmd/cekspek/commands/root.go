package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/configs"
	"github.com/quochao170402/cekspek/internal/catalog"
	"github.com/quochao170402/cekspek/internal/repository"
)

var (
	// Global flags
	envFile string
	driver  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cekspek",
	Short: "CekSpek operator tool",
	Long: `Operator commands for the CekSpek smartphone catalog.

The store is selected the same way as for the server (STORE_DRIVER and the
DB_* or AWS/DYNAMO_* variables), optionally read from an env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Override STORE_DRIVER (postgres or dynamodb)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at the configured LOG_LEVEL instead of warn")
}

type app struct {
	logger  *zap.Logger
	store   *repository.Store
	catalog *catalog.Service
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := configs.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}
	if driver != "" {
		cfg.StoreDriver = driver
	}
	if !verbose {
		cfg.App.LogLevel = "warn"
	}

	logger, err := configs.NewLogger(cfg.App)
	if err != nil {
		return nil, err
	}
	store, err := configs.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &app{
		logger:  logger,
		store:   store,
		catalog: catalog.NewService(store, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// withApp opens the store for the duration of run.
func withApp(cmd *cobra.Command, run func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return run(ctx, a)
}
