// Command complexpr evaluates complex scalar and matrix expressions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zephyrtronium/complexpr"
	"github.com/zephyrtronium/complexpr/internal/config"
)

// app holds state shared by the commands.
type app struct {
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	// newLogger builds the logger once the config is loaded.
	newLogger func(level zapcore.Level) (*zap.Logger, error)
}

func productionLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "complexpr",
		Short: "Calculator for complex numbers and complex matrices",
		Long: `complexpr evaluates expressions over complex scalars and matrices.

Matrices are written in curly brackets with commas between columns and
semicolons between rows, e.g. {1, 2i; 3, 4}. Run "complexpr funcs" to list
the built-in functions and constants.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			level, err := zapcore.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			if a.verbose {
				level = zapcore.DebugLevel
			}
			a.logger, err = a.newLogger(level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger.Info("registry ready", zap.Int("functions", complexpr.Builtins().Len()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "complexpr.yaml", "config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newEvalCmd(a), newFuncsCmd(a), newReplCmd(a), newConfigCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a := &app{newLogger: productionLogger}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
