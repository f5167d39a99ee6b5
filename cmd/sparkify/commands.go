package main

import (
	"context"
	"fmt"

	"sparkify/internal/app"
	"sparkify/internal/config"
	"sparkify/internal/infrastructure/health"
	"sparkify/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli хранит конфигурацию и логгер, общие для всех команд
type cli struct {
	cfg    *config.Config
	logger *zap.Logger

	// newApp и check подменяются в тестах
	newApp func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (application, error)
	check  func(ctx context.Context, cfg *config.Config, logger *zap.Logger) health.Status
}

// application операции приложения, доступные командам
type application interface {
	Load(ctx context.Context) (*app.LoadResult, error)
	CreateTables(ctx context.Context) error
	Reset(ctx context.Context) error
	Close() error
}

func newCLI(cfg *config.Config) *cli {
	return &cli{
		cfg:    cfg,
		logger: zap.NewNop(),
		newApp: func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (application, error) {
			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
		check: app.Check,
	}
}

// root создает корневую команду со всеми подкомандами
func (c *cli) root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sparkify",
		Short:         "Load song and event log data into PostgreSQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Флаги уже применены к конфигурации, проверяем итог
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			c.logger = logger.New(logger.Options{
				Level:      c.cfg.LogLevel,
				Path:       c.cfg.LogPath,
				AppDataDir: c.cfg.AppDataDir,
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&c.cfg.Database.DSN, "dsn", c.cfg.Database.DSN, "PostgreSQL connection string, overrides DB_* settings")

	rootCmd.AddCommand(
		c.loadCommand(),
		c.createTablesCommand(),
		c.resetCommand(),
		c.checkCommand(),
	)

	return rootCmd
}

func (c *cli) loadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load song files, then log files",
		Long: `Load every .json file under the song data directory into songs and artists,
then every .json file under the log data directory into time, users and songplays.
Each file is loaded in its own transaction. Re-running on the same input adds no rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a application) error {
				result, err := a.Load(ctx)
				if err != nil {
					return err
				}
				if n := result.Failed(); n > 0 {
					c.logger.Warn("Some files were skipped", zap.Int("failed_files", n))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&c.cfg.SongDataDir, "song-data", c.cfg.SongDataDir, "Song data directory")
	cmd.Flags().StringVar(&c.cfg.LogDataDir, "log-data", c.cfg.LogDataDir, "Log data directory")
	cmd.Flags().BoolVar(&c.cfg.ContinueOnError, "continue-on-error", c.cfg.ContinueOnError, "Skip failed files instead of aborting")
	cmd.Flags().IntVar(&c.cfg.SongWorkers, "song-workers", c.cfg.SongWorkers, "Parallel workers for song files")
	cmd.Flags().StringVar(&c.cfg.Timezone, "timezone", c.cfg.Timezone, "Timezone for log timestamps")
	cmd.Flags().StringVar(&c.cfg.MetricsTextfile, "metrics-textfile", c.cfg.MetricsTextfile, "Write Prometheus metrics to this file after the run")

	return cmd
}

func (c *cli) createTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-tables",
		Short: "Create missing tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a application) error {
				return a.CreateTables(ctx)
			})
		},
	}
}

func (c *cli) resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a application) error {
				return a.Reset(ctx)
			})
		},
	}
}

func (c *cli) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check database connectivity and data directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Недоступная база не ошибка запуска, а результат проверки
			status := c.check(cmd.Context(), c.cfg, c.logger)
			if err := status.WriteJSON(cmd.OutOrStdout()); err != nil {
				return err
			}
			if !status.Ready() {
				return fmt.Errorf("not ready: %s", status.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&c.cfg.SongDataDir, "song-data", c.cfg.SongDataDir, "Song data directory")
	cmd.Flags().StringVar(&c.cfg.LogDataDir, "log-data", c.cfg.LogDataDir, "Log data directory")

	return cmd
}

// withApp создает приложение, выполняет fn и закрывает подключение
func (c *cli) withApp(ctx context.Context, fn func(ctx context.Context, a application) error) error {
	a, err := c.newApp(ctx, c.cfg, c.logger)
	if err != nil {
		c.logger.Error("Failed to create app", zap.Error(err))
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			c.logger.Warn("Failed to close app", zap.Error(err))
		}
	}()

	if err := fn(ctx, a); err != nil {
		c.logger.Error("Command failed", zap.Error(err))
		return err
	}
	return nil
}

func (c *cli) sync() {
	_ = c.logger.Sync()
}
