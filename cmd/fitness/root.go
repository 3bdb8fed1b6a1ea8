// ABOUTME: Root Cobra command for fitness CLI.
// ABOUTME: Loads config, sets up logging, and manages the database lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/harperreed/fitness/internal/account"
	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/stats"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// skipStoreAnnotation marks commands that run without opening the database.
const skipStoreAnnotation = "fitness/skip-store"

var (
	cfg      *config.Config
	db       *storage.DB
	statsSvc *stats.Service
	accounts *account.Service

	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Personal fitness dashboard",
	Long: `Fitness is a small web app and CLI for a personal fitness dashboard.

WHAT IT TRACKS:

  One shared snapshot of steps, calories, active minutes, sleep,
  heart rate and weight, shown through four dashboards:

  1  Daily Activity   steps, calories, active minutes, sleep
  2  Cardio           steps, calories, heart rate, sleep
  3  At a Glance      steps, calories, sleep
  4  Full Report      all six fields

QUICK START:

  $ fitness serve                       # Start the web app on 127.0.0.1:5000
  $ fitness stats show                  # Print the current snapshot
  $ fitness stats show --dashboard 2    # Print one dashboard
  $ fitness stats simulate              # Randomize today's activity
  $ fitness user add Ann ann@x.com --password secret

MCP INTEGRATION:

  Run 'fitness mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "fitness": { "command": "fitness", "args": ["mcp"] }
    }
  }

CONFIGURATION:

  ~/.config/fitness/config.json   data_dir, addr, log_level
  FITNESS_DATA_DIR, FITNESS_ADDR, FITNESS_LOG_LEVEL override the file.
  A .env file in the working directory is loaded first.

DATA STORAGE:

  SQLite database at ~/.local/share/fitness/fitness_data.db.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip for commands that don't need config
		if cmd.Name() == "help" {
			return nil
		}

		_ = godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}

		setupLogger(cmd.ErrOrStderr(), cfg.GetLogLevel())

		if cmd.Annotations[skipStoreAnnotation] == "true" {
			return nil
		}
		return openStore(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: ~/.local/share/fitness)")
}

// setupLogger installs a tint handler as the default slog logger.
func setupLogger(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

func openStore(cmd *cobra.Command) error {
	var err error
	db, err = storage.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	statsSvc = stats.NewService(db)
	if err := statsSvc.Initialize(cmd.Context()); err != nil {
		_ = closeStore()
		return err
	}

	accounts = account.NewService(db, nil)
	slog.Debug("database ready", "path", db.Path())
	return nil
}

func closeStore() error {
	statsSvc = nil
	accounts = nil
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}
