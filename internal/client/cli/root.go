package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/client/config"
	"github.com/aitemdev/notnative-sync-server-sub000/internal/logging"
)

var (
	cfgFile   string
	serverURL string
	dataDir   string
	logFile   string
	logLevel  string
	jsonOut   bool

	cfg *config.Config
	log logging.Logger
	app *App
)

var rootCmd = &cobra.Command{
	Use:   "notesync",
	Short: "notesync - local-first note synchronization",
	Long: `notesync keeps a local notebook of markdown notes and synchronizes it
with a sync server across devices.

Notes are always written locally first; a background journal records every
change and a periodic sync exchanges those changes with the server. The
client stays fully usable offline and catches up when the server returns.`,
	PersistentPreRunE: setupApp,
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return teardownApp()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. The context carries process lifetime: cancelling it
// (SIGINT/SIGTERM in main) unwinds long-running commands like sync --loop.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// PersistentPostRunE does not run when a command fails, so close
		// storage here before exiting.
		_ = teardownApp()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	v, err := loadViper()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg, err = config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err = newLogger(cfg)
	if err != nil {
		return err
	}

	app, err = newApp(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return nil
}

func teardownApp() error {
	if app == nil {
		return nil
	}
	return app.Close()
}

// loadViper merges defaults, the config file, NOTESYNC_* environment
// variables, and the global flags into one viper instance.
func loadViper() (*viper.Viper, error) {
	v := viper.New()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Join(home, ".notesync"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("NOTESYNC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// no config file, defaults and env apply
	}

	if serverURL != "" {
		v.Set("server_url", serverURL)
	}
	if dataDir != "" {
		v.Set("data_dir", dataDir)
	}
	if logFile != "" {
		v.Set("log_file", logFile)
	}
	if logLevel != "" {
		v.Set("log_level", logLevel)
	}
	return v, nil
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return logging.NewSlogLogger(slog.New(handler)), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.notesync/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "sync server base URL")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for local data (default ~/.notesync)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file with rotation instead of stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "machine-readable output where supported")
}
