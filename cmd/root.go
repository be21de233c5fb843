package cmd

import (
	"context"
	"fmt"
	"os"

	"querry/config"
	"querry/core"
	"querry/database"
	"querry/events"
	"querry/icons"
	"querry/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	dbPath       string // Bound to --dbpath flag
	logPathFlag  string
	logLevelFlag string
)

// app holds what PersistentPreRunE wires up for the running command.
type app struct {
	store *database.Store
	bus   *events.Bus
	icons *icons.Pack
	svc   *core.Service
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "querry",
	Short: "Organize saved REST requests into collections",
	Long: `querry keeps collections of saved request metadata (name, URL, protocol, method)
in a local SQLite database. It can be used from the command line or served as a local
JSON API with a live event stream for a web front-end.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isSuppressedCmd(cmd) {
			return nil
		}
		if err := config.Init(cfgFile, config.Overrides{DBPath: dbPath, LogPath: logPathFlag, LogLevel: logLevelFlag}); err != nil {
			return fmt.Errorf("failed to initialize config in PersistentPreRunE: %w", err)
		}
		cfg := config.AppConfig
		if err := logger.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		pack := icons.New(cfg.Icons.Dir, cfg.Icons.Fallback)
		logger.Info("PersistentPreRunE: Opening database at '%s'", cfg.Database.Path)
		store, err := database.Open(cmd.Context(), cfg.Database.Path, database.Options{Icons: pack})
		if err != nil {
			return fmt.Errorf("failed to initialize database at %s: %w", cfg.Database.Path, err)
		}

		bus := events.New(cfg.Events.Buffer)
		current = &app{
			store: store,
			bus:   bus,
			icons: pack,
			svc:   core.NewService(store, bus, pack),
		}
		return nil
	},
}

func isSuppressedCmd(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// shutdown closes the bus and the store opened by PersistentPreRunE.
func shutdown() {
	if current == nil {
		return
	}
	current.bus.Close()
	if err := current.store.Close(); err != nil {
		logger.Error("Closing database: %v", err)
	}
	current = nil
}

func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	defer shutdown()
	return rootCmd.ExecuteContext(ctx)
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	err := run(context.Background(), os.Args[1:])
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yaml in the user config dir or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "path to SQLite database file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&logPathFlag, "log-file", "", "path for the application log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR (overrides config/default)")
}
