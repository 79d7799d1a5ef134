package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/watchlist/internal/config"
	"github.com/mmcdole/watchlist/internal/log"
	"github.com/mmcdole/watchlist/internal/tui"
	"github.com/mmcdole/watchlist/internal/watchlist"
)

// Version is set at build time via -ldflags
var Version = "dev"

var flags = struct {
	ConfigFile string
	Force      bool
}{}

var rootCmd = &cobra.Command{
	Use:           "watchlist",
	Short:         "A terminal watch list for movies and shows",
	Args:          cobra.NoArgs,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file populated with defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := config.NewLoader(flags.ConfigFile)
		if _, err := loader.Load(); err != nil {
			return err
		}
		used := loader.ConfigFileUsed()
		if used == "" {
			used = "(none, using defaults)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), used)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "configuration file (default ~/.config/watchlist/config.yaml)")
	configInitCmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("watchlist needs an interactive terminal")
	}

	loader := config.NewLoader(flags.ConfigFile)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
		closer = nil
	}
	if closer != nil {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting watchlist", "version", Version, "config", loader.ConfigFileUsed())

	store := watchlist.NewStore(
		watchlist.WithLogger(logger),
		watchlist.WithInitialFilter(cfg.Filter()),
	)

	model := tui.NewModel(store, cfg, logger)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())

	watching := loader.Watch(
		func(cfg *config.Config) { p.Send(tui.ConfigReloadedMsg{Config: cfg}) },
		func(err error) { p.Send(tui.ConfigErrorMsg{Err: err}) },
	)
	logger.Debug("config watch", "enabled", watching)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down", "items", store.Len())
	return nil
}

// initConfig writes the default config unless one already exists
func initConfig(out io.Writer) error {
	path := flags.ConfigFile
	if path == "" {
		path = filepath.Join(config.DefaultConfigDir(), "config.yaml")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !flags.Force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
