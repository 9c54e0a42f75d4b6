// Package cli implements the command-line interface for hypercube.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/hypercube/internal/axes"
	"github.com/SeamusWaldron/hypercube/internal/config"
	"github.com/SeamusWaldron/hypercube/internal/puzzle"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	logDir     string
)

// ConfigError reports a bad command-line argument.
type ConfigError struct {
	Arg   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Arg, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// rootCmd plays an n^d puzzle.
var rootCmd = &cobra.Command{
	Use:   "hypercube <n> <d>",
	Short: "Twisty puzzles in any dimension",
	Long: `hypercube - solve an n-layer, d-dimensional Rubik's cube in the terminal.

The puzzle is drawn as a flat projection: odd dimensions are laid out side
by side, even ones stacked, with a cap for each facet of the new axis.

Turning:
  <selector> <axis> <axis>   turn the selected side from the first axis
                             towards the second (three-key)
  1-9                        depth prefix: turn that many outer layers
  x <axis> <axis>            rotate the whole puzzle
  \                          switch between three-key and fixed-key
  |                          switch between axis and side keybinds
  z / Z                      undo / redo
  =====  -----               scramble / reset (press 5 times)
  K / J                      next / previous filter
  F                          type a live filter, Enter to apply
  Esc                        clear the pending keys
  ctrl+c                     quit`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
	RunE:          runPlay,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.hypercube/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.hypercube/hypercube.db)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Key log directory (default: ~/.hypercube/logs)")
}

// parseSize reads the layer count and dimension arguments.
func parseSize(args []string) (n, d int, err error) {
	n, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, &ConfigError{Arg: "layer count", Value: args[0], Err: err}
	}
	if n < puzzle.MinLayers || n > puzzle.MaxLayers {
		return 0, 0, &ConfigError{
			Arg:   "layer count",
			Value: args[0],
			Err:   fmt.Errorf("%w: must be %d to %d", puzzle.ErrInvalidLayers, puzzle.MinLayers, puzzle.MaxLayers),
		}
	}

	d, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, &ConfigError{Arg: "dimension", Value: args[1], Err: err}
	}
	if d < 1 || d > axes.MaxDim {
		return 0, 0, &ConfigError{
			Arg:   "dimension",
			Value: args[1],
			Err:   fmt.Errorf("%w: must be 1 to %d", puzzle.ErrInvalidDimension, axes.MaxDim),
		}
	}
	return n, d, nil
}

// loadConfig reads the config file and applies the global flags over it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := configFile()
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = dbPath
	}
	if flags.Changed("log-dir") {
		cfg.LogDir = logDir
	}
	return cfg, nil
}

// configFile returns --config, or the default path.
func configFile() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}
