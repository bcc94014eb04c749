// maze is a maze game engine with terminal, SSH and browser hosts.
//
// Usage:
//
//	maze play               - Play in the terminal
//	maze menu               - Pick a level pack interactively
//	maze serve              - Serve the browser version over HTTP
//	maze ssh                - Serve the terminal version over SSH
//	maze levels             - List level packs and their levels
//	maze levels validate    - Check a directory of YAML levels
//	maze scores             - Show the best runs of a pack
//
// Global flags:
//
//	--config <path>     - Game config YAML
//	--db <dsn>          - SQLite path or postgres:// URL (default: ~/.maze/scores.db)
//	--levels <dir>      - Register a directory of YAML levels as pack "custom"
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/game"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// customPack is the pack ID used for --levels.
const customPack = "custom"

var (
	env = config.LoadEnv()

	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLevelsDir string
	flagLogLevel  string
	flagTickMS    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "Maze - guide a square through obstacle courses",
	Long: `Maze is a small game: steer a square through a sequence of obstacle
courses to a goal, as fast as you can. The faster you finish a level, the
more it scores.

Available commands:
  play     - Play in the terminal
  menu     - Interactive level pack picker
  serve    - Serve the browser version
  ssh      - Serve the terminal version over SSH
  levels   - List or validate level packs
  scores   - View the best runs

Examples:
  maze play
  maze play --levels ./my-levels --pack custom
  maze serve --http :8080
  maze ssh --ssh :2222
  maze scores --pack classic`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagLevelsDir != "" && !registry.Exists(customPack) {
			registry.RegisterDir(customPack, "Custom ("+flagLevelsDir+")", flagLevelsDir)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "SQLite path or postgres:// URL for scores")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of YAML levels, registered as pack \"custom\"")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagTickMS, "tick-ms", env.TickMS, "Timer interval in milliseconds (0 = config value)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger creates a stderr logger honouring --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig reads the game config and derives the session rules.
func loadConfig() (config.MazeConfig, game.Rules) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		exitf("cannot load config: %v", err)
	}
	rules := game.RulesFromConfig(cfg)
	if flagTickMS > 0 {
		rules.TickInterval = config.TimerConfig{IntervalMS: flagTickMS}.Interval()
	}
	return cfg, rules
}

// openStore opens the score database. Failures are reported and the game
// runs without persistence.
func openStore(ctx context.Context, logger *log.Logger) storage.Store {
	store, err := storage.Open(ctx, flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// requirePack exits when the pack is not registered.
func requirePack(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown level pack %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'maze levels' to see available packs.")
		os.Exit(1)
	}
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
