package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/game"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagPack   string
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play a level pack in the terminal.

Controls:
  Arrows/WASD/hjkl  - Move
  Enter/Space       - Start / next level
  Tab               - High scores (between levels)
  B/Esc             - Back to the pack menu (when not playing)
  Ctrl+S            - Save a screenshot to ~/.maze/screenshots
  Q/Ctrl+C          - Quit

Examples:
  maze play
  maze play --pack classic --player ann
  maze play --levels ./my-levels --pack custom
  maze play --config ./fast.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		requirePack(flagPack)
		runTerminal(flagPack, false)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level pack interactively",
	Long: `Start with a menu of level packs. After leaving a game with B or Esc
you return to the menu.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play
  Tab          - High scores
  Q            - Quit`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runTerminal(flagPack, true)
	},
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagPack, "pack", "classic", "Level pack to play")
		c.Flags().StringVar(&flagPlayer, "player", env.Player, "Name recorded with finished runs")
	}
}

// runTerminal alternates between the pack menu and the game until the
// player quits.
func runTerminal(pack string, startInMenu bool) {
	logger := newLogger("maze")
	mazeCfg, rules := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx, logger)
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{ScreenW: width, ScreenH: height, Player: flagPlayer, Pack: pack}

	inMenu := startInMenu
	for ctx.Err() == nil {
		if inMenu {
			res, err := tui.RunMenu(store, cfg)
			if err != nil {
				exitf("%v", err)
			}
			cfg = res.Config
			switch {
			case res.Quit:
				return
			case res.WantsScoreboard:
				if err := tui.RunScoreboard(store, cfg.Pack, cfg.ScreenW, cfg.ScreenH); err != nil {
					exitf("%v", err)
				}
				continue
			}
			cfg.Pack = res.PackID
		}

		back, err := playPack(ctx, cfg, mazeCfg.Terminal, rules, store, logger)
		if err != nil {
			exitf("%v", err)
		}
		if !back {
			return
		}
		inMenu = true
	}
}

func playPack(ctx context.Context, cfg core.RuntimeConfig, term config.TerminalConfig, rules game.Rules, store storage.Store, logger *log.Logger) (bool, error) {
	catalog, err := registry.Create(cfg.Pack)
	if err != nil {
		return false, err
	}
	logger.Debug("starting game", "pack", cfg.Pack, "levels", catalog.Count())

	// The alternate screen hides stderr; keep the log quiet while playing.
	quiet := logger.With()
	quiet.SetLevel(log.ErrorLevel)

	return tui.Run(ctx, tui.Options{
		Catalog:  catalog,
		Rules:    rules,
		Terminal: term,
		Runtime:  cfg,
		Store:    store,
		Logger:   quiet,
	})
}
