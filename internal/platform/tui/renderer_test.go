package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/game"
	"github.com/vovakirdan/tui-maze/internal/levels"
)

// testTerminal maps one cell to 10x20 pixels, so an 81x33 terminal gives
// exactly the 800x600 design arena at scale 1.
var testTerminal = config.TerminalConfig{CellWidth: 10, CellHeight: 20, HUDRows: 2}

func newTestRenderer(cols, rows int) *termRenderer {
	r := newTermRenderer(game.DefaultArena(), testTerminal)
	r.SetTerminalSize(cols, rows)
	return r
}

func TestRendererViewportSize(t *testing.T) {
	r := newTestRenderer(81, 33)
	w, h := r.ViewportSize()
	if w != 800 || h != 600 {
		t.Errorf("ViewportSize() = (%v, %v), expected (800, 600)", w, h)
	}

	r.SetTerminalSize(1, 2)
	w, h = r.ViewportSize()
	if w != 0 || h != 0 {
		t.Errorf("ViewportSize() on tiny terminal = (%v, %v), expected (0, 0)", w, h)
	}
}

func TestRendererProjection(t *testing.T) {
	r := newTestRenderer(81, 33)
	s := game.NewSession(levels.Classic(), r)
	s.Init()
	s.StartGame()

	scr := core.NewScreen(81, 33)
	r.Draw(scr)

	tests := []struct {
		name  string
		x, y  int
		rune  rune
		color core.Color
	}{
		{"player top-left", 5, 4, playerRune, core.ColorBrightCyan},
		{"player bottom-right", 9, 6, playerRune, core.ColorBrightCyan},
		{"goal", 70, 27, goalRune, core.ColorGold},
		{"obstacle start", 20, 7, obstacleRune, core.ColorGray},
		{"obstacle end", 59, 8, obstacleRune, core.ColorGray},
		{"right border", 80, 10, '│', core.ColorBlue},
		{"bottom border", 10, 32, '─', core.ColorBlue},
	}
	for _, tt := range tests {
		cell := scr.GetCell(tt.x, tt.y)
		if cell.Rune != tt.rune || cell.Color != tt.color {
			t.Errorf("%s: cell(%d,%d) = %q/%v, expected %q/%v", tt.name, tt.x, tt.y, cell.Rune, cell.Color, tt.rune, tt.color)
		}
	}

	if got := scr.Get(60, 7); got != ' ' {
		t.Errorf("cell right of obstacle = %q, expected blank", got)
	}
	if !strings.Contains(scr.Row(0), "Level: 1") {
		t.Errorf("HUD row = %q, expected level label", scr.Row(0))
	}
}

func TestRendererMovesWithSession(t *testing.T) {
	r := newTestRenderer(81, 33)
	s := game.NewSession(levels.Classic(), r)
	s.Init()
	s.StartGame()

	for range 5 {
		s.Move(game.DirRight)
	}

	scr := core.NewScreen(81, 33)
	r.Draw(scr)

	// Player now spans x 100..150
	if scr.GetCell(9, 4).Color == core.ColorBrightCyan {
		t.Error("old player cell still drawn")
	}
	if scr.GetCell(10, 4).Color != core.ColorBrightCyan || scr.GetCell(14, 4).Color != core.ColorBrightCyan {
		t.Error("player not drawn at its new position")
	}
}

func TestRendererOverlays(t *testing.T) {
	r := newTestRenderer(81, 33)
	s := game.NewSession(levels.Classic(), r)
	s.Init()

	scr := core.NewScreen(81, 33)
	r.Draw(scr)
	if !strings.Contains(scr.String(), "M A Z E") {
		t.Error("start screen not drawn after Init()")
	}

	s.StartGame()
	r.Draw(scr)
	if strings.Contains(scr.String(), "M A Z E") {
		t.Error("start screen still drawn while playing")
	}

	r.ShowScreen(game.ScreenLevelComplete)
	r.ShowLevelStats(970, 3)
	r.Draw(scr)
	if !strings.Contains(scr.String(), "Score: 970 | Time: 3s") {
		t.Error("level stats not drawn")
	}

	r.HideScreen(game.ScreenLevelComplete)
	r.ShowScreen(game.ScreenStart)
	r.ShowGameComplete(2500)
	r.Draw(scr)
	if !strings.Contains(scr.String(), "score of 2500") {
		t.Error("game complete message not drawn")
	}

	r.HideScreen(game.ScreenStart)
	r.Draw(scr)
	if strings.Contains(scr.String(), "Congratulations") {
		t.Error("game complete message survived hiding the start screen")
	}
}

func TestRendererObstacleHandles(t *testing.T) {
	r := newTestRenderer(81, 33)
	a := r.MaterializeObstacle(core.NewRect(0, 0, 10, 10))
	b := r.MaterializeObstacle(core.NewRect(20, 0, 10, 10))
	if a == b {
		t.Fatalf("MaterializeObstacle() returned duplicate handle %v", a)
	}

	r.DestroyObstacle(a)
	if len(r.obstacles) != 1 {
		t.Errorf("obstacles after destroy = %d, expected 1", len(r.obstacles))
	}
	if _, ok := r.obstacles[b]; !ok {
		t.Error("wrong obstacle destroyed")
	}
}

func TestRendererTooSmall(t *testing.T) {
	r := newTestRenderer(40, 3)
	scr := core.NewScreen(40, 3)
	r.Draw(scr)

	if !strings.Contains(scr.String(), "Terminal too small") {
		t.Errorf("Draw() on tiny terminal = %q", scr.String())
	}
}

func TestCellRectMinimumSize(t *testing.T) {
	r := newTestRenderer(81, 33)
	x0, y0, x1, y1 := r.cellRect(core.NewRect(12, 25, 1, 1))
	if x0 != 1 || y0 != 3 || x1 != 2 || y1 != 4 {
		t.Errorf("cellRect() = (%d,%d,%d,%d), expected (1,3,2,4)", x0, y0, x1, y1)
	}
}
