package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/game"
)

const (
	obstacleRune = '█'
	goalRune     = '▓'
	playerRune   = '█'
)

// termRenderer implements game.Renderer by keeping the display state and
// projecting it onto a character Screen on every frame. One terminal cell
// covers cellW×cellH rendered pixels; the top hudRows lines carry labels.
type termRenderer struct {
	arena   game.Arena
	cellW   float64
	cellH   float64
	hudRows int

	cols int
	rows int

	obstacles  map[game.ObstacleHandle]core.Rect
	nextHandle game.ObstacleHandle

	player        core.Point
	goal          core.Point
	playerVisible bool
	goalVisible   bool
	spriteScale   float64

	screens map[game.ScreenName]bool

	level   int
	score   int
	seconds int
	best    int

	statsScore   int
	statsSeconds int

	completed     bool
	completeScore int
}

func newTermRenderer(arena game.Arena, term config.TerminalConfig) *termRenderer {
	return &termRenderer{
		arena:     arena,
		cellW:     float64(max(term.CellWidth, 1)),
		cellH:     float64(max(term.CellHeight, 1)),
		hudRows:   max(term.HUDRows, 0),
		obstacles: make(map[game.ObstacleHandle]core.Rect),
		screens:   make(map[game.ScreenName]bool),
	}
}

// SetTerminalSize records the terminal dimensions in cells.
func (r *termRenderer) SetTerminalSize(cols, rows int) {
	r.cols = cols
	r.rows = rows
}

// SetBest sets the best score shown in the HUD.
func (r *termRenderer) SetBest(score int) {
	r.best = score
}

// arenaCells returns the grid area available to the arena, leaving room
// for the HUD above and a border on the right and bottom.
func (r *termRenderer) arenaCells() (cols, rows int) {
	return max(r.cols-1, 0), max(r.rows-r.hudRows-1, 0)
}

func (r *termRenderer) ViewportSize() (w, h float64) {
	cols, rows := r.arenaCells()
	return float64(cols) * r.cellW, float64(rows) * r.cellH
}

func (r *termRenderer) MaterializeObstacle(box core.Rect) game.ObstacleHandle {
	r.nextHandle++
	r.obstacles[r.nextHandle] = box
	return r.nextHandle
}

func (r *termRenderer) DestroyObstacle(h game.ObstacleHandle) {
	delete(r.obstacles, h)
}

func (r *termRenderer) SetPlayerPosition(p core.Point) { r.player = p }
func (r *termRenderer) SetGoalPosition(p core.Point)   { r.goal = p }
func (r *termRenderer) SetPlayerVisible(visible bool)  { r.playerVisible = visible }
func (r *termRenderer) SetGoalVisible(visible bool)    { r.goalVisible = visible }
func (r *termRenderer) SetSpriteScale(scale float64)   { r.spriteScale = scale }

func (r *termRenderer) ShowScreen(name game.ScreenName) {
	r.screens[name] = true
}

func (r *termRenderer) HideScreen(name game.ScreenName) {
	delete(r.screens, name)
	if name == game.ScreenStart {
		r.completed = false
	}
}

func (r *termRenderer) UpdateLevelLabel(n int)      { r.level = n }
func (r *termRenderer) UpdateScoreLabel(n int)      { r.score = n }
func (r *termRenderer) UpdateTimeLabel(seconds int) { r.seconds = seconds }

func (r *termRenderer) ShowLevelStats(score, seconds int) {
	r.statsScore = score
	r.statsSeconds = seconds
}

func (r *termRenderer) ShowGameComplete(score int) {
	r.completed = true
	r.completeScore = score
}

// Draw projects the current display state onto s.
func (r *termRenderer) Draw(s *core.Screen) {
	s.Clear()
	r.drawHUD(s)

	vw, vh := r.ViewportSize()
	if vw <= 0 || vh <= 0 || r.rows <= r.hudRows {
		s.DrawTextCentered(s.Height()/2, "Terminal too small", core.ColorRed)
		return
	}

	r.drawBorder(s)

	for _, box := range r.obstacles {
		x0, y0, x1, y1 := r.cellRect(box)
		s.FillCells(x0, y0, x1, y1, obstacleRune, core.ColorGray)
	}

	size := r.arena.PlayerSize * r.spriteScale
	if r.goalVisible {
		x0, y0, x1, y1 := r.cellRect(core.Square(r.goal, size))
		s.FillCells(x0, y0, x1, y1, goalRune, core.ColorGold)
	}
	if r.playerVisible {
		x0, y0, x1, y1 := r.cellRect(core.Square(r.player, size))
		s.FillCells(x0, y0, x1, y1, playerRune, core.ColorBrightCyan)
	}

	if r.screens[game.ScreenStart] {
		r.drawStart(s)
	}
	if r.screens[game.ScreenLevelComplete] {
		r.drawLevelComplete(s)
	}
}

// cellRect converts a rendered-space rectangle to the half-open cell range
// it touches. Every non-empty box covers at least one cell.
func (r *termRenderer) cellRect(box core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(box.X / r.cellW))
	y0 = int(math.Floor(box.Y / r.cellH))
	x1 = int(math.Ceil(box.Right() / r.cellW))
	y1 = int(math.Ceil(box.Bottom() / r.cellH))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0 + r.hudRows, x1, y1 + r.hudRows
}

func (r *termRenderer) drawHUD(s *core.Screen) {
	if r.hudRows < 1 {
		return
	}
	hud := fmt.Sprintf(" Level: %d   Score: %d   Time: %ds", r.level, r.score, r.seconds)
	if r.best > 0 {
		hud += fmt.Sprintf("   Best: %d", r.best)
	}
	s.DrawText(0, 0, hud, core.ColorWhite)
	if r.hudRows > 1 {
		s.DrawText(0, 1, " arrows/wasd: move  enter: start/next  tab: scores  q: quit", core.ColorGray)
	}
}

// drawBorder outlines the right and bottom edges of the scaled arena.
func (r *termRenderer) drawBorder(s *core.Screen) {
	if r.spriteScale <= 0 {
		return
	}
	right := int(math.Ceil(r.arena.Width * r.spriteScale / r.cellW))
	bottom := int(math.Ceil(r.arena.Height*r.spriteScale/r.cellH)) + r.hudRows

	for y := r.hudRows; y < bottom; y++ {
		s.SetColored(right, y, '│', core.ColorBlue)
	}
	for x := 0; x < right; x++ {
		s.SetColored(x, bottom, '─', core.ColorBlue)
	}
	s.SetColored(right, bottom, '┘', core.ColorBlue)
}

func (r *termRenderer) drawStart(s *core.Screen) {
	lines := []string{"M A Z E", "", "Guide the square to the gold goal", "", "ENTER to start   Q to quit"}
	if r.completed {
		lines = []string{
			"Congratulations!",
			"",
			fmt.Sprintf("You completed all levels with a score of %d!", r.completeScore),
			"",
			"ENTER to play again   TAB for scores",
		}
	}
	r.drawOverlay(s, lines, core.ColorBrightYellow)
}

func (r *termRenderer) drawLevelComplete(s *core.Screen) {
	lines := []string{
		"Level Complete!",
		"",
		fmt.Sprintf("Score: %d | Time: %ds", r.statsScore, r.statsSeconds),
		"",
		"ENTER for next level",
	}
	r.drawOverlay(s, lines, core.ColorGreen)
}

// drawOverlay draws a centered box with the given lines. The first line
// uses the accent color.
func (r *termRenderer) drawOverlay(s *core.Screen, lines []string, accent core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width = min(width+6, s.Width())
	height := min(len(lines)+4, s.Height())

	x0 := (s.Width() - width) / 2
	y0 := (s.Height() - height) / 2
	s.FillCells(x0, y0, x0+width, y0+height, ' ', core.ColorDefault)
	s.DrawBox(x0, y0, x0+width, y0+height, accent)

	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = accent
		}
		s.DrawTextCentered(y0+2+i, l, c)
	}
}

var _ game.Renderer = (*termRenderer)(nil)
