package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridsnake/game"
)

// Each board cell is drawn two columns wide so it comes out roughly square
const cellCols = 2

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleFood   = tcell.StyleDefault.Background(tcell.NewRGBColor(0xe7, 0x4c, 0x3c))

	snakeRGB = [3]int32{0x84, 0xdc, 0xcf}
	boardRGB = [3]int32{0x10, 0x14, 0x18}
)

// Host owns the tcell screen and feeds it from one game
type Host struct {
	screen tcell.Screen
	game   *game.Game
	last   time.Time
	status game.Status

	// restartAfter > 0 resets a finished game on its own (demo mode)
	restartAfter time.Duration
	endedAt      time.Time
}

// NewHost binds a game to an initialised screen
func NewHost(screen tcell.Screen, g *game.Game, now time.Time) *Host {
	return &Host{screen: screen, game: g, last: now, status: g.Status()}
}

// HandleEvent applies one terminal event. It returns false when the player
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			return false
		}

		if h.game.Status().Terminal() {
			h.game.Reset()
			log.Printf("reset after %s", h.status)
			h.status = h.game.Status()
			return true
		}
		if d, ok := keyDirection(ev); ok {
			h.game.RequestDirection(d)
		}

	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func keyDirection(ev *tcell.EventKey) (game.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.Up, true
	case tcell.KeyDown:
		return game.Down, true
	case tcell.KeyLeft:
		return game.Left, true
	case tcell.KeyRight:
		return game.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return game.Up, true
		case 's', 'S':
			return game.Down, true
		case 'a', 'A':
			return game.Left, true
		case 'd', 'D':
			return game.Right, true
		}
	}
	return 0, false
}

// Frame advances the game by the wall time since the previous frame and
// redraws the screen
func (h *Host) Frame(now time.Time) {
	if h.restartAfter > 0 && h.game.Status().Terminal() && now.Sub(h.endedAt) >= h.restartAfter {
		h.game.Reset()
		h.status = h.game.Status()
	}

	n, _ := h.game.Advance(now.Sub(h.last))
	h.last = now
	if n > 0 && h.game.Status() != h.status {
		h.status = h.game.Status()
		h.endedAt = now
		log.Printf("game ended: %s %s, score %d, eaten %d, ticks %d",
			h.status, h.game.Cause(), h.game.Score(), h.game.Eaten(), h.game.Ticks())
	}
	h.Draw()
}

// Draw renders the current projection
func (h *Host) Draw() {
	f := game.Project(h.game)
	h.screen.Clear()

	w, ht := f.Grid.Width, f.Grid.Height
	h.drawBorder(w*cellCols+2, ht+2)

	for x := 0; x < w; x++ {
		for y := 0; y < ht; y++ {
			h.fillCell(game.Cell{X: x, Y: y}, ' ', tcell.StyleDefault.Background(rgb(boardRGB)))
		}
	}
	if f.HasFood {
		h.fillCell(f.Food, ' ', styleFood)
	}
	for _, s := range f.Segments {
		h.fillCell(s.Cell, segmentRune(s), segmentStyle(s))
	}

	status := fmt.Sprintf(" Score: %d  Length: %d ", f.Score, len(f.Segments))
	h.drawText(0, ht+2, status, styleStatus)
	if f.Message != "" {
		h.drawText(0, ht+3, f.Message, styleStatus.Foreground(tcell.ColorYellow))
	}
	h.screen.Show()
}

func (h *Host) fillCell(c game.Cell, r rune, style tcell.Style) {
	x := 1 + c.X*cellCols
	for i := 0; i < cellCols; i++ {
		h.screen.SetContent(x+i, 1+c.Y, r, nil, style)
	}
}

func (h *Host) drawBorder(w, ht int) {
	for x := 1; x < w-1; x++ {
		h.screen.SetContent(x, 0, '─', nil, styleBorder)
		h.screen.SetContent(x, ht-1, '─', nil, styleBorder)
	}
	for y := 1; y < ht-1; y++ {
		h.screen.SetContent(0, y, '│', nil, styleBorder)
		h.screen.SetContent(w-1, y, '│', nil, styleBorder)
	}
	h.screen.SetContent(0, 0, '┌', nil, styleBorder)
	h.screen.SetContent(w-1, 0, '┐', nil, styleBorder)
	h.screen.SetContent(0, ht-1, '└', nil, styleBorder)
	h.screen.SetContent(w-1, ht-1, '┘', nil, styleBorder)
}

func (h *Host) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Older segments fade towards the board colour; the inset shows up as a
// shaded block instead of a full one
func segmentStyle(s game.Segment) tcell.Style {
	var c [3]int32
	for i := range c {
		c[i] = boardRGB[i] + int32(float64(snakeRGB[i]-boardRGB[i])*s.Alpha)
	}
	return tcell.StyleDefault.Foreground(rgb(c)).Background(rgb(boardRGB))
}

func segmentRune(s game.Segment) rune {
	switch {
	case s.Head:
		return '█'
	case s.Inset > 0.15:
		return '▒'
	case s.Inset > 0.05:
		return '▓'
	}
	return '█'
}

func rgb(c [3]int32) tcell.Color {
	return tcell.NewRGBColor(c[0], c[1], c[2])
}
