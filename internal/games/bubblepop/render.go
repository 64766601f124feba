package bubblepop

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop/engine"
)

const (
	cellWidth    = 3 // "[●]" with the cursor, " ● " without
	cellHeight   = 1
	hudHeight    = 3
	footerHeight = 2 // caption line + controls
)

// Glyphs for each cell kind.
var kindGlyphs = map[engine.Kind]rune{
	engine.KindNormal:    '●',
	engine.KindUnicorn:   '✦',
	engine.KindSuperhero: '✸',
	engine.KindPrincess:  '♥',
	engine.KindPrince:    '♛',
}

const (
	glyphGolden = '◉'
	glyphBurst  = '✶'
	glyphLanded = '○'
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws title, player, score, moves and level info.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightWhite)
	if g.session == nil {
		return
	}
	st := g.session.State()

	left := 2
	right := g.screenW - 2

	who := g.player.Name
	if g.player.Age > 0 {
		who = fmt.Sprintf("%s (%d)", who, g.player.Age)
	}
	dst.DrawTextColored(left, 1, who, core.ColorCyan)

	scoreStr := fmt.Sprintf("Score: %d", st.Score)
	drawRightAligned(dst, right, 1, scoreStr, core.ColorBrightYellow)

	moves := "Moves: ∞"
	if !st.Unlimited {
		moves = fmt.Sprintf("Moves: %d", st.MovesLeft)
	}
	color := core.ColorWhite
	if !st.Unlimited && st.MovesLeft <= 3 {
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(left, 2, moves, color)

	var info string
	if st.Levels > 0 {
		name := ""
		if lvl := levelsOf(g.cfg); st.Level >= 1 && st.Level <= len(lvl) {
			name = lvl[st.Level-1].Name
		}
		info = fmt.Sprintf("Level %d/%d %s  Target: %d", st.Level, st.Levels, name, st.Target)
	} else {
		info = "Zen mode"
	}
	if st.Combo > 0 {
		info = fmt.Sprintf("Combo x%d  %s", st.Combo+1, info)
	}
	drawRightAligned(dst, right, 2, info, core.ColorWhite)
}

func drawRightAligned(dst *core.Screen, right, y int, text string, c core.Color) {
	dst.DrawTextColored(right-utf8.RuneCountInString(text), y, text, c)
}

// renderBoard draws the frame, bubbles, animation and cursor.
func (g *Game) renderBoard(dst *core.Screen) {
	bounds := g.layout.Bounds()
	frame := core.NewRect(bounds.X-1, bounds.Y-1, bounds.W+2, bounds.H+2)
	dst.DrawBox(frame, core.ColorGray)

	if g.board == nil {
		return
	}

	burst := make(map[engine.Pos]bool, len(g.popped))
	if g.popping() {
		for _, p := range g.popped {
			burst[p] = true
		}
	}

	for row := 0; row < g.board.Rows(); row++ {
		for col := 0; col < g.board.Cols(); col++ {
			p := engine.Pos{Row: row, Col: col}
			r := g.layout.CellRect(row, col)
			x := r.X + 1 + g.fx.shakeOffset(p, g.tick)

			switch {
			case burst[p]:
				dst.SetColored(x, r.Y, glyphBurst, core.ColorBrightWhite)
			default:
				if cell, ok := g.board.Get(row, col); ok {
					glyph, color := g.cellGlyph(cell)
					if !g.popping() && g.landed[p] && cell.Kind == engine.KindNormal {
						glyph = glyphLanded
					}
					dst.SetColored(x, r.Y, glyph, color)
				}
			}

			if p == g.cursor && !g.over() {
				dst.SetColored(r.X, r.Y, '[', core.ColorBrightWhite)
				dst.SetColored(r.X+2, r.Y, ']', core.ColorBrightWhite)
			}
		}
	}
}

// cellGlyph picks the rune and color for a bubble.
func (g *Game) cellGlyph(cell engine.Cell) (rune, core.Color) {
	glyph, ok := kindGlyphs[cell.Kind]
	if !ok {
		glyph = '?'
	}
	if cell.Golden {
		if cell.Kind == engine.KindNormal {
			glyph = glyphGolden
		}
		return glyph, core.ColorGold
	}
	color := core.ColorDefault
	if int(cell.Color) >= 0 && int(cell.Color) < len(g.palette) {
		color = g.palette[cell.Color]
	}
	return glyph, color
}

// renderFooter draws the caption line and control hints.
func (g *Game) renderFooter(dst *core.Screen) {
	bounds := g.layout.Bounds()
	captionY := bounds.Bottom() + 1
	if g.fx != nil {
		if caption := g.fx.activeCaption(g.tick); caption != "" {
			dst.DrawTextCenteredColored(captionY, caption, core.ColorBrightYellow)
		}
		if sound := g.fx.activeSound(g.tick); sound != "" {
			drawRightAligned(dst, g.screenW-1, g.screenH-2, sound, core.ColorGray)
		}
		if g.fx.muted {
			drawRightAligned(dst, g.screenW-1, g.screenH-2, "muted", core.ColorGray)
		}
	}
	dst.DrawTextCenteredColored(g.screenH-1, g.Controls(), core.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen) {
	cx, cy := g.layout.Bounds().Center()

	if g.err != nil {
		g.drawOverlay(dst, cx, cy, core.ColorBrightRed, "OOPS", "The bubbles got stuck", "Press R to restart")
		return
	}

	if g.paused {
		g.drawOverlay(dst, cx, cy, core.ColorBrightWhite, "PAUSED", "Press P to resume")
		return
	}

	if !g.over() || g.session == nil {
		return
	}
	st := g.session.State()
	scoreStr := fmt.Sprintf("Final score: %d", st.Score)
	switch {
	case st.Won:
		g.drawOverlay(dst, cx, cy, core.ColorGold, "AMAZING JOB!", "All levels cleared!", scoreStr, "Press R to play again")
	case st.Levels > 0 && st.MovesLeft <= 0:
		g.drawOverlay(dst, cx, cy, core.ColorBrightMagenta, "OUT OF MOVES", scoreStr, "Press R to restart")
	default:
		g.drawOverlay(dst, cx, cy, core.ColorBrightMagenta, "GAME OVER", scoreStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		c := core.ColorWhite
		if i == 0 {
			c = color
		}
		dst.DrawTextColored(x, box.Y+1+i, line, c)
	}
}
