package bubblepop

import (
	"time"

	"github.com/vovakirdan/bubble-pop/internal/config"
	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/dependencies/clock"
	"github.com/vovakirdan/bubble-pop/internal/dependencies/random"
	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop/engine"
	"github.com/vovakirdan/bubble-pop/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeZen      Mode = "zen"
)

// Registered game IDs.
const (
	IDCampaign = "bubblepop"
	IDZen      = "bubblepop_zen"
)

// Animation lengths in ticks at 60fps.
const (
	popAnimTicks  = 8
	dropAnimTicks = 10
)

// Game adapts an engine session to the platform's tick loop.
type Game struct {
	mode       Mode
	player     Player
	startLevel int // per-instance override of the package start level
	cfg        config.BubblePopConfig

	session *engine.Session
	fx      *feedback
	board   *engine.Board // committed board, refreshed after each selection
	err     error         // fatal engine error, ends the game

	tick     uint64
	tickRate int
	screenW  int
	screenH  int
	layout   core.GridLayout
	palette  []core.Color
	cursor   engine.Pos

	// Animation of the last resolution. The session stays busy until
	// animTicks runs out and Settle is called.
	animTicks int
	popped    []engine.Pos
	landed    map[engine.Pos]bool
	lastKind  engine.Kind

	paused   bool
	tooSmall bool
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewZen creates a new endless zen mode game.
func NewZen() *Game {
	return &Game{mode: ModeZen}
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.Register(IDZen, func() registry.Game {
		return NewZen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return IDZen
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Bubble Pop (Zen)"
	}
	return "Bubble Pop"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.mode == ModeZen {
		return "Endless popping, no move limit"
	}
	return "Reach each level's score before your moves run out"
}

// SetPlayer overrides the default player for this game. Takes effect on
// the next Reset.
func (g *Game) SetPlayer(p Player) {
	g.player = p
}

// Player returns the player this game scores for.
func (g *Game) Player() Player {
	if g.player.Name == "" {
		return CurrentPlayer()
	}
	return g.player
}

// StartAt makes the next Reset begin at the given campaign level
// (1-based). Used where package settings would be shared between
// concurrent players.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// tickClock derives combo timing from simulation ticks so replays with
// the same seed and inputs score identically.
type tickClock struct {
	g     *Game
	epoch time.Time
}

func (c tickClock) Now() time.Time {
	rate := c.g.tickRate
	if rate <= 0 {
		rate = 60
	}
	return c.epoch.Add(time.Duration(c.g.tick) * time.Second / time.Duration(rate))
}

var _ clock.Clock = tickClock{}

// Reset initializes/restarts the game. A running session is quit first.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.session != nil {
		g.session.Quit()
	}

	g.cfg = ActiveConfig()
	g.player = g.Player()
	g.tick = 0
	g.tickRate = cfg.TickRate
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.err = nil
	g.animTicks = 0
	g.popped = nil
	g.landed = nil
	g.palette = paletteColors(g.cfg)

	startLevel := 0
	if g.mode == ModeCampaign {
		startLevel = takeStartLevel()
		if g.startLevel > 0 {
			startLevel, g.startLevel = g.startLevel, 0
		}
	}

	now := func() uint64 { return g.tick }
	g.fx = newFeedback(now, random.New(cfg.Seed+1), isMuted())

	ec := engineConfig(g.cfg, g.mode, g.player.Age, startLevel)
	session, err := engine.NewSession(ec,
		engine.WithRandom(random.New(cfg.Seed)),
		engine.WithClock(tickClock{g: g, epoch: time.Unix(0, 0)}),
		engine.WithListener(g.fx),
		engine.WithAudio(g.fx),
		engine.WithLogger(currentLogger().With("game", g.ID(), "player", g.player.Name)),
	)
	if err == nil {
		err = session.Start()
	}
	g.session = session
	if err != nil {
		g.fail(err)
	}
	g.refreshBoard()

	g.cursor = engine.Pos{Row: ec.Rows / 2, Col: ec.Cols / 2}
	g.relayout()
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.relayout()
}

func (g *Game) relayout() {
	rows, cols := g.cfg.Grid.Rows, g.cfg.Grid.Cols
	g.layout = core.CenterGrid(g.screenW, g.screenH-footerHeight, rows, cols, cellWidth, cellHeight, hudHeight+1)
	// Board plus its frame, HUD and footer must fit
	minW := cols*cellWidth + 2
	minH := rows*cellHeight + hudHeight + footerHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

func (g *Game) fail(err error) {
	g.err = err
	currentLogger().Error("bubble pop session failed", "game", g.ID(), "err", err)
	if g.session != nil {
		g.session.Quit()
	}
}

func (g *Game) refreshBoard() {
	if g.session == nil {
		return
	}
	if b := g.session.Board(); b != nil {
		g.board = b
	}
}

// Close ends the running session. Called by the platform when the
// player leaves mid-game.
func (g *Game) Close() {
	if g.session != nil {
		g.session.Quit()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionMute) && g.fx != nil {
		g.fx.muted = !g.fx.muted
	}

	if in.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.advanceAnimation()

	if g.over() {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	for _, c := range in.Clicks {
		if row, col, ok := g.layout.CellAt(c.X, c.Y); ok {
			g.cursor = engine.Pos{Row: row, Col: col}
			g.selectAt(row, col)
		}
	}
	if in.Has(core.ActionSelect) {
		g.selectAt(g.cursor.Row, g.cursor.Col)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	rows, cols := g.cfg.Grid.Rows, g.cfg.Grid.Cols
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, rows-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, cols-1)
}

// selectAt hands a selection to the session. Selections made while the
// previous one is still animating come back Busy and are dropped.
func (g *Game) selectAt(row, col int) {
	res, err := g.session.Select(row, col)
	if err != nil {
		g.fail(err)
		g.refreshBoard()
		return
	}

	switch res.Outcome {
	case engine.OutcomeResolved:
		g.refreshBoard()
		g.startAnimation(res)
	case engine.OutcomeInvalid:
		g.fx.OnNoMatch(engine.Pos{Row: row, Col: col})
	}
}

func (g *Game) startAnimation(res engine.Result) {
	g.popped = res.Affected
	g.lastKind = res.Kind
	g.landed = make(map[engine.Pos]bool, len(res.Moves)+len(res.Filled))
	for _, m := range res.Moves {
		g.landed[m.To] = true
	}
	for _, p := range res.Filled {
		g.landed[p] = true
	}
	g.animTicks = popAnimTicks + dropAnimTicks
}

// advanceAnimation counts the animation down and releases the session
// when it ends.
func (g *Game) advanceAnimation() {
	if g.animTicks <= 0 {
		return
	}
	g.animTicks--
	if g.animTicks == 0 {
		g.popped = nil
		g.landed = nil
		g.session.Settle()
	}
}

// popping reports whether the burst phase of the animation is showing.
func (g *Game) popping() bool {
	return g.animTicks > dropAnimTicks
}

func (g *Game) over() bool {
	if g.err != nil || g.session == nil {
		return true
	}
	return g.session.State().Phase == engine.PhaseGameOver
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.session != nil {
		score = g.session.State().Score
	}
	return core.GameState{
		Score:    score,
		GameOver: g.over(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Err returns the error that ended the game, if any.
func (g *Game) Err() error {
	return g.err
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space/Click: Pop | M: Mute | P: Pause | R: Restart | Q: Quit"
}

// paletteColors resolves the configured palette, falling back to the
// bright terminal colors for entries that are missing or unknown.
func paletteColors(cfg config.BubblePopConfig) []core.Color {
	fallback := []core.Color{
		core.ColorBrightRed, core.ColorBrightBlue, core.ColorBrightGreen,
		core.ColorBrightYellow, core.ColorBrightMagenta, core.ColorBrightCyan,
		core.ColorOrange, core.ColorPink,
	}
	colors := make([]core.Color, max(cfg.Grid.Colors, 0))
	for i := range colors {
		colors[i] = fallback[i%len(fallback)]
		if i < len(cfg.Palette) {
			if c, ok := core.ParseColor(cfg.Palette[i].Color); ok {
				colors[i] = c
			}
		}
	}
	return colors
}
