package bubblepop

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/bubble-pop/internal/config"
	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/dependencies/mocks"
	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop/engine"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     42,
}

// monoConfig is a 4x4 single-color board: every selection pops all 16
// bubbles and no power-ups spawn.
func monoConfig(levels ...config.BubbleLevel) config.BubblePopConfig {
	cfg := config.DefaultBubblePopConfig()
	cfg.Grid = config.BubbleGrid{Rows: 4, Cols: 4, Colors: 1}
	cfg.PowerUps.Spawn = config.SpawnChance{}
	if len(levels) == 0 {
		levels = []config.BubbleLevel{{Name: "One", Target: 10000, Moves: 5}}
	}
	cfg.Levels = levels
	return cfg
}

func useConfig(t *testing.T, cfg config.BubblePopConfig) {
	t.Helper()
	prevCfg, prevPlayer := ActiveConfig(), CurrentPlayer()
	SetConfig(cfg)
	SetPlayer(Player{Name: "Tester"})
	t.Cleanup(func() {
		SetConfig(prevCfg)
		SetPlayer(prevPlayer)
		SetStartLevel(0)
	})
}

func selectFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionSelect)
	return in
}

func actionFrame(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

// settle runs empty ticks until the pop animation has finished.
func settle(g *Game) {
	for i := 0; i < popAnimTicks+dropAnimTicks; i++ {
		g.Step(core.NewInputFrame())
	}
}

func TestDeterministicStart(t *testing.T) {
	useConfig(t, config.DefaultBubblePopConfig())

	g1 := New()
	g1.Reset(testRuntime)
	g2 := New()
	g2.Reset(testRuntime)

	if !reflect.DeepEqual(g1.Snapshot().Board, g2.Snapshot().Board) {
		t.Error("Same seed should produce same initial board")
	}

	other := testRuntime
	other.Seed = 43
	g3 := New()
	g3.Reset(other)
	if reflect.DeepEqual(g1.Snapshot().Board, g3.Snapshot().Board) {
		t.Error("Different seeds produced identical 8x10 boards")
	}
}

func TestDeterministicReplay(t *testing.T) {
	useConfig(t, config.DefaultBubblePopConfig())

	inputs := []core.Action{
		core.ActionSelect, core.ActionLeft, core.ActionSelect, core.ActionUp,
		core.ActionSelect, core.ActionRight, core.ActionRight, core.ActionSelect,
	}
	play := func() Snapshot {
		g := New()
		g.Reset(testRuntime)
		for _, a := range inputs {
			g.Step(actionFrame(a))
			settle(g)
		}
		return g.Snapshot()
	}

	if a, b := play(), play(); !reflect.DeepEqual(a, b) {
		t.Errorf("Replays diverged:\n%+v\nvs\n%+v", a, b)
	}
}

func TestSelectPopsAndHoldsUntilAnimated(t *testing.T) {
	useConfig(t, monoConfig())

	g := New()
	g.Reset(testRuntime)

	g.Step(selectFrame())
	snap := g.Snapshot()
	if snap.Score != 160 {
		t.Errorf("Score after popping 16 = %d, expected 160", snap.Score)
	}
	if snap.MovesLeft != 4 {
		t.Errorf("MovesLeft = %d, expected 4", snap.MovesLeft)
	}
	if snap.State != StateAnimating {
		t.Errorf("State = %s, expected animating", snap.State)
	}

	// Selections during the animation are dropped
	g.Step(selectFrame())
	if got := g.Snapshot(); got.MovesLeft != 4 || got.Score != 160 {
		t.Errorf("selection during animation changed state: %+v", got)
	}

	settle(g)
	if g.Snapshot().State != StatePlaying {
		t.Fatalf("State after animation = %s, expected playing", g.Snapshot().State)
	}

	// Second pop lands inside the combo window (under a second of ticks)
	g.Step(selectFrame())
	snap = g.Snapshot()
	if snap.Score != 400 {
		t.Errorf("Score after combo pop = %d, expected 160+240", snap.Score)
	}
	if snap.Combo != 1 {
		t.Errorf("Combo = %d, expected 1", snap.Combo)
	}
}

func TestComboExpiresWithTicks(t *testing.T) {
	useConfig(t, monoConfig())

	g := New()
	g.Reset(testRuntime)

	g.Step(selectFrame())
	// Two seconds of ticks
	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Step(selectFrame())

	if snap := g.Snapshot(); snap.Score != 320 || snap.Combo != 0 {
		t.Errorf("after a slow second pop score=%d combo=%d, expected 320 and 0", snap.Score, snap.Combo)
	}
}

func TestCampaignProgressionAndWin(t *testing.T) {
	useConfig(t, monoConfig(
		config.BubbleLevel{Name: "One", Target: 100, Moves: 5},
		config.BubbleLevel{Name: "Two", Target: 200, Moves: 7},
	))

	g := New()
	g.Reset(testRuntime)

	g.Step(selectFrame())
	snap := g.Snapshot()
	if snap.Level != 2 || snap.Target != 200 {
		t.Errorf("after clearing level 1: level=%d target=%d, expected 2 and 200", snap.Level, snap.Target)
	}
	if snap.MovesLeft != 7 {
		t.Errorf("MovesLeft = %d, expected level 2 budget of 7", snap.MovesLeft)
	}
	if g.fx.levelCleared != 1 {
		t.Errorf("level cleared caption not recorded, got %d", g.fx.levelCleared)
	}

	settle(g)
	g.Step(selectFrame())

	if snap = g.Snapshot(); snap.State != StateWin {
		t.Errorf("State = %s, expected win", snap.State)
	}
	if !g.State().GameOver {
		t.Error("winning should end the game")
	}
}

func TestOutOfMoves(t *testing.T) {
	useConfig(t, monoConfig(config.BubbleLevel{Name: "Short", Target: 10000, Moves: 1}))

	g := New()
	g.Reset(testRuntime)
	g.Step(selectFrame())

	if snap := g.Snapshot(); snap.State != StateGameOver || snap.MovesLeft != 0 {
		t.Errorf("snapshot = %+v, expected game over with 0 moves", snap)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "OUT OF MOVES") {
		t.Error("game over overlay missing")
	}
}

func TestZenModeUnlimited(t *testing.T) {
	useConfig(t, monoConfig())

	g := NewZen()
	g.Reset(testRuntime)

	for i := 0; i < 8; i++ {
		g.Step(selectFrame())
		settle(g)
	}

	snap := g.Snapshot()
	if snap.Mode != "zen" || snap.Level != 0 {
		t.Errorf("zen snapshot mode=%s level=%d", snap.Mode, snap.Level)
	}
	if snap.MovesLeft != -1 {
		t.Errorf("MovesLeft = %d, expected -1 for unlimited", snap.MovesLeft)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, zen should keep playing", snap.State)
	}
	if g.ID() != IDZen {
		t.Errorf("ID() = %s, expected %s", g.ID(), IDZen)
	}
}

func TestClickSelectsCell(t *testing.T) {
	useConfig(t, monoConfig())

	g := New()
	g.Reset(testRuntime)

	r := g.layout.CellRect(1, 3)
	in := core.NewInputFrame()
	in.AddClick(r.X+1, r.Y)
	g.Step(in)

	snap := g.Snapshot()
	if snap.Cursor != (engine.Pos{Row: 1, Col: 3}) {
		t.Errorf("Cursor = %v, expected (1,3)", snap.Cursor)
	}
	if snap.Score == 0 {
		t.Error("click on a bubble should pop it")
	}

	// Clicks outside the board do nothing
	g2 := New()
	g2.Reset(testRuntime)
	off := core.NewInputFrame()
	off.AddClick(0, 0)
	g2.Step(off)
	if g2.Snapshot().Score != 0 {
		t.Error("click outside the board should not pop")
	}
}

func TestCursorClamps(t *testing.T) {
	useConfig(t, monoConfig())

	g := New()
	g.Reset(testRuntime)

	for i := 0; i < 10; i++ {
		g.Step(actionFrame(core.ActionLeft))
		g.Step(actionFrame(core.ActionUp))
	}
	if g.cursor != (engine.Pos{}) {
		t.Errorf("cursor = %v, expected (0,0)", g.cursor)
	}

	for i := 0; i < 10; i++ {
		g.Step(actionFrame(core.ActionRight))
		g.Step(actionFrame(core.ActionDown))
	}
	if g.cursor != (engine.Pos{Row: 3, Col: 3}) {
		t.Errorf("cursor = %v, expected (3,3)", g.cursor)
	}
}

func TestPauseBlocksInput(t *testing.T) {
	useConfig(t, monoConfig())

	g := New()
	g.Reset(testRuntime)

	g.Step(actionFrame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("P should pause")
	}
	g.Step(selectFrame())
	if g.Snapshot().Score != 0 {
		t.Error("paused game should ignore selections")
	}

	g.Step(actionFrame(core.ActionPause))
	g.Step(selectFrame())
	if g.Snapshot().Score == 0 {
		t.Error("unpaused game should accept selections")
	}
}

func TestStartLevelUsedOnce(t *testing.T) {
	cfg := config.DefaultBubblePopConfig()
	useConfig(t, cfg)

	SetStartLevel(2)
	g := New()
	g.Reset(testRuntime)
	if snap := g.Snapshot(); snap.Level != 2 || snap.Target != 250 {
		t.Errorf("start level snapshot level=%d target=%d, expected 2 and 250", snap.Level, snap.Target)
	}

	g.Reset(testRuntime)
	if g.Snapshot().Level != 1 {
		t.Error("restart should go back to level 1")
	}

	g.StartAt(3)
	g.Reset(testRuntime)
	if snap := g.Snapshot(); snap.Level != 3 || snap.Target != 500 {
		t.Errorf("StartAt snapshot level=%d target=%d, expected 3 and 500", snap.Level, snap.Target)
	}
	if GetStartLevel() != 0 {
		t.Error("StartAt should not touch the package start level")
	}
}

func TestTooSmallWindow(t *testing.T) {
	useConfig(t, config.DefaultBubblePopConfig())

	g := New()
	small := testRuntime
	small.ScreenW, small.ScreenH = 20, 8
	g.Reset(small)

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, expected paused_small_window", g.Snapshot().State)
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message missing")
	}

	// Growing the window resumes without restarting
	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("State after resize = %s, expected playing", g.Snapshot().State)
	}
}

func TestRenderHUDAndBoard(t *testing.T) {
	cfg := monoConfig()
	cfg.Palette = []config.PaletteEntry{{Name: "Teal", Color: "cyan"}}
	useConfig(t, cfg)

	g := New()
	g.SetPlayer(Player{Name: "Madison", Age: 3})
	g.Reset(testRuntime)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Bubble Pop", "Madison (3)", "Score: 0", "Moves: 5", "Level 1/1 One"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	r := g.layout.CellRect(0, 0)
	c := screen.GetCell(r.X+1, r.Y)
	if c.Rune != '●' || c.Color != core.ColorCyan {
		t.Errorf("bubble cell = %+v, expected cyan bubble", c)
	}

	cur := g.layout.CellRect(g.cursor.Row, g.cursor.Col)
	if screen.Get(cur.X, cur.Y) != '[' || screen.Get(cur.X+2, cur.Y) != ']' {
		t.Error("cursor brackets missing")
	}
}

func TestYoungPlayerScoresMore(t *testing.T) {
	useConfig(t, monoConfig())

	g := New()
	g.SetPlayer(Player{Name: "James", Age: 4})
	g.Reset(testRuntime)
	g.Step(selectFrame())

	// 16 bubbles x 10 x 1.5 for players under 7
	if got := g.Snapshot().Score; got != 240 {
		t.Errorf("Score = %d, expected 240", got)
	}
}

func TestMuteToggle(t *testing.T) {
	useConfig(t, monoConfig())

	g := New()
	g.Reset(testRuntime)

	g.Step(selectFrame())
	if g.fx.activeSound(g.tick) == "" {
		t.Fatal("pop should show a sound caption")
	}

	g.Step(actionFrame(core.ActionMute))
	if g.fx.activeSound(g.tick) != "" {
		t.Error("muted game should hide sound captions")
	}
}

func TestCloseEndsSession(t *testing.T) {
	useConfig(t, monoConfig())

	g := New()
	g.Reset(testRuntime)
	g.Step(selectFrame())
	g.Close()

	st := g.State()
	if !st.GameOver || st.Score != 160 {
		t.Errorf("state after Close = %+v, expected game over keeping 160", st)
	}
}

func TestEngineConfigMapping(t *testing.T) {
	cfg := config.DefaultBubblePopConfig()
	cfg.NoMoves = config.NoMovesEnd
	cfg.PowerUps.Superhero.Radius = 2
	cfg.PowerUps.Prince.Weight = 0

	ec := engineConfig(cfg, ModeCampaign, 5, 3)
	if ec.NoMoves != engine.NoMovesEnd {
		t.Error("no_moves: end should map to NoMovesEnd")
	}
	if ec.SuperheroRadius != 2 {
		t.Errorf("SuperheroRadius = %d, expected 2", ec.SuperheroRadius)
	}
	if ec.Spawn.Weights[engine.KindPrince] != 0 || ec.Spawn.Weights[engine.KindUnicorn] != 1 {
		t.Errorf("weights = %v", ec.Spawn.Weights)
	}
	if len(ec.Levels) != 3 || ec.StartLevel != 3 {
		t.Errorf("levels=%d start=%d, expected 3 and 3", len(ec.Levels), ec.StartLevel)
	}
	if got := ec.Difficulty(ec.PlayerAge); got != 1.5 {
		t.Errorf("Difficulty(5) = %v, expected 1.5", got)
	}
	if !ec.HoldUntilSettled {
		t.Error("the adapter must hold the session until animations finish")
	}

	zen := engineConfig(cfg, ModeZen, 0, 2)
	if len(zen.Levels) != 0 || zen.MoveLimit != 0 {
		t.Errorf("zen config levels=%d limit=%d, expected none", len(zen.Levels), zen.MoveLimit)
	}

	fixed := cfg
	config.ApplyBubblePopPreset(&fixed, config.DifficultyFixed)
	if got := engineConfig(fixed, ModeCampaign, 5, 0).Difficulty(5); got != 1.0 {
		t.Errorf("fixed preset Difficulty(5) = %v, expected 1.0", got)
	}
}

func TestLevelMovesFallback(t *testing.T) {
	cfg := config.DefaultBubblePopConfig()
	cfg.Levels = []config.BubbleLevel{
		{Name: "Own", Target: 50, Moves: 7},
		{Name: "Shared", Target: 80},
	}

	cfg.Moves.Limit = 12
	ec := engineConfig(cfg, ModeCampaign, 0, 0)
	if ec.Levels[0].Moves != 7 || ec.Levels[1].Moves != 12 {
		t.Errorf("level moves = %d, %d, expected 7 and 12", ec.Levels[0].Moves, ec.Levels[1].Moves)
	}

	cfg.Moves.Limit = 0
	ec = engineConfig(cfg, ModeCampaign, 0, 0)
	if ec.Levels[1].Moves != defaultLevelMoves {
		t.Errorf("level moves = %d, expected %d", ec.Levels[1].Moves, defaultLevelMoves)
	}
	for i, lvl := range levelsOf(cfg) {
		if lvl.Moves != ec.Levels[i].Moves {
			t.Errorf("level %d: menu shows %d moves, engine uses %d", i+1, lvl.Moves, ec.Levels[i].Moves)
		}
	}
}

func TestLevelHelpers(t *testing.T) {
	useConfig(t, config.DefaultBubblePopConfig())

	if LevelCount() != 3 {
		t.Errorf("LevelCount() = %d, expected 3", LevelCount())
	}
	if names := LevelNames(); names[0] != "Meadow" {
		t.Errorf("first level name = %s, expected Meadow", names[0])
	}
	if targets := LevelTargets(); !reflect.DeepEqual(targets, []int{100, 250, 500}) {
		t.Errorf("LevelTargets() = %v", targets)
	}
	if GetLevel(3) != nil {
		t.Error("GetLevel(3) should be nil")
	}
	if lvl := GetLevel(2); lvl == nil || lvl.Moves != 15 {
		t.Errorf("GetLevel(2) = %+v", lvl)
	}
}

func TestEncouragement(t *testing.T) {
	words := mocks.NewMockRandom()

	words.QueueIntn(0)
	if got := encouragement(words, 2, 0, 20); got != "+20" {
		t.Errorf("small pop caption = %q", got)
	}
	words.QueueIntn(6)
	if got := encouragement(words, 8, 0, 80); got != "Great! +80" {
		t.Errorf("big pop caption = %q", got)
	}
	words.QueueIntn(0)
	if got := encouragement(words, 3, 2, 90); got != "Amazing 3x Combo! +90" {
		t.Errorf("combo caption = %q", got)
	}
}

func TestPaletteFallback(t *testing.T) {
	cfg := config.DefaultBubblePopConfig()
	cfg.Grid.Colors = 8
	cfg.Palette = []config.PaletteEntry{{Color: "gold"}, {Color: "nonsense"}}

	got := paletteColors(cfg)
	if len(got) != 8 {
		t.Fatalf("len = %d, expected 8", len(got))
	}
	if got[0] != core.ColorGold {
		t.Errorf("palette[0] = %v, expected gold", got[0])
	}
	if got[1] != core.ColorBrightBlue {
		t.Errorf("unknown color should fall back, got %v", got[1])
	}
}
