package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/bubble-pop/internal/config"
	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop"
	"github.com/vovakirdan/bubble-pop/internal/storage"
)

var testCfg = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}

// useOneMoveBoard configures a single-color 4x4 board with one move, so
// the first pop clears 16 bubbles and ends the game.
func useOneMoveBoard(t *testing.T, player bubblepop.Player) {
	t.Helper()
	prevCfg, prevPlayer := bubblepop.ActiveConfig(), bubblepop.CurrentPlayer()

	cfg := config.DefaultBubblePopConfig()
	cfg.Grid = config.BubbleGrid{Rows: 4, Cols: 4, Colors: 1}
	cfg.PowerUps.Spawn = config.SpawnChance{}
	cfg.Levels = []config.BubbleLevel{{Name: "One", Target: 10000, Moves: 1}}
	bubblepop.SetConfig(cfg)
	bubblepop.SetPlayer(player)

	t.Cleanup(func() {
		bubblepop.SetConfig(prevCfg)
		bubblepop.SetPlayer(prevPlayer)
		bubblepop.SetStartLevel(0)
	})
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func tick(t *testing.T, m tea.Model) tea.Model {
	t.Helper()
	return update(t, m, TickMsg(time.Now()))
}

func TestModelSavesScoreOnceOnGameOver(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Player{Name: "Madison", Age: 0})
	store := openTestStore(t)

	m := NewModel(bubblepop.New(), store, testCfg, "session-1")
	m.Init()

	var model tea.Model = m
	model = update(t, model, tea.KeyMsg{Type: tea.KeySpace})
	model = tick(t, model)
	model = tick(t, model)

	got := model.(Model)
	if !got.gameState.GameOver {
		t.Fatal("expected game over after the only move")
	}

	scores, err := store.TopScores(bubblepop.IDCampaign, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected exactly one saved score, got %d", len(scores))
	}
	if s := scores[0]; s.Player != "Madison" || s.SessionID != "session-1" || s.Score != 160 {
		t.Errorf("saved %+v, expected Madison/session-1/160", s)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Player{Name: "James"})

	m := NewModel(bubblepop.New(), nil, testCfg, "")
	m.Init()
	if _, err := uuid.Parse(m.sessionID); err != nil {
		t.Errorf("empty session ID should become a UUID, got %q", m.sessionID)
	}

	var model tea.Model = m
	model = update(t, model, tea.KeyMsg{Type: tea.KeySpace})
	model = tick(t, model)
	if !model.(Model).gameState.GameOver {
		t.Fatal("expected game over")
	}

	model = update(t, model, runeKey('r'))
	model = tick(t, model)
	got := model.(Model)
	if got.gameState.GameOver || got.gameState.Score != 0 || got.scoreSaved {
		t.Errorf("restart should start a fresh game, state %+v saved=%v", got.gameState, got.scoreSaved)
	}
}

func TestModelMouseClickPops(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Player{Name: "James"})

	game := bubblepop.New()
	m := NewModel(game, nil, testCfg, "s")
	m.Init()

	// Find a bubble on screen and click it
	screen := core.NewScreen(testCfg.ScreenW, testCfg.ScreenH)
	game.Render(screen)
	x, y := -1, -1
	for row := 0; row < screen.Height() && x < 0; row++ {
		for col := 0; col < screen.Width(); col++ {
			if screen.Get(col, row) == '●' {
				x, y = col, row
				break
			}
		}
	}
	if x < 0 {
		t.Fatal("no bubble rendered")
	}

	var model tea.Model = m
	model = update(t, model, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	model = tick(t, model)

	if got := model.(Model).gameState.Score; got != 160 {
		t.Errorf("score after click = %d, expected 160", got)
	}
}

func TestModelQuitSavesPartialScore(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Player{Name: "Madison"})
	cfg := bubblepop.ActiveConfig()
	cfg.Levels[0].Moves = 5
	bubblepop.SetConfig(cfg)
	store := openTestStore(t)

	m := NewModel(bubblepop.New(), store, testCfg, "quit-session")
	m.Init()

	var model tea.Model = m
	model = update(t, model, tea.KeyMsg{Type: tea.KeySpace})
	model = tick(t, model)
	if model.(Model).gameState.GameOver {
		t.Fatal("game should still be running with moves left")
	}

	model, cmd := model.Update(runeKey('q'))
	if cmd == nil || !model.(Model).IsQuitting() {
		t.Fatal("q should quit")
	}

	best, err := store.PlayerBest(bubblepop.IDCampaign, "Madison")
	if err != nil || best != 160 {
		t.Errorf("PlayerBest = %d, %v; expected the 160 scored before quitting", best, err)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Player{Name: "James"})
	cfg := bubblepop.ActiveConfig()
	cfg.Levels[0].Moves = 5
	bubblepop.SetConfig(cfg)

	game := bubblepop.New()
	m := NewModel(game, nil, testCfg, "s")
	m.Init()

	var model tea.Model = m
	model = update(t, model, tea.KeyMsg{Type: tea.KeySpace})
	model = tick(t, model)
	model = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})

	if got := game.State().Score; got != 160 {
		t.Errorf("score after resize = %d, expected 160 (no restart)", got)
	}
	if !strings.Contains(model.View(), "Score: 160") {
		t.Error("view should show the kept score")
	}
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{" 4 ", 4, false},
		{"12", 12, false},
		{"abc", 0, true},
		{"-3", 0, true},
		{"500", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAge(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseAge(%q) = %d, %v; expected %d, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestMenuPicksRosterPlayer(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Roster[0])

	var model tea.Model = NewMenuModel(nil, testCfg)
	if v := model.View(); !strings.Contains(v, "Madison (3)") || !strings.Contains(v, "New player...") {
		t.Errorf("menu view missing roster entries:\n%s", v)
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := model.(MenuModel).Selected()
	if got == nil || *got != bubblepop.Roster[1] {
		t.Fatalf("Selected() = %v, expected %v", got, bubblepop.Roster[1])
	}
	if cmd == nil {
		t.Error("selecting a player should end the menu")
	}
}

func TestMenuListsCustomCurrentPlayer(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Player{Name: "Zoe", Age: 6})

	m := NewMenuModel(nil, testCfg)
	if len(m.players) != len(bubblepop.Roster)+1 || m.players[0].Name != "Zoe" {
		t.Errorf("players = %+v, expected Zoe first then the roster", m.players)
	}
}

func TestMenuNewPlayerEntry(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Roster[0])

	var model tea.Model = NewMenuModel(nil, testCfg)
	for range bubblepop.Roster {
		model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.(MenuModel).stage != stageName {
		t.Fatal("New player... should open name entry")
	}

	// Empty name is rejected
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if m := model.(MenuModel); m.stage != stageName || m.inputErr == "" {
		t.Fatal("empty name should stay on name entry with an error")
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ava")})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.(MenuModel).stage != stageAge {
		t.Fatal("expected age entry after name")
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.(MenuModel).Selected() != nil {
		t.Fatal("invalid age should not select")
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	got := model.(MenuModel).Selected()
	if got == nil || *got != (bubblepop.Player{Name: "Ava", Age: 5}) {
		t.Errorf("Selected() = %v, expected Ava (5)", got)
	}
}

func TestMenuTabOpensScoreboard(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Roster[0])

	model := update(t, NewMenuModel(nil, testCfg), tea.KeyMsg{Type: tea.KeyTab})
	if !model.(MenuModel).WantsScoreboard() {
		t.Error("tab should request the scoreboard")
	}
}

func TestModeModelLevelSelect(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Roster[0])
	cfg := config.DefaultBubblePopConfig()
	bubblepop.SetConfig(cfg)

	var model tea.Model = NewModeModel(bubblepop.Roster[0], 80, 24)
	if !strings.Contains(model.View(), "Campaign (3 levels)") {
		t.Errorf("mode view:\n%s", model.View())
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(model.View(), "Rainbow") {
		t.Errorf("level list should name the levels:\n%s", model.View())
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	sel := model.(ModeModel).Selected()
	if sel == nil || *sel != (PopSelection{GameID: bubblepop.IDCampaign, Level: 2}) {
		t.Errorf("Selected() = %v, expected campaign level 2", sel)
	}
}

func TestModeModelZenAndBack(t *testing.T) {
	var model tea.Model = NewModeModel(bubblepop.Roster[1], 80, 24)
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := model.(ModeModel).Selected(); sel == nil || sel.GameID != bubblepop.IDZen {
		t.Errorf("Selected() = %v, expected zen", sel)
	}

	back := update(t, NewModeModel(bubblepop.Roster[1], 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !back.(ModeModel).WantsBack() {
		t.Error("esc should go back")
	}
}

func TestSessionModelFlow(t *testing.T) {
	useOneMoveBoard(t, bubblepop.Roster[0])
	store := openTestStore(t)

	s := NewSessionModel(store, testCfg, "guest")
	if _, err := uuid.Parse(s.SessionID()); err != nil {
		t.Fatalf("session ID %q is not a UUID", s.SessionID())
	}

	var model tea.Model = s
	// Pick James from the roster, then campaign
	model = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.(SessionModel).stage != sessionMode {
		t.Fatal("expected mode selection after picking a player")
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.(SessionModel).stage != sessionGame {
		t.Fatal("expected the game to start")
	}
	if !strings.Contains(model.View(), "James (4)") {
		t.Error("game HUD should show the session's player")
	}

	// Pop the whole board with the only move, then go back to the menu
	model = update(t, model, tea.KeyMsg{Type: tea.KeySpace})
	model = tick(t, model)
	model = update(t, model, runeKey('b'))
	if model.(SessionModel).stage != sessionMenu {
		t.Fatal("b after game over should return to the menu")
	}

	scores, err := store.PlayerScores(bubblepop.IDCampaign, "James", 10)
	if err != nil || len(scores) != 1 {
		t.Fatalf("PlayerScores = %v, %v; expected one score", scores, err)
	}
	if scores[0].SessionID != s.SessionID() {
		t.Errorf("score session = %q, expected %q", scores[0].SessionID, s.SessionID())
	}
	if bubblepop.CurrentPlayer() != bubblepop.Roster[0] {
		t.Error("sessions must not change the package default player")
	}

	// Scoreboard and back
	model = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	if model.(SessionModel).stage != sessionScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(model.View(), "James") {
		t.Error("scoreboard should list James")
	}
	model = update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	if model.(SessionModel).stage != sessionMenu {
		t.Fatal("esc should leave the scoreboard")
	}

	_, cmd := model.Update(runeKey('q'))
	if cmd == nil {
		t.Error("q in the menu should end the session")
	}
}

func TestScoreboardFilter(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []struct {
		player string
		score  int
	}{{"Madison", 300}, {"James", 200}, {"Madison", 100}} {
		if _, err := store.SaveScore(bubblepop.IDCampaign, s.player, "sb", s.score); err != nil {
			t.Fatalf("SaveScore failed: %v", err)
		}
	}

	var model tea.Model = NewScoreboardModel(store, 100, 30)
	sb := model.(ScoreboardModel)
	if len(sb.scores) != 3 || !strings.Contains(sb.summary(), "all players") {
		t.Fatalf("expected all 3 scores, got %d (%s)", len(sb.scores), sb.summary())
	}
	if !strings.Contains(sb.summary(), "best 300") {
		t.Errorf("summary %q should show the best score", sb.summary())
	}

	model = update(t, model, runeKey('f'))
	sb = model.(ScoreboardModel)
	if len(sb.scores) == 0 || len(sb.scores) == 3 {
		t.Fatalf("filter should narrow to one player, got %d scores", len(sb.scores))
	}
	for _, s := range sb.scores {
		if s.Player != sb.playerFilter() {
			t.Errorf("score by %s shown while filtering %s", s.Player, sb.playerFilter())
		}
	}

	// Cycle through both players back to everyone
	model = update(t, model, runeKey('f'))
	model = update(t, model, runeKey('f'))
	if sb = model.(ScoreboardModel); len(sb.scores) != 3 {
		t.Errorf("filter should wrap back to all players, got %d scores", len(sb.scores))
	}
}
