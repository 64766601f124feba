package bubblepop

import "github.com/vovakirdan/bubble-pop/internal/games/bubblepop/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StateError       GameStateType = "error"
	StatePausedSmall GameStateType = "paused_small_window"
)

// CellSnapshot is one board cell in a Snapshot.
type CellSnapshot struct {
	Color  int
	Kind   string
	Golden bool
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick          uint64
	Mode          string // "campaign" or "zen"
	Player        string
	Level         int // 1-based, 0 in zen mode
	Target        int
	Score         int
	MovesLeft     int // -1 when unlimited
	Combo         int
	Regenerations int
	Cursor        engine.Pos
	Board         [][]CellSnapshot // nil entries are empty cells
	State         GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   g.tick,
		Mode:   string(g.mode),
		Player: g.player.Name,
		Cursor: g.cursor,
		State:  g.snapshotState(),
	}

	if g.session != nil {
		st := g.session.State()
		snap.Level = st.Level
		snap.Target = st.Target
		snap.Score = st.Score
		snap.MovesLeft = st.MovesLeft
		if st.Unlimited {
			snap.MovesLeft = -1
		}
		snap.Combo = st.Combo
		snap.Regenerations = st.Regenerations
	}

	if g.board != nil {
		snap.Board = make([][]CellSnapshot, g.board.Rows())
		for row := range snap.Board {
			snap.Board[row] = make([]CellSnapshot, g.board.Cols())
			for col := range snap.Board[row] {
				if c, ok := g.board.Get(row, col); ok {
					snap.Board[row][col] = CellSnapshot{Color: int(c.Color), Kind: c.Kind.String(), Golden: c.Golden}
				} else {
					snap.Board[row][col] = CellSnapshot{Color: -1}
				}
			}
		}
	}
	return snap
}

func (g *Game) snapshotState() GameStateType {
	switch {
	case g.tooSmall:
		return StatePausedSmall
	case g.err != nil:
		return StateError
	case g.session != nil && g.session.State().Won:
		return StateWin
	case g.over():
		return StateGameOver
	case g.paused:
		return StatePaused
	case g.animTicks > 0:
		return StateAnimating
	default:
		return StatePlaying
	}
}
