package engine

// Cue names a sound the front end may play.
type Cue string

const (
	CuePop      Cue = "pop"
	CueMatch    Cue = "match"
	CueCombo    Cue = "combo"
	CuePowerUp  Cue = "powerup"
	CueNoMatch  Cue = "nomatch"
	CueLevel    Cue = "level"
	CueGameOver Cue = "gameover"
)

// AudioSink receives sound cues.
type AudioSink interface {
	Play(cue Cue)
}

// MatchResolved is reported after a selection pops cells.
type MatchResolved struct {
	Trigger  Pos
	Kind     Kind // kind of the selected cell
	Affected []Pos
	Points   int
	Combo    int
}

// PowerUpTriggered is reported when a power-up cell is selected.
type PowerUpTriggered struct {
	Kind     Kind
	Trigger  Pos
	Affected []Pos
	Gilded   []Pos
}

// Listener observes session progress. Callbacks run on the goroutine that
// called Select, after the board has been committed; they may read the
// session but must not call Select.
type Listener interface {
	OnMatchResolved(ev MatchResolved)
	OnPowerUpTriggered(ev PowerUpTriggered)
	OnGravityApplied(moves []Move)
	OnCellsFilled(filled []Pos)
	OnBoardRegenerated(attempts int)
	OnNoMatch(at Pos)
	OnLevelCleared(level int)
	OnGameOver(finalScore int)
}

// NopListener ignores every event. Embed it to implement only what you need.
type NopListener struct{}

func (NopListener) OnMatchResolved(MatchResolved)       {}
func (NopListener) OnPowerUpTriggered(PowerUpTriggered) {}
func (NopListener) OnGravityApplied([]Move)             {}
func (NopListener) OnCellsFilled([]Pos)                 {}
func (NopListener) OnBoardRegenerated(int)              {}
func (NopListener) OnNoMatch(Pos)                       {}
func (NopListener) OnLevelCleared(int)                  {}
func (NopListener) OnGameOver(int)                      {}

var _ Listener = NopListener{}

type silentAudio struct{}

func (silentAudio) Play(Cue) {}
