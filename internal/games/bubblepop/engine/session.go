package engine

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-pop/internal/dependencies/clock"
	"github.com/vovakirdan/bubble-pop/internal/dependencies/random"
)

// Phase is the session lifecycle stage.
type Phase int

const (
	PhaseInit Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome classifies what a selection did.
type Outcome int

const (
	OutcomeResolved   Outcome = iota // cells popped
	OutcomeNoMatch                   // region below the minimum
	OutcomeInvalid                   // empty, popped or off-board cell
	OutcomeBusy                      // a previous selection is still resolving
	OutcomeNotPlaying                // session not started or already over
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeBusy:
		return "busy"
	case OutcomeNotPlaying:
		return "not_playing"
	default:
		return "unknown"
	}
}

// Result is the synchronous report of one Select call.
type Result struct {
	Outcome  Outcome
	Kind     Kind
	Affected []Pos
	Gilded   []Pos
	Points   int
	Combo    int
	Moves    []Move
	Filled   []Pos

	// Spawned is the kind placed at SpawnedAt by the refill, or KindNormal.
	Spawned   Kind
	SpawnedAt Pos

	LevelCleared bool
	GameOver     bool
}

// State is a read-only view of the session counters.
type State struct {
	Phase         Phase
	Score         int
	MovesLeft     int
	Unlimited     bool
	Combo         int
	ComboDeadline time.Time
	Processing    bool
	Level         int // 1-based; 0 outside campaign play
	Levels        int
	Target        int
	Regenerations int
	Won           bool
}

// stage is the single-writer guard. Only one selection may be past
// stageIdle at a time; selections arriving in any other stage are dropped.
type stage int

const (
	stageIdle      stage = iota
	stageResolving       // pipeline running or events being delivered
	stageSettling        // committed; waiting for Settle
)

// Option configures a Session.
type Option func(*Session)

// WithRandom injects the random source.
func WithRandom(r random.Random) Option {
	return func(s *Session) { s.rng = r }
}

// WithClock injects the clock used for combo timing.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithListener adds an event listener. May be given more than once.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, l) }
}

// WithAudio sets the sound cue sink.
func WithAudio(a AudioSink) Option {
	return func(s *Session) { s.audio = a }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithBoard starts the session on a prepared board instead of a random one.
func WithBoard(b *Board) Option {
	return func(s *Session) { s.preset = b }
}

// Session runs one game: it owns the board and every counter, and Select
// is its only mutating entry point.
type Session struct {
	cfg       Config
	rng       random.Random
	clock     clock.Clock
	logger    *log.Logger
	listeners []Listener
	audio     AudioSink
	preset    *Board

	resolver PowerResolver
	refill   RefillPolicy
	combo    ComboTracker

	mu     sync.Mutex
	stage  stage
	outbox []func()
	quit   atomic.Bool

	board         *Board
	phase         Phase
	score         int
	movesLeft     int
	level         int
	regenerations int
	won           bool
}

// NewSession validates cfg and builds a session in PhaseInit.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	s := &Session{
		cfg:   cfg,
		rng:   random.New(time.Now().UnixNano()),
		clock: clock.New(),
		audio: silentAudio{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.resolver = PowerResolver{
		Random:          s.rng,
		Colors:          cfg.Colors,
		SuperheroRadius: cfg.SuperheroRadius,
	}
	s.refill = RefillPolicy{
		Random:      s.rng,
		Colors:      cfg.Colors,
		MinMatch:    cfg.MinMatch,
		MaxAttempts: cfg.MaxRegenerations,
		Regenerate:  cfg.NoMoves == NoMovesRegenerate,
	}
	s.combo = ComboTracker{Window: cfg.ComboWindow, Step: cfg.ComboStep}

	return s, nil
}

// Start deals the opening board and moves the session to PhasePlaying.
func (s *Session) Start() error {
	s.mu.Lock()
	err := s.startLocked()
	out := s.takeOutbox()
	s.mu.Unlock()

	s.deliver(out)
	return err
}

func (s *Session) startLocked() error {
	if s.phase != PhaseInit {
		return ErrAlreadyStarted
	}

	if s.preset != nil {
		if s.preset.Rows() != s.cfg.Rows || s.preset.Cols() != s.cfg.Cols {
			return fmt.Errorf("%w: board is %dx%d, config wants %dx%d",
				ErrInvalidConfig, s.preset.Rows(), s.preset.Cols(), s.cfg.Rows, s.cfg.Cols)
		}
		s.board = s.preset.Clone()
		s.preset = nil
	} else {
		b, err := s.refill.Generate(s.cfg.Rows, s.cfg.Cols)
		if err != nil {
			s.phase = PhaseGameOver
			return fmt.Errorf("engine: cannot deal opening board: %w", err)
		}
		s.board = b
	}

	s.phase = PhasePlaying
	s.movesLeft = s.cfg.MoveLimit
	if len(s.cfg.Levels) > 0 {
		s.level = max(s.cfg.StartLevel, 1)
		s.movesLeft = s.cfg.Levels[s.level-1].Moves
	}

	filled := s.board.Positions()
	s.emit(func(l Listener) { l.OnCellsFilled(filled) })
	s.logger.Info("session started",
		"rows", s.cfg.Rows, "cols", s.cfg.Cols, "colors", s.cfg.Colors,
		"level", s.level, "moves", s.movesLeft)
	return nil
}

// Select resolves a selection at (row, col). Rejected selections report
// their reason in Result.Outcome and never change the session. The only
// error is ErrUnsolvableBoard from a refill, which also ends the session.
// A selection arriving while another one holds the session is dropped with
// OutcomeBusy.
func (s *Session) Select(row, col int) (Result, error) {
	if !s.mu.TryLock() {
		return Result{Outcome: OutcomeBusy}, nil
	}
	res, err := s.selectLocked(row, col)
	out := s.takeOutbox()
	s.mu.Unlock()

	s.deliver(out)

	if res.Outcome == OutcomeResolved {
		s.mu.Lock()
		if s.stage == stageResolving {
			s.stage = stageIdle
		}
		s.mu.Unlock()
	}
	return res, err
}

func (s *Session) selectLocked(row, col int) (Result, error) {
	if s.phase != PhasePlaying {
		return Result{Outcome: OutcomeNotPlaying}, nil
	}
	if s.stage != stageIdle {
		return Result{Outcome: OutcomeBusy}, nil
	}

	cell, ok := selectable(s.board, row, col)
	if !ok {
		return Result{Outcome: OutcomeInvalid}, nil
	}

	trigger := cell.Pos
	res := Result{Kind: cell.Kind}

	var effect PowerEffect
	if cell.Kind.IsPowerUp() {
		effect = s.resolver.Resolve(s.board, cell.Kind, trigger)
		res.Affected = effect.Affected
		res.Gilded = effect.Gilded
	} else {
		res.Affected = FindConnected(s.board, row, col)
		if len(res.Affected) < s.cfg.MinMatch {
			s.combo.Miss()
			s.cue(CueNoMatch)
			s.emit(func(l Listener) { l.OnNoMatch(trigger) })
			res.Outcome = OutcomeNoMatch
			res.Affected = nil
			return res, nil
		}
	}

	// From here the selection commits.
	s.stage = stageResolving
	res.Outcome = OutcomeResolved

	for _, p := range res.Affected {
		c, _ := s.board.At(p)
		c.Popped = true
		s.board.Set(p.Row, p.Col, c)
	}

	difficulty := s.cfg.Difficulty(s.cfg.PlayerAge)
	combo, mult := s.combo.Hit(s.clock.Now(), difficulty)
	res.Combo = combo
	res.Points = Points(len(res.Affected), s.cfg.BaseScore, mult, difficulty)
	s.score += res.Points
	if s.moveLimited() {
		s.movesLeft--
	}

	spawn := cell.Kind == KindNormal && s.rollSpawn(combo)

	s.cue(CuePop)
	if cell.Kind.IsPowerUp() {
		s.cue(CuePowerUp)
		ev := PowerUpTriggered{Kind: cell.Kind, Trigger: trigger, Affected: res.Affected, Gilded: res.Gilded}
		s.emit(func(l Listener) { l.OnPowerUpTriggered(ev) })
		s.logger.Debug("power-up triggered", "kind", cell.Kind, "at", trigger, "affected", len(res.Affected))
	}
	if combo > 0 {
		s.cue(CueCombo)
	} else {
		s.cue(CueMatch)
	}
	matched := MatchResolved{
		Trigger:  trigger,
		Kind:     cell.Kind,
		Affected: res.Affected,
		Points:   res.Points,
		Combo:    combo,
	}
	s.emit(func(l Listener) { l.OnMatchResolved(matched) })
	s.logger.Debug("match resolved", "size", len(res.Affected), "points", res.Points, "combo", combo, "score", s.score)

	if s.quit.Load() {
		s.endLocked("quit")
		res.GameOver = true
		return res, nil
	}

	for _, p := range res.Affected {
		s.board.Clear(p.Row, p.Col)
	}
	for _, p := range res.Gilded {
		c, _ := s.board.At(p)
		c.Golden = true
		s.board.Set(p.Row, p.Col, c)
	}

	res.Moves = Compact(s.board)
	moves := res.Moves
	s.emit(func(l Listener) { l.OnGravityApplied(moves) })

	if s.quit.Load() {
		s.endLocked("quit")
		res.GameOver = true
		return res, nil
	}

	fill, err := s.refill.Fill(s.board)
	if err != nil {
		s.endLocked("unsolvable")
		res.GameOver = true
		return res, fmt.Errorf("engine: refill failed: %w", err)
	}
	if fill.Regenerated > 0 {
		s.regenerations += fill.Regenerated
		attempts := fill.Regenerated
		s.emit(func(l Listener) { l.OnBoardRegenerated(attempts) })
		s.logger.Info("board regenerated", "attempts", attempts)
	}
	if spawn && len(fill.Filled) > 0 {
		if kind, ok := s.pickPowerUp(); ok {
			at := fill.Filled[s.rng.Intn(len(fill.Filled))]
			c, _ := s.board.At(at)
			c.Kind = kind
			s.board.Set(at.Row, at.Col, c)
			res.Spawned = kind
			res.SpawnedAt = at
			s.logger.Debug("power-up spawned", "kind", kind, "at", at)
		}
	}
	res.Filled = fill.Filled
	filled := fill.Filled
	s.emit(func(l Listener) { l.OnCellsFilled(filled) })

	s.progressLocked(&res)

	if s.cfg.HoldUntilSettled && s.phase == PhasePlaying {
		s.stage = stageSettling
	}
	return res, nil
}

// progressLocked handles level targets, move exhaustion and dead boards.
func (s *Session) progressLocked(res *Result) {
	if len(s.cfg.Levels) > 0 {
		lvl := s.cfg.Levels[s.level-1]
		if s.score >= lvl.Target {
			cleared := s.level
			if s.level >= len(s.cfg.Levels) {
				s.won = true
				s.endLocked("campaign complete")
				res.GameOver = true
				return
			}
			s.level++
			s.movesLeft = s.cfg.Levels[s.level-1].Moves
			res.LevelCleared = true
			s.cue(CueLevel)
			s.emit(func(l Listener) { l.OnLevelCleared(cleared) })
			s.logger.Info("level cleared", "level", cleared, "score", s.score)
		}
	}

	if !res.LevelCleared && s.moveLimited() && s.movesLeft <= 0 {
		s.endLocked("out of moves")
		res.GameOver = true
		return
	}
	if s.cfg.NoMoves == NoMovesEnd && !HasLegalMove(s.board, s.cfg.MinMatch) {
		s.endLocked("no moves")
		res.GameOver = true
	}
}

// Settle releases a session held by HoldUntilSettled.
func (s *Session) Settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage == stageSettling {
		s.stage = stageIdle
	}
}

// Quit ends the session. Safe to call from any goroutine, including while a
// selection is resolving: the resolution keeps the points it already
// committed and skips its remaining compaction and refill.
func (s *Session) Quit() {
	s.quit.Store(true)

	s.mu.Lock()
	if s.phase == PhaseInit {
		s.phase = PhaseGameOver
	} else {
		s.endLocked("quit")
	}
	s.stage = stageIdle
	out := s.takeOutbox()
	s.mu.Unlock()

	s.deliver(out)
}

// endLocked moves to PhaseGameOver and reports the final score once.
func (s *Session) endLocked(reason string) {
	if s.phase == PhaseGameOver {
		return
	}
	s.phase = PhaseGameOver
	final := s.score
	s.cue(CueGameOver)
	s.emit(func(l Listener) { l.OnGameOver(final) })
	s.logger.Info("game over", "reason", reason, "score", final, "level", s.level)
}

func (s *Session) moveLimited() bool {
	return len(s.cfg.Levels) > 0 || s.cfg.MoveLimit > 0
}

// rollSpawn decides whether this pop earns a power-up.
func (s *Session) rollSpawn(combo int) bool {
	sp := s.cfg.Spawn
	chance := sp.BaseChance + float64(combo)*sp.ComboBonus
	if s.cfg.PlayerAge > 0 && s.cfg.PlayerAge < sp.YoungAge {
		chance += sp.YoungBonus
	}
	if sp.MaxChance > 0 && chance > sp.MaxChance {
		chance = sp.MaxChance
	}
	if chance <= 0 {
		return false
	}
	return s.rng.Float64() < chance
}

// pickPowerUp chooses a kind by weight.
func (s *Session) pickPowerUp() (Kind, bool) {
	total := 0
	for _, k := range PowerUpKinds {
		total += max(s.cfg.Spawn.Weights[k], 0)
	}
	if total == 0 {
		return KindNormal, false
	}
	n := s.rng.Intn(total)
	for _, k := range PowerUpKinds {
		w := max(s.cfg.Spawn.Weights[k], 0)
		if n < w {
			return k, true
		}
		n -= w
	}
	return KindNormal, false
}

func (s *Session) emit(fn func(Listener)) {
	for _, l := range s.listeners {
		l := l
		s.outbox = append(s.outbox, func() { fn(l) })
	}
}

func (s *Session) cue(c Cue) {
	audio := s.audio
	s.outbox = append(s.outbox, func() { audio.Play(c) })
}

func (s *Session) takeOutbox() []func() {
	out := s.outbox
	s.outbox = nil
	return out
}

// deliver runs queued callbacks outside the lock so listeners can read
// the session.
func (s *Session) deliver(out []func()) {
	for _, fn := range out {
		fn()
	}
}

// State returns a snapshot of the counters.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Phase:         s.phase,
		Score:         s.score,
		MovesLeft:     s.movesLeft,
		Unlimited:     !s.moveLimited(),
		Combo:         s.combo.Combo(),
		ComboDeadline: s.combo.Deadline(),
		Processing:    s.stage != stageIdle,
		Level:         s.level,
		Levels:        len(s.cfg.Levels),
		Regenerations: s.regenerations,
		Won:           s.won,
	}
	if s.level > 0 {
		st.Target = s.cfg.Levels[s.level-1].Target
	}
	return st
}

// Board returns a copy of the current board, or nil before Start.
func (s *Session) Board() *Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return nil
	}
	return s.board.Clone()
}

// Config returns the effective configuration.
func (s *Session) Config() Config {
	return s.cfg
}
