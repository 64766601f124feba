package bubblepop

import (
	"fmt"

	"github.com/vovakirdan/bubble-pop/internal/dependencies/random"
	"github.com/vovakirdan/bubble-pop/internal/games/bubblepop/engine"
)

// Caption lifetimes in ticks at 60fps.
const (
	captionTicks = 90
	soundTicks   = 30
	shakeTicks   = 12
)

var encouragements = []string{
	"Amazing", "Fantastic", "Incredible", "Awesome",
	"Super", "Wonderful", "Great", "Perfect",
}

var powerUpCaptions = map[engine.Kind]string{
	engine.KindUnicorn:   "Unicorn magic!",
	engine.KindSuperhero: "Superhero blast!",
	engine.KindPrincess:  "Princess hearts!",
	engine.KindPrince:    "Prince's golden crown!",
}

var cueCaptions = map[engine.Cue]string{
	engine.CuePop:      "♪ pop",
	engine.CueMatch:    "♪ ding",
	engine.CueCombo:    "♪ ding-ding!",
	engine.CuePowerUp:  "♪ whoosh",
	engine.CueNoMatch:  "♪ boop",
	engine.CueLevel:    "♪ ta-da!",
	engine.CueGameOver: "♪ fanfare",
}

// feedback turns engine events into short-lived captions and highlights
// for the renderer. It is both the session's Listener and its AudioSink.
type feedback struct {
	engine.NopListener

	now   func() uint64
	words random.Random
	muted bool

	caption      string
	captionUntil uint64
	sound        string
	soundUntil   uint64
	shakeAt      engine.Pos
	shakeUntil   uint64

	regenerations int
	levelCleared  int
	finalScore    int
	over          bool
}

func newFeedback(now func() uint64, words random.Random, muted bool) *feedback {
	return &feedback{now: now, words: words, muted: muted}
}

func (f *feedback) say(text string) {
	f.caption = text
	f.captionUntil = f.now() + captionTicks
}

// OnMatchResolved praises bigger regions and combos.
func (f *feedback) OnMatchResolved(ev engine.MatchResolved) {
	if ev.Kind.IsPowerUp() {
		return
	}
	f.say(encouragement(f.words, len(ev.Affected), ev.Combo, ev.Points))
}

// OnPowerUpTriggered names the power-up that fired.
func (f *feedback) OnPowerUpTriggered(ev engine.PowerUpTriggered) {
	text := powerUpCaptions[ev.Kind]
	if len(ev.Gilded) > 0 {
		text = fmt.Sprintf("%s %d bubbles turned gold", text, len(ev.Gilded))
	}
	f.say(text)
}

// OnNoMatch shakes the rejected cell.
func (f *feedback) OnNoMatch(at engine.Pos) {
	f.shakeAt = at
	f.shakeUntil = f.now() + shakeTicks
}

// OnBoardRegenerated tells the player the board was reshuffled.
func (f *feedback) OnBoardRegenerated(int) {
	f.regenerations++
	f.say("No moves left, fresh bubbles!")
}

// OnLevelCleared announces the next level.
func (f *feedback) OnLevelCleared(level int) {
	f.levelCleared = level
	f.say(fmt.Sprintf("Level %d cleared!", level))
}

// OnGameOver records the final score for the overlay.
func (f *feedback) OnGameOver(finalScore int) {
	f.over = true
	f.finalScore = finalScore
}

// Play renders a sound cue as a caption.
func (f *feedback) Play(cue engine.Cue) {
	if f.muted {
		return
	}
	text, ok := cueCaptions[cue]
	if !ok {
		return
	}
	f.sound = text
	f.soundUntil = f.now() + soundTicks
}

// activeCaption returns the caption still on screen at tick.
func (f *feedback) activeCaption(tick uint64) string {
	if tick >= f.captionUntil {
		return ""
	}
	return f.caption
}

func (f *feedback) activeSound(tick uint64) string {
	if f.muted || tick >= f.soundUntil {
		return ""
	}
	return f.sound
}

// shakeOffset returns the horizontal jitter for p at tick.
func (f *feedback) shakeOffset(p engine.Pos, tick uint64) int {
	if tick >= f.shakeUntil || p != f.shakeAt {
		return 0
	}
	if (f.shakeUntil-tick)/2%2 == 0 {
		return -1
	}
	return 1
}

// encouragement picks the caption for a plain match.
func encouragement(words random.Random, size, combo, points int) string {
	word := encouragements[words.Intn(len(encouragements))]
	if combo > 0 {
		return fmt.Sprintf("%s %dx Combo! +%d", word, combo+1, points)
	}
	if size >= 6 {
		return fmt.Sprintf("%s! +%d", word, points)
	}
	return fmt.Sprintf("+%d", points)
}

var (
	_ engine.Listener  = (*feedback)(nil)
	_ engine.AudioSink = (*feedback)(nil)
)
