package engine

import (
	"time"

	"github.com/tatianab/ball-quest/internal/models"
)

// rubRadius is how close the pointer must stay to the ball's display
// position for rubbing to count.
const rubRadius = 75.0

// BallSource is where a rusty ball came from. World balls remove their
// entity on Dispose; gift tokens from family members have nothing in
// the world to remove.
type BallSource interface {
	BallID() models.BallID
	Dispose()
}

// giftToken is the synthetic source for a ball handed over by a family
// member.
type giftToken struct {
	id models.BallID
}

func (g giftToken) BallID() models.BallID { return g.id }
func (g giftToken) Dispose()              {}

// CleaningPhase is the state of the cleaning mini-game.
type CleaningPhase int

const (
	// CleaningActive: the rusty overlay is up and rubbing accumulates
	// progress.
	CleaningActive CleaningPhase = iota
	// CleaningRevealed: progress reached 1, the true ball is shown and
	// a confirmation collects it.
	CleaningRevealed
)

// CleaningSession is the ephemeral hold-and-rub mini-game. At most one
// exists at a time; the session enforces that.
type CleaningSession struct {
	source     BallSource
	gift       bool
	phase      CleaningPhase
	required   time.Duration
	elapsed    time.Duration
	displayPos models.Point
	pointer    models.Point
	pressed    bool
}

func newCleaningSession(source BallSource, gift bool, required time.Duration, displayPos models.Point) *CleaningSession {
	return &CleaningSession{
		source:     source,
		gift:       gift,
		required:   required,
		displayPos: displayPos,
	}
}

// Phase is the current mini-game state.
func (c *CleaningSession) Phase() CleaningPhase { return c.phase }

// Progress is in [0,1].
func (c *CleaningSession) Progress() float64 {
	p := float64(c.elapsed) / float64(c.required)
	if p > 1 {
		p = 1
	}
	return p
}

// PointerMove tracks the rub position.
func (c *CleaningSession) PointerMove(p models.Point) {
	c.pointer = p
}

// PointerDown starts rubbing at p.
func (c *CleaningSession) PointerDown(p models.Point) {
	c.pointer = p
	c.pressed = true
}

// PointerUp pauses rubbing. Progress is kept, not decayed.
func (c *CleaningSession) PointerUp() {
	c.pressed = false
}

// rubbing reports whether progress should accumulate right now.
func (c *CleaningSession) rubbing() bool {
	return c.pressed && distance(c.pointer, c.displayPos) < rubRadius
}

// advance accumulates rub time and reports true on the tick that
// crosses into Revealed.
func (c *CleaningSession) advance(dt time.Duration) bool {
	if c.phase != CleaningActive || !c.rubbing() {
		return false
	}
	c.elapsed += dt
	if c.elapsed >= c.required {
		c.elapsed = c.required
		c.phase = CleaningRevealed
		c.pressed = false
		return true
	}
	return false
}
