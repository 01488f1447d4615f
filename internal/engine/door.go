package engine

import (
	"math"

	"github.com/tatianab/ball-quest/internal/models"
)

// Door is one door instance built from a DoorDefinition at session
// start. Open is monotonic: the evaluator never flips it back, because
// the closet's ball threshold is checked before the flip, not after.
type Door struct {
	ID            string
	RequiredKey   models.KeyID
	RoomFrom      string
	TargetRoom    string
	Region        models.Rect
	BallThreshold int
	Open          bool
}

func newDoor(def models.DoorDefinition) *Door {
	return &Door{
		ID:            def.ID,
		RequiredKey:   def.RequiredKey,
		RoomFrom:      def.RoomFrom,
		TargetRoom:    def.TargetRoom,
		Region:        def.Region,
		BallThreshold: def.BallThreshold,
	}
}

// DoorDecision is the gate evaluator's verdict for an interaction.
type DoorDecision int

const (
	// DoorOpenable: the door may open right now.
	DoorOpenable DoorDecision = iota
	// DoorLocked: the required key is missing.
	DoorLocked
	// DoorNeedsBalls: key in hand but the ball threshold is not met.
	DoorNeedsBalls
	// DoorAlreadyOpen: nothing to do; open doors are silent.
	DoorAlreadyOpen
)

// evaluateDoor is the pure gate decision over the current ledger
// state. It never mutates anything.
func evaluateDoor(d *Door, inv *Inventory) DoorDecision {
	if d.Open {
		return DoorAlreadyOpen
	}
	if d.RequiredKey != models.KeyAuto && !inv.HasKey(d.RequiredKey) {
		return DoorLocked
	}
	if d.BallThreshold > 0 && inv.CollectedCount() < d.BallThreshold {
		return DoorNeedsBalls
	}
	return DoorOpenable
}

// blocks reports whether walking from a to b would pass through the
// closed door. The segment is sampled every few units; door regions
// are a full tile wide so this cannot tunnel at player step sizes.
func (d *Door) blocks(a, b models.Point) bool {
	if d.Open {
		return false
	}
	const step = 4.0
	dist := distance(a, b)
	if dist == 0 {
		return d.Region.Contains(a)
	}
	steps := int(dist/step) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := models.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		if d.Region.Contains(p) {
			return true
		}
	}
	return false
}

func distance(a, b models.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
