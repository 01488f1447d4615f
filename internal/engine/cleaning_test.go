package engine

import (
	"testing"
	"time"

	"github.com/tatianab/ball-quest/internal/models"
)

func newBenchCleaning() *CleaningSession {
	src := &worldBall{id: "red"}
	return newCleaningSession(src, false, time.Second, models.Point{})
}

func TestCleaningProgressAccumulatesWhileRubbing(t *testing.T) {
	c := newBenchCleaning()
	c.PointerDown(models.Point{X: 10, Y: 10})

	for i := 0; i < 10; i++ {
		c.advance(50 * time.Millisecond)
	}

	if got := c.Progress(); got < 0.49 || got > 0.51 {
		t.Errorf("Expected progress around 0.5, got %.2f", got)
	}
	if c.Phase() != CleaningActive {
		t.Errorf("Expected the ball to still be rusty")
	}
}

func TestCleaningPauseKeepsProgress(t *testing.T) {
	c := newBenchCleaning()
	c.PointerDown(models.Point{})
	c.advance(500 * time.Millisecond)
	before := c.Progress()

	c.PointerUp()
	c.advance(2 * time.Second)

	if got := c.Progress(); got != before {
		t.Errorf("Expected progress to hold at %.2f while paused, got %.2f", before, got)
	}

	c.PointerDown(models.Point{})
	if crossed := c.advance(500 * time.Millisecond); !crossed {
		t.Errorf("Expected resumed rubbing to finish the cleaning")
	}
	if c.Phase() != CleaningRevealed {
		t.Errorf("Expected the ball to be revealed")
	}
}

func TestCleaningIgnoresFarPointer(t *testing.T) {
	c := newBenchCleaning()
	c.PointerDown(models.Point{X: 200, Y: 0})
	c.advance(2 * time.Second)

	if c.Progress() != 0 {
		t.Errorf("Rubbing far from the ball must not count, got %.2f", c.Progress())
	}

	// Dragging back into range resumes.
	c.PointerMove(models.Point{X: 10, Y: 0})
	c.advance(time.Second)
	if c.Phase() != CleaningRevealed {
		t.Errorf("Expected cleaning to finish once the pointer came back")
	}
}

func TestCleaningStopsAtFullProgress(t *testing.T) {
	c := newBenchCleaning()
	c.PointerDown(models.Point{})
	c.advance(5 * time.Second)

	if c.Progress() != 1 {
		t.Errorf("Expected progress capped at 1, got %.2f", c.Progress())
	}
}

func TestSessionCollectRemovesWorldBall(t *testing.T) {
	s := newTestSession()
	s.MovePlayer(24, -60) // onto the red ball at (40,40)
	s.Advance(50 * time.Millisecond)

	if s.Mode() != ModeCleaning {
		t.Fatalf("Expected cleaning to start, mode %v", s.Mode())
	}
	rubUntilRevealed(s)
	s.ConfirmCollect()

	if !s.Inventory().HasBall("red") {
		t.Errorf("Expected red ball in the collection")
	}
	if s.Mode() != ModeExplore {
		t.Errorf("Expected explore mode after collecting, got %v", s.Mode())
	}
	for _, e := range s.Snapshot().Entities {
		if e.Kind == EntityBall && e.Label == "red" {
			t.Errorf("Collected ball must leave the world")
		}
	}
	if got := s.messages.Narrator(); got != s.world.Messages.InventoryTutorial {
		t.Errorf("Expected the inventory tutorial after the first ball, got %q", got)
	}
}

func TestSessionCancelCleaningDiscardsProgress(t *testing.T) {
	s := newTestSession()
	s.MovePlayer(24, -60)
	s.Advance(50 * time.Millisecond)
	s.CleaningPointerDown(models.Point{})
	advance(s, 500*time.Millisecond)
	s.CancelCleaning()

	if s.Mode() != ModeExplore {
		t.Fatalf("Expected explore mode after cancel, got %v", s.Mode())
	}
	if s.Inventory().HasBall("red") {
		t.Errorf("Canceling must not collect the ball")
	}

	// The ball is still there; walking over it starts from zero.
	s.Advance(50 * time.Millisecond)
	if s.Mode() != ModeCleaning {
		t.Fatalf("Expected cleaning to restart, mode %v", s.Mode())
	}
	if got := s.cleaning.Progress(); got != 0 {
		t.Errorf("Expected progress reset to 0, got %.2f", got)
	}
}

func TestSessionSecondCleaningRejected(t *testing.T) {
	s := newTestSession()
	s.MovePlayer(24, -60)
	s.Advance(50 * time.Millisecond)
	first := s.cleaning

	s.beginCleaning(&worldBall{id: "blue"}, false)

	if s.cleaning != first {
		t.Errorf("A second cleaning session must not replace the active one")
	}
}

func TestSessionRecleanCollectedTypeIsNoop(t *testing.T) {
	s := newTestSession()
	s.inv.AddBall("red")
	s.inventoryTipShown = true

	s.MovePlayer(24, -60)
	s.Advance(50 * time.Millisecond)
	rubUntilRevealed(s)
	s.ConfirmCollect()

	if got := s.Inventory().CollectedCount(); got != 1 {
		t.Errorf("Expected ledger unchanged at 1, got %d", got)
	}
	if s.Mode() != ModeExplore {
		t.Errorf("Expected explore mode after the no-op collect")
	}
}
