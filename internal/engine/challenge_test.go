package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/tatianab/ball-quest/internal/models"
)

func newBenchChallenge() *ChallengeSession {
	return newChallengeSession(models.FamilyMember{
		CharacterID: "aunt",
		DisplayName: "Auntie",
		Birthdate:   models.Birthdate{Year: 1990, Month: 5, Day: 17},
		KeyID:       "attic_key",
		RoomLabel:   "Attic",
	})
}

func typeField(c *ChallengeSession, digits string) {
	for _, r := range digits {
		c.Digit(r)
	}
}

func TestChallengeEditing(t *testing.T) {
	c := newBenchChallenge()

	typeField(c, "19x90!5") // non-digits ignored, year capped at 4
	if got := c.Field(FieldYear); got != "1990" {
		t.Errorf("Expected year 1990, got %q", got)
	}
	typeField(c, "5")
	if got := c.Field(FieldYear); got != "1990" {
		t.Errorf("Expected a full year field to reject more digits, got %q", got)
	}

	c.Backspace()
	if got := c.Field(FieldYear); got != "199" {
		t.Errorf("Expected backspace to drop a digit, got %q", got)
	}

	c.NextField()
	if c.ActiveField() != FieldMonth {
		t.Errorf("Expected month after year")
	}
	c.NextField()
	c.NextField()
	if c.ActiveField() != FieldYear {
		t.Errorf("Expected the field cycle to wrap back to year")
	}
}

func TestChallengeIncompleteLeavesFields(t *testing.T) {
	c := newBenchChallenge()
	typeField(c, "1990")

	if got := c.attempt(); got != ChallengeIncomplete {
		t.Fatalf("Expected incomplete outcome, got %v", got)
	}
	if c.Field(FieldYear) != "1990" {
		t.Errorf("An incomplete attempt must not touch the fields")
	}
}

func TestChallengeWrongClearsFields(t *testing.T) {
	c := newBenchChallenge()
	typeField(c, "1990")
	c.NextField()
	typeField(c, "5")
	c.NextField()
	typeField(c, "18")

	if got := c.attempt(); got != ChallengeWrong {
		t.Fatalf("Expected wrong outcome, got %v", got)
	}
	for _, f := range []ChallengeField{FieldYear, FieldMonth, FieldDay} {
		if c.Field(f) != "" {
			t.Errorf("Expected field %v cleared after a wrong guess", f)
		}
	}
	if c.ActiveField() != FieldYear {
		t.Errorf("Expected focus back on year after a wrong guess")
	}
	if c.Solved() {
		t.Errorf("A wrong guess must not solve the challenge")
	}
}

func TestChallengeCorrectMatch(t *testing.T) {
	c := newBenchChallenge()
	typeField(c, "1990")
	c.NextField()
	typeField(c, "05") // leading zero still matches numerically
	c.NextField()
	typeField(c, "17")

	if got := c.attempt(); got != ChallengeCorrect {
		t.Fatalf("Expected correct outcome, got %v", got)
	}
	if !c.Solved() {
		t.Errorf("Expected the challenge to be solved")
	}

	// Solved sessions ignore further editing.
	c.Digit('9')
	c.Backspace()
	if c.Field(FieldYear) != "1990" {
		t.Errorf("Editing after solving must be ignored")
	}
}

// bringToChallenge walks the player through the aunt's gift cleaning
// and leaves the session with the challenge armed.
func bringToChallenge(t *testing.T, s *Session) {
	t.Helper()
	s.MovePlayer(184, -100) // beside the aunt at (200,60)
	s.Advance(50 * time.Millisecond)
	if s.Mode() != ModeCleaning {
		t.Fatalf("Expected the gift cleaning to start, mode %v", s.Mode())
	}
	rubUntilRevealed(s)
	s.ConfirmCollect()
	s.Advance(50 * time.Millisecond) // proximity tick arms the challenge
}

func submitDate(s *Session, year, month, day int) ChallengeOutcome {
	for _, r := range fmt.Sprintf("%04d", year) {
		s.ChallengeDigit(r)
	}
	s.ChallengeNextField()
	for _, r := range fmt.Sprintf("%d", month) {
		s.ChallengeDigit(r)
	}
	s.ChallengeNextField()
	for _, r := range fmt.Sprintf("%d", day) {
		s.ChallengeDigit(r)
	}
	return s.SubmitChallenge()
}

func TestSessionChallengeWrongThenRight(t *testing.T) {
	s := newTestSession()
	bringToChallenge(t, s)

	s.ActivateChallenge()
	if s.Mode() != ModeChallenge {
		t.Fatalf("Expected the challenge popup, mode %v", s.Mode())
	}

	if got := submitDate(s, 1990, 5, 18); got != ChallengeWrong {
		t.Fatalf("Expected a wrong outcome, got %v", got)
	}
	if s.Mode() != ModeChallenge {
		t.Errorf("A wrong guess must keep the popup open")
	}
	if s.Inventory().HasKey("attic_key") {
		t.Errorf("A wrong guess must not issue the key")
	}

	if got := submitDate(s, 1990, 5, 17); got != ChallengeCorrect {
		t.Fatalf("Expected a correct outcome, got %v", got)
	}
	if !s.Inventory().HasKey("attic_key") {
		t.Errorf("Expected the attic key after the correct date")
	}

	// The popup closes on its own shortly after success.
	advance(s, 3*time.Second)
	if s.Mode() != ModeExplore {
		t.Errorf("Expected the popup to auto-close, mode %v", s.Mode())
	}
	if got := s.messages.Narrator(); got != "You got the Attic key!" {
		t.Errorf("Expected the key message, got %q", got)
	}
}

func TestSessionChallengeNotRepeatable(t *testing.T) {
	s := newTestSession()
	bringToChallenge(t, s)
	s.ActivateChallenge()
	if got := submitDate(s, 1990, 5, 17); got != ChallengeCorrect {
		t.Fatalf("Expected a correct outcome, got %v", got)
	}
	advance(s, 3*time.Second)

	// Step away and back to re-arm, then try again.
	advance(s, 4*time.Second)
	s.Advance(50 * time.Millisecond)
	s.ActivateChallenge()

	if s.Mode() == ModeChallenge {
		t.Errorf("A completed challenge must not reopen")
	}
	if got := s.messages.Narrator(); got != "You already got the key!" {
		t.Errorf("Expected the already-done message, got %q", got)
	}
	if got := s.Inventory().KeyCount(); got != 1 {
		t.Errorf("Expected exactly 1 key, got %d", got)
	}
}

func TestSessionChallengeCancelNoSideEffects(t *testing.T) {
	s := newTestSession()
	bringToChallenge(t, s)
	s.ActivateChallenge()
	for _, r := range "1990" {
		s.ChallengeDigit(r)
	}
	s.CancelChallenge()

	if s.Mode() != ModeExplore {
		t.Errorf("Expected explore mode after cancel, got %v", s.Mode())
	}
	if s.Inventory().HasKey("attic_key") {
		t.Errorf("Canceling must not issue the key")
	}
}

func TestSessionChallengeIncompleteShowsFeedback(t *testing.T) {
	s := newTestSession()
	bringToChallenge(t, s)
	s.ActivateChallenge()

	if got := s.SubmitChallenge(); got != ChallengeIncomplete {
		t.Fatalf("Expected incomplete outcome, got %v", got)
	}
	snap := s.Snapshot()
	if snap.Challenge == nil || snap.Challenge.Result != "Fill in all the fields!" {
		t.Errorf("Expected the fill-all feedback line")
	}

	// The feedback clears after its display window.
	advance(s, 5*time.Second)
	if got := s.Snapshot().Challenge.Result; got != "" {
		t.Errorf("Expected the feedback to expire, got %q", got)
	}
}

func TestSessionCancelAfterSolveIgnored(t *testing.T) {
	s := newTestSession()
	bringToChallenge(t, s)
	s.ActivateChallenge()
	submitDate(s, 1990, 5, 17)

	s.CancelChallenge()
	if s.Mode() != ModeChallenge {
		t.Errorf("Cancel during the success pause must be ignored")
	}

	// Resubmitting reports the solved state and issues nothing twice.
	if got := s.SubmitChallenge(); got != ChallengeCorrect {
		t.Errorf("Expected a solved session to report correct, got %v", got)
	}
	if got := s.Inventory().KeyCount(); got != 1 {
		t.Errorf("Expected exactly 1 key after resubmit, got %d", got)
	}
}
