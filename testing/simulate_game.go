package main

import (
	"fmt"
	"log"
	"time"

	"github.com/tatianab/ball-quest/internal/config"
	"github.com/tatianab/ball-quest/internal/engine"
	"github.com/tatianab/ball-quest/internal/models"
)

// Scripted full playthrough: walks the whole house, cleans every ball,
// solves the four birthday challenges and opens every door, then
// verifies the collection is complete. Runs the real engine with the
// embedded content, no TUI.

const frame = 50 * time.Millisecond

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	s := eng.NewSession()
	fmt.Printf("Session %s started\n\n", s.ID())

	// The opening beats: welcome message, then the key tutorial holds
	// the player for a few seconds.
	advanceFor(s, 7*time.Second)

	fmt.Println("--- Outside ---")
	walkTo(s, 120, 320) // front door key
	mustHaveKey(s, "outside_door_key")
	walkTo(s, 90, 200) // yoga ball on the way
	walkTo(s, 48, 96)  // closet key hidden on the grass
	mustHaveKey(s, "challenge_key")
	walkTo(s, 64, 480)
	walkTo(s, 120, 560)
	mustCount(s, 3)

	walkTo(s, 135, 320)
	openDoor(s, "outside_door")
	walkTo(s, 200, 320)

	fmt.Println("--- Balcony ---")
	walkTo(s, 200, 120) // squishy ball
	walkTo(s, 300, 180) // plasma ball
	walkTo(s, 260, 420) // coin ball
	walkTo(s, 240, 260) // approach Aris from below: gift ball
	mustCount(s, 7)
	solveChallenge(s, 2015, 8, 9)
	mustHaveKey(s, "brother_youngest_key")

	walkTo(s, 295, 320)
	openDoor(s, "balcony_door")
	walkTo(s, 360, 320)

	fmt.Println("--- Kitchen ---")
	walkTo(s, 360, 500) // disco ball, and Tumas is close by
	walkTo(s, 380, 440) // Tumas hands over his rusty ball
	mustCount(s, 9)
	solveChallenge(s, 2009, 9, 22)
	mustHaveKey(s, "brother_middle_key")
	walkTo(s, 430, 540) // massage ball
	walkTo(s, 440, 210) // Majus hands over his rusty ball
	mustCount(s, 11)
	solveChallenge(s, 2007, 9, 14)
	mustHaveKey(s, "me_character_key")

	walkTo(s, 400, 120)
	openDoor(s, "toilet_door")
	walkTo(s, 400, 50)

	fmt.Println("--- Toilet ---")
	walkTo(s, 380, 40)
	walkTo(s, 420, 40)
	mustCount(s, 13)
	walkTo(s, 400, 120) // back out

	walkTo(s, 455, 320)
	openDoor(s, "main_room_door")
	walkTo(s, 520, 320)

	fmt.Println("--- Main Room ---")
	walkTo(s, 520, 150) // magnetic ball
	walkTo(s, 610, 200) // rubik ball
	walkTo(s, 560, 480) // moon ball
	walkTo(s, 560, 340) // Mama's gift
	mustCount(s, 17)
	solveChallenge(s, 1982, 12, 26)
	mustHaveKey(s, "mom_key")

	walkTo(s, 615, 320)
	openDoor(s, "kids_room_door")
	walkTo(s, 680, 320)

	fmt.Println("--- Kids Room ---")
	walkTo(s, 700, 200) // the hint letter
	walkTo(s, 680, 480)
	walkTo(s, 730, 120)
	walkTo(s, 770, 400)
	mustCount(s, 20)

	walkTo(s, 775, 320)
	openDoor(s, "closet_door")
	walkTo(s, 840, 320)

	fmt.Println("--- Closet ---")
	walkTo(s, 880, 320) // the golf ball that started it all
	mustCount(s, 21)

	if !s.Completed() {
		log.Fatalf("Collected every ball but the session is not complete")
	}
	advanceFor(s, cfg.CompletionDelay+time.Second)
	if s.Mode() != engine.ModeEnded {
		log.Fatalf("Expected end screen, mode is %v", s.Mode())
	}
	snap := s.Snapshot()
	fmt.Printf("\n%s\n%s\n", snap.EndTitle, snap.EndMessage)
	fmt.Println("\nSimulation finished: full collection, all doors open.")
}

// walkTo steps the player toward the target, running a frame per step
// and resolving whatever the walk triggers along the way.
func walkTo(s *engine.Session, x, y float64) {
	target := models.Point{X: x, Y: y}
	for i := 0; i < 2000; i++ {
		resolveInterruptions(s)
		p := s.Player()
		dx := target.X - p.X
		dy := target.Y - p.Y
		if dx == 0 && dy == 0 {
			return
		}
		const step = 8.0
		dx = clamp(dx, -step, step)
		dy = clamp(dy, -step, step)
		s.MovePlayer(dx, dy)
		s.Advance(frame)
		if s.Player() == p && s.Mode() == engine.ModeExplore && !s.Snapshot().Frozen {
			log.Fatalf("Stuck walking to (%.0f,%.0f) at (%.0f,%.0f)", x, y, p.X, p.Y)
		}
	}
	log.Fatalf("Never reached (%.0f,%.0f)", x, y)
}

// resolveInterruptions deals with whatever took over the screen:
// cleans a triggered ball, confirms a letter, waits out a freeze.
func resolveInterruptions(s *engine.Session) {
	for i := 0; i < 500; i++ {
		switch s.Mode() {
		case engine.ModeCleaning:
			cleanBall(s)
		case engine.ModeLetter:
			s.ConfirmLetter()
		case engine.ModeExplore:
			if !s.Snapshot().Frozen {
				return
			}
			s.Advance(frame)
		default:
			return
		}
	}
	log.Fatalf("Interruption never resolved, mode %v", s.Mode())
}

// cleanBall rubs the active cleaning session to completion and
// collects the result.
func cleanBall(s *engine.Session) {
	s.CleaningPointerDown(models.Point{})
	for i := 0; i < 500; i++ {
		s.Advance(frame)
		snap := s.Snapshot()
		if snap.Cleaning == nil {
			log.Fatalf("Cleaning session vanished mid-rub")
		}
		if snap.Cleaning.Revealed {
			fmt.Printf("  cleaned: %s\n", snap.Cleaning.Ball.DisplayName)
			s.ConfirmCollect()
			return
		}
	}
	log.Fatalf("Rubbing never revealed the ball")
}

// solveChallenge activates the armed birthday challenge and enters the
// given date. The popup auto-closes on success.
func solveChallenge(s *engine.Session, year, month, day int) {
	s.Advance(frame) // let the proximity tick arm the challenge
	s.ActivateChallenge()
	if s.Mode() != engine.ModeChallenge {
		log.Fatalf("Challenge did not open, mode %v", s.Mode())
	}
	typeDigits(s, fmt.Sprintf("%04d", year))
	s.ChallengeNextField()
	typeDigits(s, fmt.Sprintf("%d", month))
	s.ChallengeNextField()
	typeDigits(s, fmt.Sprintf("%d", day))
	if got := s.SubmitChallenge(); got != engine.ChallengeCorrect {
		log.Fatalf("Expected correct birthdate %d-%d-%d, got outcome %v", year, month, day, got)
	}
	fmt.Printf("  challenge solved: %d-%02d-%02d\n", year, month, day)
	advanceFor(s, 3*time.Second)
	if s.Mode() != engine.ModeExplore {
		log.Fatalf("Challenge popup did not auto-close, mode %v", s.Mode())
	}
}

func typeDigits(s *engine.Session, digits string) {
	for _, r := range digits {
		s.ChallengeDigit(r)
	}
}

// openDoor interacts with the nearest door and verifies it opened.
func openDoor(s *engine.Session, id string) {
	resolveInterruptions(s)
	s.Interact()
	s.Advance(frame)
	if !s.IsDoorOpen(id) {
		log.Fatalf("Door %s did not open (balls=%d, keys=%v)",
			id, s.Inventory().CollectedCount(), s.Inventory().Keys())
	}
	fmt.Printf("  opened: %s\n", id)
}

func advanceFor(s *engine.Session, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		s.Advance(frame)
	}
}

func mustCount(s *engine.Session, want int) {
	if got := s.Inventory().CollectedCount(); got != want {
		log.Fatalf("Expected %d balls collected, have %d: %v",
			want, got, s.Inventory().Collected())
	}
}

func mustHaveKey(s *engine.Session, id models.KeyID) {
	if !s.Inventory().HasKey(id) {
		log.Fatalf("Expected key %s, have %v", id, s.Inventory().Keys())
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
