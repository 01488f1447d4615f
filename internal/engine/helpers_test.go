package engine

import (
	"time"

	"github.com/tatianab/ball-quest/internal/config"
	"github.com/tatianab/ball-quest/internal/models"
)

// testWorld is a small house: two rooms split by a keyed door, a
// thresholded attic door at the far end, one family member, one loose
// key and one letter. Four balls total.
func testWorld() *models.World {
	return &models.World{
		Title:       "Test House",
		Width:       400,
		Height:      200,
		PlayerStart: models.Point{X: 16, Y: 100},
		Balls: []models.BallDefinition{
			{ID: "red", DisplayName: "Red Ball", Class: models.BallCommon},
			{ID: "blue", DisplayName: "Blue Ball", Class: models.BallCommon},
			{ID: "green", DisplayName: "Green Ball", Class: models.BallFamily},
			{ID: "gold", DisplayName: "Gold Ball", Class: models.BallFirst},
		},
		Family: []models.FamilyMember{
			{
				CharacterID: "aunt",
				DisplayName: "Auntie",
				Birthdate:   models.Birthdate{Year: 1990, Month: 5, Day: 17},
				Greeting:    "Here, I kept this for you.",
				BallID:      "green",
				KeyID:       "attic_key",
				RoomLabel:   "Attic",
				Position:    models.Point{X: 200, Y: 60},
			},
		},
		Doors: []models.DoorDefinition{
			{
				ID:          "hall_door",
				RequiredKey: "hall_key",
				RoomFrom:    "Entrance",
				TargetRoom:  "Hall",
				Region:      models.Rect{X: 100, Y: 60, Width: 10, Height: 80},
			},
			{
				ID:            "attic_door",
				RequiredKey:   "attic_key",
				RoomFrom:      "Hall",
				TargetRoom:    "Attic",
				Region:        models.Rect{X: 300, Y: 60, Width: 10, Height: 80},
				BallThreshold: 3,
			},
		},
		Keys: []models.KeyPlacement{
			{KeyID: "hall_key", Position: models.Point{X: 90, Y: 100}, PickupMessage: "You found the hall key!"},
		},
		Letters: []models.LetterDefinition{
			{ID: "note", Position: models.Point{X: 150, Y: 160}, Text: "The gold ball is in the attic."},
		},
		BallSpawns: []models.BallSpawn{
			{BallID: "red", Position: models.Point{X: 40, Y: 40}},
			{BallID: "blue", Position: models.Point{X: 150, Y: 40}},
		},
		FirstBall:     "gold",
		FirstBallSpot: models.Point{X: 380, Y: 100},
		Messages: models.Messages{
			Welcome:           "Welcome home!",
			KeyNoticed:        "Look, a key!",
			InventoryTutorial: "Press I to see your inventory.",
			LetterAdded:       "The letter was added to your inventory!",
			DoorPrompt:        "Press E to open the door",
			DoorLocked:        "These doors are locked. You need the %s key.",
			NeedMoreBalls:     "You need at least %d balls to enter!",
			ChallengePrompt:   "To earn the key to the %s, press K.",
			ChallengeDone:     "You already got the key!",
			ChallengeFillAll:  "Fill in all the fields!",
			ChallengeWrong:    "Wrong birthdate. Try again!",
			ChallengeCorrect:  "Correct! You earned the %s key!",
			KeyReceived:       "You got the %s key!",
			GiftHandedOver:    "%s gave you a rusty ball.",
			FoundBall:         "You found: %s!",
			Completion:        "Collection complete!",
			EndTitle:          "The End",
			EndMessage:        "Happy birthday!",
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		CleaningDuration:    time.Second,
		MessageDuration:     5 * time.Second,
		ResultDuration:      4 * time.Second,
		ChallengeCloseDelay: 2 * time.Second,
		CompletionDelay:     3 * time.Second,
	}
}

func newTestSession() *Session {
	return NewSession(testWorld(), testConfig())
}

// advance steps the session in frame-sized increments.
func advance(s *Session, d time.Duration) {
	const frame = 50 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		s.Advance(frame)
	}
}

// rubUntilRevealed drives the active cleaning session to completion.
func rubUntilRevealed(s *Session) {
	s.CleaningPointerDown(models.Point{})
	for i := 0; i < 100; i++ {
		s.Advance(50 * time.Millisecond)
		if s.cleaning == nil || s.cleaning.phase == CleaningRevealed {
			return
		}
	}
}
