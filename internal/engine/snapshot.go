package engine

import (
	"fmt"

	"github.com/tatianab/ball-quest/internal/models"
)

// DoorState is the read-side view of one door.
type DoorState struct {
	ID         string
	TargetRoom string
	Region     models.Rect
	Open       bool
}

// EntityKind tags a world entity for rendering.
type EntityKind int

const (
	EntityBall EntityKind = iota
	EntityFamily
	EntityKey
	EntityLetter
)

// EntityState is a renderable thing on the map.
type EntityState struct {
	Kind  EntityKind
	Label string
	Pos   models.Point
}

// CleaningView is the read-side view of an active cleaning session.
type CleaningView struct {
	Revealed bool
	Progress float64
	Rubbing  bool
	Gift     bool
	// Ball and FoundLine are only meaningful once Revealed; before
	// that the identity stays hidden behind the rust.
	Ball      models.BallDefinition
	FoundLine string
}

// ChallengeView is the read-side view of an active challenge.
type ChallengeView struct {
	MemberName string
	RoomLabel  string
	Year       string
	Month      string
	Day        string
	Active     ChallengeField
	Result     string
	Solved     bool
}

// Snapshot is everything the presentation layer needs for one frame.
type Snapshot struct {
	SessionID string
	Title     string
	Mode      Mode

	Player models.Point
	Room   string
	Width  float64
	Height float64

	BallsCollected int
	BallsTotal     int
	KeysHeld       int
	Collection     []models.BallDefinition
	Keys           []models.KeyID
	LettersRead    int

	Narrator   string
	DoorPrompt string

	Doors    []DoorState
	Entities []EntityState

	Cleaning  *CleaningView
	Challenge *ChallengeView
	Letter    string

	Frozen     bool
	EndTitle   string
	EndMessage string
}

// Snapshot captures the session state for rendering. It copies
// everything it exposes, so the caller can hold it across a mutation.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:      s.id,
		Title:          s.world.Title,
		Mode:           s.mode,
		Player:         s.player,
		Room:           s.playerRoom(),
		Width:          s.world.Width,
		Height:         s.world.Height,
		BallsCollected: s.inv.CollectedCount(),
		BallsTotal:     s.world.TotalBalls(),
		KeysHeld:       s.inv.KeyCount(),
		Keys:           s.inv.Keys(),
		LettersRead:    s.inv.LettersRead(),
		Narrator:       s.messages.Narrator(),
		DoorPrompt:     s.messages.DoorPrompt(),
		Frozen:         s.frozen,
	}

	for _, id := range s.inv.Collected() {
		if def, ok := s.world.BallByID(id); ok {
			snap.Collection = append(snap.Collection, def)
		}
	}
	for _, d := range s.doors {
		snap.Doors = append(snap.Doors, DoorState{
			ID:         d.ID,
			TargetRoom: d.TargetRoom,
			Region:     d.Region,
			Open:       d.Open,
		})
	}
	for _, b := range s.balls {
		if !b.removed {
			snap.Entities = append(snap.Entities, EntityState{Kind: EntityBall, Label: string(b.id), Pos: b.pos})
		}
	}
	for _, f := range s.family {
		snap.Entities = append(snap.Entities, EntityState{Kind: EntityFamily, Label: f.def.DisplayName, Pos: f.def.Position})
	}
	for _, k := range s.keys {
		if !k.taken {
			snap.Entities = append(snap.Entities, EntityState{Kind: EntityKey, Label: string(k.def.KeyID), Pos: k.def.Position})
		}
	}
	for _, l := range s.letters {
		if !l.taken {
			snap.Entities = append(snap.Entities, EntityState{Kind: EntityLetter, Label: l.def.ID, Pos: l.def.Position})
		}
	}

	if c := s.cleaning; c != nil {
		view := &CleaningView{
			Revealed: c.phase == CleaningRevealed,
			Progress: c.Progress(),
			Rubbing:  c.rubbing(),
			Gift:     c.gift,
		}
		if view.Revealed {
			if def, ok := s.world.BallByID(c.source.BallID()); ok {
				view.Ball = def
				view.FoundLine = fmt.Sprintf(s.world.Messages.FoundBall, def.DisplayName)
			}
		}
		snap.Cleaning = view
	}

	if c := s.challenge; c != nil {
		snap.Challenge = &ChallengeView{
			MemberName: c.member.DisplayName,
			RoomLabel:  c.member.RoomLabel,
			Year:       c.Field(FieldYear),
			Month:      c.Field(FieldMonth),
			Day:        c.Field(FieldDay),
			Active:     c.active,
			Result:     c.result,
			Solved:     c.solved,
		}
	}

	if s.openLetter != nil {
		snap.Letter = s.openLetter.def.Text
	}

	if s.mode == ModeEnded {
		snap.EndTitle = s.world.Messages.EndTitle
		snap.EndMessage = s.world.Messages.EndMessage
	}
	return snap
}

// NearestInteractable describes what a prompt would refer to right
// now: the closest closed door in range, if any.
func (s *Session) NearestInteractable() (string, bool) {
	d := s.nearestClosedDoor()
	if d == nil {
		return "", false
	}
	return d.TargetRoom, true
}
