package models

// BallID identifies a collectible ball type. Collection is keyed on it,
// so it must be unique across the catalog.
type BallID string

// KeyID identifies a door key token.
type KeyID string

// KeyAuto marks a door that opens without any key.
const KeyAuto KeyID = "AUTO"

// BallClass distinguishes how a ball looks while still rusty.
type BallClass string

const (
	BallCommon BallClass = "common"
	BallFamily BallClass = "family"
	BallFirst  BallClass = "first"
)

// BallDefinition is one immutable entry of the 21-ball catalog.
type BallDefinition struct {
	ID          BallID    `yaml:"id"`
	DisplayName string    `yaml:"display_name"`
	FlavorText  string    `yaml:"flavor_text,omitempty"`
	Class       BallClass `yaml:"class"`
}

// Birthdate is the answer to a family challenge. Exact match on all
// three fields is required.
type Birthdate struct {
	Year  int `yaml:"year"`
	Month int `yaml:"month"`
	Day   int `yaml:"day"`
}

// Point is a position on the house plane, in world units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is an axis-aligned region, used for door footprints.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the middle of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// FamilyMember defines one of the four characters who hand over a ball
// and, after the birthdate challenge, a key.
type FamilyMember struct {
	CharacterID string    `yaml:"character_id"`
	DisplayName string    `yaml:"display_name"`
	Birthdate   Birthdate `yaml:"birthdate"`
	Greeting    string    `yaml:"greeting"`
	BallID      BallID    `yaml:"ball_id"`
	KeyID       KeyID     `yaml:"key_id"`
	RoomLabel   string    `yaml:"room_label"`
	Position    Point     `yaml:"position"`
}

// DoorDefinition describes a door discovered at world load.
// BallThreshold is zero for all doors except the closet.
type DoorDefinition struct {
	ID            string `yaml:"id"`
	RequiredKey   KeyID  `yaml:"required_key"`
	RoomFrom      string `yaml:"room_from"`
	TargetRoom    string `yaml:"target_room"`
	Region        Rect   `yaml:"region"`
	BallThreshold int    `yaml:"ball_threshold,omitempty"`
}

// KeyPlacement is a key lying loose in the world, picked up on overlap.
type KeyPlacement struct {
	KeyID         KeyID  `yaml:"key_id"`
	Position      Point  `yaml:"position"`
	PickupMessage string `yaml:"pickup_message"`
}

// LetterDefinition is a readable letter placed in the world.
type LetterDefinition struct {
	ID       string `yaml:"id"`
	Text     string `yaml:"text"`
	Position Point  `yaml:"position"`
}

// BallSpawn places one common rusty ball in the world.
type BallSpawn struct {
	BallID   BallID `yaml:"ball_id"`
	Position Point  `yaml:"position"`
}

// Messages holds every fixed narrative string the game shows. Strings
// with a %s or %d are fmt verbs filled in by the engine.
type Messages struct {
	Welcome           string `yaml:"welcome"`
	KeyNoticed        string `yaml:"key_noticed"`
	InventoryTutorial string `yaml:"inventory_tutorial"`
	LetterAdded       string `yaml:"letter_added"`
	DoorPrompt        string `yaml:"door_prompt"`
	DoorLocked        string `yaml:"door_locked"`
	NeedMoreBalls     string `yaml:"need_more_balls"`
	ChallengePrompt   string `yaml:"challenge_prompt"`
	ChallengeDone     string `yaml:"challenge_done"`
	ChallengeFillAll  string `yaml:"challenge_fill_all"`
	ChallengeWrong    string `yaml:"challenge_wrong"`
	ChallengeCorrect  string `yaml:"challenge_correct"`
	KeyReceived       string `yaml:"key_received"`
	GiftHandedOver    string `yaml:"gift_handed_over"`
	FoundBall         string `yaml:"found_ball"`
	Completion        string `yaml:"completion"`
	EndTitle          string `yaml:"end_title"`
	EndMessage        string `yaml:"end_message"`
}

// World is the static content the session is built from: the ball
// catalog, the family, the door graph and everything placed on the map.
type World struct {
	Title         string             `yaml:"title"`
	Width         float64            `yaml:"width"`
	Height        float64            `yaml:"height"`
	PlayerStart   Point              `yaml:"player_start"`
	Balls         []BallDefinition   `yaml:"balls"`
	Family        []FamilyMember     `yaml:"family"`
	Doors         []DoorDefinition   `yaml:"doors"`
	Keys          []KeyPlacement     `yaml:"keys"`
	Letters       []LetterDefinition `yaml:"letters"`
	BallSpawns    []BallSpawn        `yaml:"ball_spawns"`
	FirstBall     BallID             `yaml:"first_ball"`
	FirstBallSpot Point              `yaml:"first_ball_spot"`
	Messages      Messages           `yaml:"messages"`
}

// TotalBalls is the size of the catalog, i.e. the completion target.
func (w *World) TotalBalls() int { return len(w.Balls) }

// BallByID looks up a catalog entry. The second result is false when
// the id is not in the catalog.
func (w *World) BallByID(id BallID) (BallDefinition, bool) {
	for _, b := range w.Balls {
		if b.ID == id {
			return b, true
		}
	}
	return BallDefinition{}, false
}

// FamilyByID looks up a family member by character id.
func (w *World) FamilyByID(id string) (FamilyMember, bool) {
	for _, f := range w.Family {
		if f.CharacterID == id {
			return f, true
		}
	}
	return FamilyMember{}, false
}
