package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tatianab/ball-quest/internal/config"
	"github.com/tatianab/ball-quest/internal/models"
)

// interactionRadius is how close the player must be to a door,
// character, key or letter for it to react.
const interactionRadius = 64.0

// overlapRadius is the tighter "standing on it" distance that triggers
// pickups and cleaning.
const overlapRadius = 28.0

// welcomeDelay is the pause before the opening narrator message.
const welcomeDelay = time.Second

// keyHintFreeze is how long the tutorial key hint holds the player.
const keyHintFreeze = 5 * time.Second

// challengeRearm is the window during which re-overlapping a family
// member will not repeat the challenge prompt.
const challengeRearm = 3 * time.Second

// Mode is the session-level interaction mode. The modes are mutually
// exclusive: entering one while another is active is a no-op.
type Mode int

const (
	ModeExplore Mode = iota
	ModeCleaning
	ModeChallenge
	ModeInventory
	ModeLetter
	ModeEnded
)

// worldBall is a rusty collectible placed on the map.
type worldBall struct {
	id      models.BallID
	pos     models.Point
	removed bool
}

func (b *worldBall) BallID() models.BallID { return b.id }
func (b *worldBall) Dispose()              { b.removed = true }

// looseKey is a key lying in the world, picked up on overlap.
type looseKey struct {
	def   models.KeyPlacement
	taken bool
}

// worldLetter is a readable letter placed in the world.
type worldLetter struct {
	def   models.LetterDefinition
	taken bool
}

// familyState is the per-character progression: the ball is offered
// until collected, the key only after the birthdate challenge.
type familyState struct {
	def      models.FamilyMember
	keyGiven bool
}

// Session is one run of the game. It owns all mutable state; the
// presentation layer drives it through input methods and reads it back
// through Snapshot. Everything is single-threaded: one Advance per
// frame, no goroutines, no locks.
type Session struct {
	id    string
	world *models.World
	cfg   *config.Config

	sched    *Scheduler
	messages *MessageCenter
	inv      *Inventory

	player  models.Point
	doors   []*Door
	family  []*familyState
	balls   []*worldBall
	keys    []*looseKey
	letters []*worldLetter

	completedChallenges map[string]bool

	mode       Mode
	cleaning   *CleaningSession
	challenge  *ChallengeSession
	openLetter *worldLetter

	// challengeTarget is the character armed for the activation input.
	challengeTarget string
	// familyBusy suppresses family re-interaction for a short window.
	familyBusy bool

	inventoryTipShown bool
	keyHintShown      bool
	firstBallSpawned  bool
	frozen            bool
	completed         bool
}

// NewSession builds a fresh run from the world content. All state is
// in-process and lost on restart.
func NewSession(world *models.World, cfg *config.Config) *Session {
	sched := NewScheduler()
	s := &Session{
		id:                  uuid.NewString(),
		world:               world,
		cfg:                 cfg,
		sched:               sched,
		messages:            NewMessageCenter(sched, cfg.MessageDuration),
		inv:                 NewInventory(),
		player:              world.PlayerStart,
		completedChallenges: make(map[string]bool),
	}
	for _, def := range world.Doors {
		s.doors = append(s.doors, newDoor(def))
	}
	for _, f := range world.Family {
		s.family = append(s.family, &familyState{def: f})
	}
	for _, spawn := range world.BallSpawns {
		s.balls = append(s.balls, &worldBall{id: spawn.BallID, pos: spawn.Position})
	}
	for _, k := range world.Keys {
		s.keys = append(s.keys, &looseKey{def: k})
	}
	for _, l := range world.Letters {
		s.letters = append(s.letters, &worldLetter{def: l})
	}
	s.sched.After(welcomeDelay, func() {
		s.messages.ShowNarrator(world.Messages.Welcome)
	})
	return s
}

// ID is the session identifier.
func (s *Session) ID() string { return s.id }

// Mode is the current interaction mode.
func (s *Session) Mode() Mode { return s.mode }

// Inventory exposes the ledger for read-side queries.
func (s *Session) Inventory() *Inventory { return s.inv }

// Advance moves session time forward by one frame: fires due timers,
// accumulates cleaning progress and, in explore mode, runs the
// proximity checks that drive pickups, interactions and door prompts.
func (s *Session) Advance(dt time.Duration) {
	s.sched.Advance(dt)

	switch s.mode {
	case ModeCleaning:
		if s.cleaning != nil {
			s.cleaning.advance(dt)
		}
	case ModeExplore:
		if s.frozen {
			return
		}
		s.tickKeys()
		s.tickLetters()
		s.tickFamily()
		s.tickBalls()
		s.tickDoors()
	}
}

// MovePlayer shifts the player, clamped to the world bounds and
// blocked by closed doors. Movement is only possible while exploring.
func (s *Session) MovePlayer(dx, dy float64) {
	if s.mode != ModeExplore || s.frozen {
		return
	}
	target := models.Point{X: s.player.X + dx, Y: s.player.Y + dy}
	target.X = clamp(target.X, 0, s.world.Width)
	target.Y = clamp(target.Y, 0, s.world.Height)
	for _, d := range s.doors {
		if d.blocks(s.player, target) {
			return
		}
	}
	s.player = target
}

// Player is the current player position.
func (s *Session) Player() models.Point { return s.player }

// playerRoom derives the room label from the door graph: each door
// splits the plane along its region, vertical doors on x, the
// horizontal toilet door on y within its band.
func (s *Session) playerRoom() string {
	room := ""
	if len(s.doors) > 0 {
		room = s.doors[0].RoomFrom
	}
	for _, d := range s.doors {
		r := d.Region
		if r.Width < r.Height {
			if s.player.X > r.X+r.Width {
				room = d.TargetRoom
			}
		} else if s.player.Y < r.Y && s.player.X >= r.X-40 && s.player.X <= r.X+r.Width+40 {
			room = d.TargetRoom
		}
	}
	return room
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

// --- proximity ticks -------------------------------------------------

func (s *Session) tickKeys() {
	for _, k := range s.keys {
		if k.taken {
			continue
		}
		d := distance(s.player, k.def.Position)
		if d <= overlapRadius {
			k.taken = true
			s.inv.AddKey(k.def.KeyID)
			s.messages.ShowNarrator(k.def.PickupMessage)
			continue
		}
		if !s.keyHintShown && d <= interactionRadius {
			// Tutorial beat: hold the player and point at the key once.
			s.keyHintShown = true
			s.frozen = true
			s.messages.ShowNarrator(s.world.Messages.KeyNoticed)
			s.sched.After(keyHintFreeze, func() { s.frozen = false })
		}
	}
}

func (s *Session) tickLetters() {
	for _, l := range s.letters {
		if !l.taken && distance(s.player, l.def.Position) <= overlapRadius {
			s.openLetter = l
			s.mode = ModeLetter
			return
		}
	}
}

func (s *Session) tickFamily() {
	if s.familyBusy {
		return
	}
	for _, fs := range s.family {
		if distance(s.player, fs.def.Position) > interactionRadius {
			continue
		}
		// The gift stays on offer until it lands in the collection, so
		// canceling its cleaning never strands the ball.
		if !s.inv.HasBall(fs.def.BallID) {
			s.familyBusy = true
			s.messages.ShowNarrator(fs.def.Greeting + "\n\n" +
				fmt.Sprintf(s.world.Messages.GiftHandedOver, fs.def.DisplayName))
			s.beginCleaning(giftToken{id: fs.def.BallID}, true)
			return
		}
		s.familyBusy = true
		s.challengeTarget = fs.def.CharacterID
		if !s.completedChallenges[fs.def.CharacterID] {
			s.messages.ClearAll()
			s.messages.ShowNarrator(fmt.Sprintf(s.world.Messages.ChallengePrompt, fs.def.RoomLabel))
		}
		s.sched.After(challengeRearm, func() { s.familyBusy = false })
		return
	}
}

func (s *Session) tickBalls() {
	for _, b := range s.balls {
		if !b.removed && distance(s.player, b.pos) <= overlapRadius {
			s.beginCleaning(b, false)
			return
		}
	}
}

func (s *Session) tickDoors() {
	// Open doors are silent: any prompt near one is cleared at once.
	for _, d := range s.doors {
		if d.Open && distance(s.player, d.Region.Center()) < interactionRadius {
			if s.messages.DoorPrompt() != "" {
				s.messages.ClearAll()
			}
			return
		}
	}
	d := s.nearestClosedDoor()
	if d == nil {
		s.messages.ClearDoorPrompt()
		return
	}
	if evaluateDoor(d, s.inv) == DoorOpenable {
		s.messages.ShowDoorPrompt(s.world.Messages.DoorPrompt)
	} else {
		s.messages.ClearDoorPrompt()
	}
}

// nearestClosedDoor ties-break simultaneous candidates by straight-line
// distance to the player.
func (s *Session) nearestClosedDoor() *Door {
	var best *Door
	bestDist := interactionRadius
	for _, d := range s.doors {
		if d.Open {
			continue
		}
		if dist := distance(s.player, d.Region.Center()); dist <= bestDist {
			best = d
			bestDist = dist
		}
	}
	return best
}

// --- doors -----------------------------------------------------------

// Interact is the discrete door-interaction trigger.
func (s *Session) Interact() {
	if s.mode != ModeExplore || s.frozen {
		return
	}
	d := s.nearestClosedDoor()
	if d == nil {
		return
	}
	switch evaluateDoor(d, s.inv) {
	case DoorOpenable:
		s.openDoor(d)
	case DoorNeedsBalls:
		s.messages.ShowNarrator(fmt.Sprintf(s.world.Messages.NeedMoreBalls, d.BallThreshold))
	case DoorLocked:
		s.messages.ShowDoorPrompt(fmt.Sprintf(s.world.Messages.DoorLocked, d.TargetRoom))
	}
}

// openDoor flips the door open, consumes the key, and on the closet
// spawns the final ball exactly once. The ball threshold was checked by
// the evaluator before any mutation, so Open never has to be reverted.
func (s *Session) openDoor(d *Door) {
	s.messages.ClearDoorPrompt()
	d.Open = true
	if d.RequiredKey != models.KeyAuto {
		s.inv.ConsumeKey(d.RequiredKey)
	}
	if d.BallThreshold > 0 && !s.firstBallSpawned {
		s.firstBallSpawned = true
		s.balls = append(s.balls, &worldBall{id: s.world.FirstBall, pos: s.world.FirstBallSpot})
	}
}

// IsDoorOpen is a read-side query for the presentation layer.
func (s *Session) IsDoorOpen(id string) bool {
	for _, d := range s.doors {
		if d.ID == id {
			return d.Open
		}
	}
	return false
}

// --- cleaning --------------------------------------------------------

// cleaningDisplayPos is where the popup draws the ball; rub distance
// is measured against it.
var cleaningDisplayPos = models.Point{X: 0, Y: 0}

func (s *Session) beginCleaning(source BallSource, gift bool) {
	if s.mode != ModeExplore || s.cleaning != nil {
		return
	}
	s.cleaning = newCleaningSession(source, gift, s.cfg.CleaningDuration, cleaningDisplayPos)
	s.mode = ModeCleaning
}

// CleaningPointerMove, CleaningPointerDown and CleaningPointerUp relay
// the continuous rub input while a cleaning session is active.
func (s *Session) CleaningPointerMove(p models.Point) {
	if s.cleaning != nil {
		s.cleaning.PointerMove(p)
	}
}

func (s *Session) CleaningPointerDown(p models.Point) {
	if s.cleaning != nil {
		s.cleaning.PointerDown(p)
	}
}

func (s *Session) CleaningPointerUp() {
	if s.cleaning != nil {
		s.cleaning.PointerUp()
	}
}

// ConfirmCollect moves a revealed ball into the collection. Re-cleaning
// an already-collected type is a harmless no-op on the ledger.
func (s *Session) ConfirmCollect() {
	c := s.cleaning
	if c == nil || c.phase != CleaningRevealed {
		return
	}
	added := s.inv.AddBall(c.source.BallID())
	if added && !s.inventoryTipShown {
		s.inventoryTipShown = true
		s.messages.ShowNarrator(s.world.Messages.InventoryTutorial)
	}
	if !c.gift {
		c.source.Dispose()
	}
	s.closeCleaning()
	if added {
		s.checkCompletion()
	}
}

// CancelCleaning abandons the mini-game. Progress is discarded
// entirely; reopening starts from zero. A canceled gift re-arms after
// the interaction window so the player can step away first.
func (s *Session) CancelCleaning() {
	c := s.cleaning
	if c == nil {
		return
	}
	s.closeCleaning()
	if c.gift {
		s.familyBusy = true
		s.sched.After(challengeRearm, func() { s.familyBusy = false })
	}
}

func (s *Session) closeCleaning() {
	s.cleaning = nil
	s.familyBusy = false
	if s.mode == ModeCleaning {
		s.mode = ModeExplore
	}
}

// --- challenge -------------------------------------------------------

// ActivateChallenge is the discrete trigger that opens the birthdate
// popup for the armed family member.
func (s *Session) ActivateChallenge() {
	if s.mode != ModeExplore || s.frozen || s.challengeTarget == "" {
		return
	}
	member, ok := s.world.FamilyByID(s.challengeTarget)
	s.challengeTarget = ""
	s.familyBusy = false
	if !ok {
		return
	}
	s.messages.ClearAll()
	if s.completedChallenges[member.CharacterID] {
		s.messages.ShowNarrator(s.world.Messages.ChallengeDone)
		return
	}
	s.challenge = newChallengeSession(member)
	s.mode = ModeChallenge
}

// ChallengeDigit, ChallengeBackspace and ChallengeNextField relay the
// discrete editing inputs into the active challenge.
func (s *Session) ChallengeDigit(r rune) {
	if s.challenge != nil {
		s.challenge.Digit(r)
	}
}

func (s *Session) ChallengeBackspace() {
	if s.challenge != nil {
		s.challenge.Backspace()
	}
}

func (s *Session) ChallengeNextField() {
	if s.challenge != nil {
		s.challenge.NextField()
	}
}

// SubmitChallenge validates the inputs. Empty fields are rejected
// without touching them; a wrong date clears them and keeps the popup
// open for an unlimited retry; an exact match issues the key and
// auto-closes after a short delay.
func (s *Session) SubmitChallenge() ChallengeOutcome {
	c := s.challenge
	if c == nil {
		return ChallengeIncomplete
	}
	if c.solved {
		// Already succeeded; the popup is waiting out its close delay.
		return ChallengeCorrect
	}
	outcome := c.attempt()
	msgs := s.world.Messages
	switch outcome {
	case ChallengeIncomplete:
		s.setChallengeResult(msgs.ChallengeFillAll)
	case ChallengeWrong:
		s.setChallengeResult(msgs.ChallengeWrong)
	case ChallengeCorrect:
		member := c.member
		s.inv.AddKey(member.KeyID)
		s.completedChallenges[member.CharacterID] = true
		for _, fs := range s.family {
			if fs.def.CharacterID == member.CharacterID {
				fs.keyGiven = true
			}
		}
		c.resultTask.Cancel()
		c.result = fmt.Sprintf(msgs.ChallengeCorrect, member.RoomLabel)
		s.sched.After(s.cfg.ChallengeCloseDelay, func() {
			if s.challenge == c {
				s.closeChallenge()
				s.messages.ShowNarrator(fmt.Sprintf(msgs.KeyReceived, member.RoomLabel))
			}
		})
	}
	return outcome
}

func (s *Session) setChallengeResult(text string) {
	c := s.challenge
	c.resultTask.Cancel()
	c.result = text
	c.resultTask = s.sched.After(s.cfg.ResultDuration, func() {
		if s.challenge == c {
			c.result = ""
		}
	})
}

// CancelChallenge closes the popup with no side effects.
func (s *Session) CancelChallenge() {
	if s.challenge == nil || s.challenge.solved {
		return
	}
	s.closeChallenge()
}

func (s *Session) closeChallenge() {
	if s.challenge != nil {
		s.challenge.resultTask.Cancel()
	}
	s.challenge = nil
	if s.mode == ModeChallenge {
		s.mode = ModeExplore
	}
}

// --- inventory browsing ----------------------------------------------

// OpenInventory enters the browsing mode; rejected while any other
// workflow is active.
func (s *Session) OpenInventory() {
	if s.mode != ModeExplore || s.frozen {
		return
	}
	s.mode = ModeInventory
}

// CloseInventory returns to exploring.
func (s *Session) CloseInventory() {
	if s.mode == ModeInventory {
		s.mode = ModeExplore
	}
}

// --- letters ---------------------------------------------------------

// ConfirmLetter closes the letter view, marking it read and removing
// it from the world on first read.
func (s *Session) ConfirmLetter() {
	l := s.openLetter
	if l == nil {
		return
	}
	if s.inv.MarkLetterRead(l.def.ID) {
		s.messages.ShowNarrator(s.world.Messages.LetterAdded)
	}
	l.taken = true
	s.openLetter = nil
	if s.mode == ModeLetter {
		s.mode = ModeExplore
	}
}

// --- completion ------------------------------------------------------

// checkCompletion runs after every successful collection. The first
// crossing of the catalog size shows the completion message, then
// moves the session into its terminal state after a fixed delay.
func (s *Session) checkCompletion() {
	if s.completed || s.inv.CollectedCount() < s.world.TotalBalls() {
		return
	}
	s.completed = true
	s.messages.ShowNarrator(s.world.Messages.Completion)
	s.sched.After(s.cfg.CompletionDelay, func() {
		s.messages.ClearAll()
		s.mode = ModeEnded
	})
}

// Completed reports whether the completion threshold has been crossed.
func (s *Session) Completed() bool { return s.completed }

// DebugCompleteAll fills the collection instantly. It only works when
// the debug toggle is set in the configuration.
func (s *Session) DebugCompleteAll() {
	if !s.cfg.DebugComplete {
		return
	}
	for _, b := range s.world.Balls {
		s.inv.AddBall(b.ID)
	}
	s.checkCompletion()
}
