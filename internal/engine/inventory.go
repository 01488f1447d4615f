package engine

import "github.com/tatianab/ball-quest/internal/models"

// Inventory is the session's ledger: collected ball types, held keys
// and read letters. Ball collection is idempotent; keys are a list so
// a duplicate key id, while never produced in practice, would not be
// silently merged.
type Inventory struct {
	collectedTypes map[models.BallID]struct{}
	collectedOrder []models.BallID
	keys           []models.KeyID
	lettersRead    map[string]struct{}
}

// NewInventory returns an empty ledger.
func NewInventory() *Inventory {
	return &Inventory{
		collectedTypes: make(map[models.BallID]struct{}),
		lettersRead:    make(map[string]struct{}),
	}
}

// AddBall records a collected ball type. It reports false, and changes
// nothing, when the type was already collected.
func (inv *Inventory) AddBall(id models.BallID) bool {
	if _, ok := inv.collectedTypes[id]; ok {
		return false
	}
	inv.collectedTypes[id] = struct{}{}
	inv.collectedOrder = append(inv.collectedOrder, id)
	return true
}

// HasBall reports whether the ball type was collected.
func (inv *Inventory) HasBall(id models.BallID) bool {
	_, ok := inv.collectedTypes[id]
	return ok
}

// CollectedCount is the number of distinct collected ball types.
func (inv *Inventory) CollectedCount() int { return len(inv.collectedOrder) }

// Collected returns the collected ball types in collection order.
func (inv *Inventory) Collected() []models.BallID {
	out := make([]models.BallID, len(inv.collectedOrder))
	copy(out, inv.collectedOrder)
	return out
}

// AddKey appends a key to the ledger.
func (inv *Inventory) AddKey(id models.KeyID) {
	inv.keys = append(inv.keys, id)
}

// HasKey reports whether at least one key with this id is held.
func (inv *Inventory) HasKey(id models.KeyID) bool {
	for _, k := range inv.keys {
		if k == id {
			return true
		}
	}
	return false
}

// ConsumeKey removes the first held key with this id. Consuming an
// absent key is a no-op; callers check HasKey first.
func (inv *Inventory) ConsumeKey(id models.KeyID) {
	for i, k := range inv.keys {
		if k == id {
			inv.keys = append(inv.keys[:i], inv.keys[i+1:]...)
			return
		}
	}
}

// Keys returns the held keys in pickup order.
func (inv *Inventory) Keys() []models.KeyID {
	out := make([]models.KeyID, len(inv.keys))
	copy(out, inv.keys)
	return out
}

// KeyCount is the number of held keys.
func (inv *Inventory) KeyCount() int { return len(inv.keys) }

// MarkLetterRead records a read letter. It reports false when the
// letter was already read.
func (inv *Inventory) MarkLetterRead(id string) bool {
	if _, ok := inv.lettersRead[id]; ok {
		return false
	}
	inv.lettersRead[id] = struct{}{}
	return true
}

// LetterRead reports whether the letter was read.
func (inv *Inventory) LetterRead(id string) bool {
	_, ok := inv.lettersRead[id]
	return ok
}

// LettersRead is the number of read letters.
func (inv *Inventory) LettersRead() int { return len(inv.lettersRead) }
