package engine

import "time"

// MessageCategory separates the two banner slots: the narrator box and
// the door prompt. Each has its own dismiss timer; showing a new
// message in a category cancels that category's pending dismissal.
type MessageCategory int

const (
	CategoryNarrator MessageCategory = iota
	CategoryDoorPrompt
)

type banner struct {
	text    string
	dismiss *Task
}

// MessageCenter owns the timed banners. All mutation happens on the
// session tick via the shared scheduler.
type MessageCenter struct {
	sched    *Scheduler
	duration time.Duration
	narrator banner
	door     banner
}

// NewMessageCenter returns a center whose banners auto-dismiss after
// the given duration.
func NewMessageCenter(sched *Scheduler, duration time.Duration) *MessageCenter {
	return &MessageCenter{sched: sched, duration: duration}
}

// ShowNarrator replaces the narrator banner and restarts its timer.
func (m *MessageCenter) ShowNarrator(text string) {
	m.narrator.dismiss.Cancel()
	m.narrator.text = text
	m.narrator.dismiss = m.sched.After(m.duration, func() {
		m.narrator = banner{}
	})
}

// ShowDoorPrompt replaces the door prompt banner and restarts its timer.
func (m *MessageCenter) ShowDoorPrompt(text string) {
	if m.door.text == text && m.door.dismiss.Pending() {
		// Same prompt still up: keep it instead of flickering the timer.
		return
	}
	m.door.dismiss.Cancel()
	m.door.text = text
	m.door.dismiss = m.sched.After(m.duration, func() {
		m.door = banner{}
	})
}

// ClearDoorPrompt drops the door prompt immediately.
func (m *MessageCenter) ClearDoorPrompt() {
	m.door.dismiss.Cancel()
	m.door = banner{}
}

// ClearAll drops both banners immediately.
func (m *MessageCenter) ClearAll() {
	m.narrator.dismiss.Cancel()
	m.narrator = banner{}
	m.ClearDoorPrompt()
}

// Narrator is the current narrator banner text, empty when none.
func (m *MessageCenter) Narrator() string { return m.narrator.text }

// DoorPrompt is the current door prompt text, empty when none.
func (m *MessageCenter) DoorPrompt() string { return m.door.text }
