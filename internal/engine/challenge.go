package engine

import (
	"strconv"

	"github.com/tatianab/ball-quest/internal/models"
)

// ChallengeField is one of the three date inputs.
type ChallengeField int

const (
	FieldYear ChallengeField = iota
	FieldMonth
	FieldDay
)

// next returns the tab-cycle successor: year, month, day, year.
func (f ChallengeField) next() ChallengeField {
	return (f + 1) % 3
}

func (f ChallengeField) maxLen() int {
	if f == FieldYear {
		return 4
	}
	return 2
}

// ChallengeOutcome is the result of one submission attempt.
type ChallengeOutcome int

const (
	// ChallengeIncomplete: a field was empty; nothing changed.
	ChallengeIncomplete ChallengeOutcome = iota
	// ChallengeWrong: the triple did not match; fields were cleared and
	// the session stays open for retry.
	ChallengeWrong
	// ChallengeCorrect: exact match; the key was issued.
	ChallengeCorrect
)

// ChallengeSession is the ephemeral birthdate-guessing popup. At most
// one exists at a time; the session enforces that.
type ChallengeSession struct {
	member     models.FamilyMember
	fields     [3]string
	active     ChallengeField
	result     string
	resultTask *Task
	solved     bool
}

func newChallengeSession(member models.FamilyMember) *ChallengeSession {
	return &ChallengeSession{member: member, active: FieldYear}
}

// Member is the family member being challenged.
func (c *ChallengeSession) Member() models.FamilyMember { return c.member }

// ActiveField is the currently focused input.
func (c *ChallengeSession) ActiveField() ChallengeField { return c.active }

// Field returns the digits typed into f so far.
func (c *ChallengeSession) Field(f ChallengeField) string { return c.fields[f] }

// Result is the feedback line from the last submission, empty when
// none is showing.
func (c *ChallengeSession) Result() string { return c.result }

// Solved reports whether the challenge succeeded and the popup is
// waiting out its auto-close delay.
func (c *ChallengeSession) Solved() bool { return c.solved }

// Digit appends a digit to the active field, capped at the field's
// width. Non-digit runes are ignored.
func (c *ChallengeSession) Digit(r rune) {
	if c.solved || r < '0' || r > '9' {
		return
	}
	if len(c.fields[c.active]) < c.active.maxLen() {
		c.fields[c.active] += string(r)
	}
}

// Backspace deletes the last digit of the active field.
func (c *ChallengeSession) Backspace() {
	if c.solved {
		return
	}
	if v := c.fields[c.active]; v != "" {
		c.fields[c.active] = v[:len(v)-1]
	}
}

// NextField moves focus along the fixed year, month, day cycle.
func (c *ChallengeSession) NextField() {
	if !c.solved {
		c.active = c.active.next()
	}
}

// attempt validates the current inputs against the member's birthdate.
// A wrong guess clears all three fields; an incomplete one leaves them
// untouched.
func (c *ChallengeSession) attempt() ChallengeOutcome {
	for _, v := range c.fields {
		if v == "" {
			return ChallengeIncomplete
		}
	}
	year, _ := strconv.Atoi(c.fields[FieldYear])
	month, _ := strconv.Atoi(c.fields[FieldMonth])
	day, _ := strconv.Atoi(c.fields[FieldDay])

	b := c.member.Birthdate
	if year == b.Year && month == b.Month && day == b.Day {
		c.solved = true
		return ChallengeCorrect
	}
	c.fields = [3]string{}
	c.active = FieldYear
	return ChallengeWrong
}
