package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNoRecipient finalize was invoked without a selected recipient.
// The cursor is already back at the meta step when this is returned.
var ErrNoRecipient = errors.New("no recipient selected")

const DateLayout = "2006-01-02"

// Wizard drives the fixed ordered step sequence. All state is held in
// memory; persistence is the caller's concern (the draft service saves
// the state on every mutation).
type Wizard struct {
	state DraftState
	now   func() time.Time
}

// New starts an empty wizard: cursor at the meta step, date and time
// defaulting to now, shift defaulting to morning.
func New(now func() time.Time) *Wizard {
	if now == nil {
		now = time.Now
	}
	n := now()
	w := &Wizard{now: now}
	w.state.Cursor = StepMeta
	w.state.Meta.ReportDate = n.Format(DateLayout)
	w.state.Meta.ReportTime = n.Format("15:04")
	w.state.Meta.Shift = DefaultShift
	return w
}

// Restore resumes a wizard from a previously saved draft.
func Restore(state DraftState, now func() time.Time) *Wizard {
	if now == nil {
		now = time.Now
	}
	if state.Cursor < StepMeta {
		state.Cursor = StepMeta
	}
	if state.Cursor > LastStep {
		state.Cursor = LastStep
	}
	return &Wizard{state: state, now: now}
}

// State snapshots the current wizard state for persistence.
func (w *Wizard) State() DraftState {
	s := w.state
	s.SavedAt = w.now()
	return s
}

func (w *Wizard) Cursor() int { return w.state.Cursor }

// Next advances the cursor by one. No validation gates advancement;
// fields may be left empty. Clamped at the last step.
func (w *Wizard) Next() int {
	if w.state.Cursor < LastStep {
		w.state.Cursor++
	}
	return w.state.Cursor
}

// Back decrements the cursor. Disabled at the meta step.
func (w *Wizard) Back() int {
	if w.state.Cursor > StepMeta {
		w.state.Cursor--
	}
	return w.state.Cursor
}

// SetMeta overwrites the meta fields. Empty date keeps the default.
func (w *Wizard) SetMeta(m MetaStep) {
	if m.ReportDate == "" {
		m.ReportDate = w.state.Meta.ReportDate
	}
	if m.ReportTime == "" {
		m.ReportTime = w.state.Meta.ReportTime
	}
	if m.Shift == "" {
		m.Shift = w.state.Meta.Shift
	}
	w.state.Meta = m
}

// SetAnswers overwrites the clinical answers and free-text notes.
func (w *Wizard) SetAnswers(a StepAnswers, notes string) {
	w.state.Answers = a
	w.state.Notes = notes
}

// DivertToAlert reports whether an answer calls for the urgent-event
// path: a fall on the mobility step or confusion on the cognition step.
// Diversion never clears wizard state; the user may come back.
func (w *Wizard) DivertToAlert() bool {
	return w.state.Answers.Mobility.Fall == TokenFell ||
		w.state.Answers.Cognition.Confusion == TokenConfused
}

// Finalize validates the terminal state and assembles the answers for
// submission. A missing recipient routes the cursor back to the meta
// step and returns ErrNoRecipient instead of submitting.
func (w *Wizard) Finalize() (json.RawMessage, error) {
	if w.state.Meta.RecipientID == "" {
		w.state.Cursor = StepMeta
		return nil, ErrNoRecipient
	}
	answers, err := json.Marshal(w.state.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble answers: %w", err)
	}
	return answers, nil
}

// Stale reports whether a saved draft belongs to a previous day and
// must be ignored on load.
func Stale(state DraftState, today time.Time) bool {
	return state.Meta.ReportDate != today.Format(DateLayout)
}
