// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package registration

import (
	"errors"

	"github.com/google/uuid"

	"github.com/olegiv/staffreg/internal/model"
)

// Workflow errors.
var (
	// ErrNoPendingDraft is returned by Confirm when nothing is being previewed.
	ErrNoPendingDraft = errors.New("no pending draft to confirm")
	// ErrIDExhausted is returned when no unused ID could be generated.
	ErrIDExhausted = errors.New("could not generate a unique id")
)

// maxIDAttempts bounds the retries when a generated ID collides.
const maxIDAttempts = 8

// IDFunc generates opaque person IDs.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// Submit validates f. On success the state moves to Previewing with the
// draft; on failure it stays in Editing with the values and errors and a
// *ValidationError is returned alongside the new state. The roster is never
// modified. Submitting while previewing replaces the pending draft.
func Submit(s State, f Form, today model.Date) (State, error) {
	f = f.Trimmed()
	draft, errs := Validate(f, s.Roster, today)
	if len(errs) > 0 {
		return State{Roster: s.Roster, Phase: Editing{Form: f, Errors: errs}}, &ValidationError{Fields: errs}
	}
	return State{Roster: s.Roster, Phase: Previewing{Form: f, Draft: draft}}, nil
}

// Confirm commits the pending draft: it assigns a fresh ID, appends the
// person to the roster and resets the form. The draft is validated again
// against the current roster and date; if it no longer passes, the state
// returns to Editing with the errors and a *ValidationError.
// Without a pending draft it returns s unchanged and ErrNoPendingDraft.
func Confirm(s State, today model.Date, newID IDFunc) (State, model.Person, error) {
	pending, ok := s.Pending()
	if !ok {
		return s, model.Person{}, ErrNoPendingDraft
	}

	draft, errs := Validate(pending.Form, s.Roster, today)
	if len(errs) > 0 {
		return State{Roster: s.Roster, Phase: Editing{Form: pending.Form, Errors: errs}}, model.Person{}, &ValidationError{Fields: errs}
	}

	id, err := uniqueID(s.Roster, newID)
	if err != nil {
		return s, model.Person{}, err
	}
	draft.ID = id

	return State{
		Roster: s.Roster.With(draft),
		Phase:  Editing{Form: EmptyForm()},
	}, draft, nil
}

// Cancel discards the pending draft and goes back to Editing with the
// draft's values intact. In Editing it returns s unchanged.
func Cancel(s State) State {
	pending, ok := s.Pending()
	if !ok {
		return s
	}
	return State{Roster: s.Roster, Phase: Editing{Form: pending.Form}}
}

// Delete removes the roster entry with the given ID. Unknown IDs are
// ignored. The phase is left as is.
func Delete(s State, id string) State {
	return State{Roster: s.Roster.Without(id), Phase: s.Phase}
}

func uniqueID(r Roster, newID IDFunc) (string, error) {
	if newID == nil {
		newID = NewID
	}
	for range maxIDAttempts {
		id := newID()
		if id != "" && !r.Contains(id) {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
