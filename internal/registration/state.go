// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package registration

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olegiv/staffreg/internal/model"
)

// Phase is the current step of the workflow: Editing or Previewing.
type Phase interface {
	// Values returns the form values shown on screen in this phase.
	Values() Form
	phaseName() string
}

// Editing is the phase in which the form is being filled in.
// Errors holds the messages from the last failed submit, if any.
type Editing struct {
	Form   Form
	Errors FieldErrors
}

// Values implements Phase.
func (e Editing) Values() Form { return e.Form }

func (Editing) phaseName() string { return phaseEditing }

// Previewing is the phase in which a validated draft awaits confirmation.
// Form keeps the values the draft was built from so cancel can restore them.
type Previewing struct {
	Form  Form
	Draft model.Person
}

// Values implements Phase.
func (p Previewing) Values() Form { return p.Form }

func (Previewing) phaseName() string { return phasePreviewing }

const (
	phaseEditing    = "editing"
	phasePreviewing = "previewing"
)

// State is the whole registration state of one session.
type State struct {
	Roster Roster
	Phase  Phase
}

// NewState returns the initial state: an empty roster and an empty form.
func NewState() State {
	return State{Phase: Editing{Form: EmptyForm()}}
}

// Current returns the phase, defaulting to an empty Editing phase.
func (s State) Current() Phase {
	if s.Phase == nil {
		return Editing{Form: EmptyForm()}
	}
	return s.Phase
}

// Pending returns the draft awaiting confirmation, if any.
func (s State) Pending() (Previewing, bool) {
	p, ok := s.Phase.(Previewing)
	return p, ok
}

// Errors returns the field errors of the Editing phase, if any.
func (s State) Errors() FieldErrors {
	if e, ok := s.Phase.(Editing); ok && e.Errors != nil {
		return e.Errors
	}
	return FieldErrors{}
}

type stateJSON struct {
	Phase  string         `json:"phase"`
	Roster []model.Person `json:"roster"`
	Form   Form           `json:"form"`
	Errors FieldErrors    `json:"errors,omitempty"`
	Draft  *model.Person  `json:"draft,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{Roster: s.Roster}
	if out.Roster == nil {
		out.Roster = []model.Person{}
	}
	switch p := s.Current().(type) {
	case Editing:
		out.Phase = phaseEditing
		out.Form = p.Form
		out.Errors = p.Errors
	case Previewing:
		out.Phase = phasePreviewing
		out.Form = p.Form
		draft := p.Draft
		out.Draft = &draft
	default:
		return nil, fmt.Errorf("unknown phase %T", p)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *State) UnmarshalJSON(b []byte) error {
	var in stateJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	st := State{Roster: in.Roster}
	switch in.Phase {
	case phaseEditing, "":
		st.Phase = Editing{Form: in.Form, Errors: in.Errors}
	case phasePreviewing:
		if in.Draft == nil {
			return errors.New("previewing state without draft")
		}
		st.Phase = Previewing{Form: in.Form, Draft: *in.Draft}
	default:
		return fmt.Errorf("unknown phase %q", in.Phase)
	}
	*s = st
	return nil
}
