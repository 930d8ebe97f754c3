// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package registration

import (
	"slices"

	"github.com/olegiv/staffreg/internal/model"
)

// Roster is the ordered list of committed people, in registration order.
type Roster []model.Person

// EmailTaken reports whether a roster entry already uses email.
// Comparison ignores case and surrounding whitespace.
func (r Roster) EmailTaken(email string) bool {
	want := model.NormalizeEmail(email)
	for _, p := range r {
		if model.NormalizeEmail(p.Email) == want {
			return true
		}
	}
	return false
}

// Contains reports whether an entry with the given ID exists.
func (r Roster) Contains(id string) bool {
	return r.index(id) >= 0
}

// With returns a new roster with p appended. r is not modified.
func (r Roster) With(p model.Person) Roster {
	out := make(Roster, 0, len(r)+1)
	out = append(out, r...)
	return append(out, p)
}

// Without returns a new roster lacking the entry with the given ID.
// If no such entry exists the result equals r.
func (r Roster) Without(id string) Roster {
	i := r.index(id)
	if i < 0 {
		return r
	}
	return slices.Delete(slices.Clone(r), i, i+1)
}

func (r Roster) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(r, func(p model.Person) bool { return p.ID == id })
}
