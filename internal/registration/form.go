// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package registration implements the staff registration workflow:
// field validation, the submit/preview/confirm state machine and the
// session roster. Every operation is a pure function of the current
// State and its input, so the workflow can be tested without HTTP.
package registration

import (
	"net/url"
	"strings"

	"github.com/olegiv/staffreg/internal/model"
)

// Form field names. They double as HTML input names and error keys.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBirthDate = "birth_date"
	FieldEmail     = "email"
	FieldRole      = "role"
	FieldHireDate  = "hire_date"
)

// Fields lists all form fields in display order.
var Fields = []string{FieldFirstName, FieldLastName, FieldBirthDate, FieldEmail, FieldRole, FieldHireDate}

// Form holds the raw values entered by the user.
type Form struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	HireDate  string `json:"hire_date"`
}

// EmptyForm returns a form with every field cleared and the role
// set to the unselected placeholder.
func EmptyForm() Form {
	return Form{Role: string(model.RoleUnselected)}
}

// FormFromValues reads a Form from posted form values.
func FormFromValues(v url.Values) Form {
	f := Form{
		FirstName: v.Get(FieldFirstName),
		LastName:  v.Get(FieldLastName),
		BirthDate: v.Get(FieldBirthDate),
		Email:     v.Get(FieldEmail),
		Role:      v.Get(FieldRole),
		HireDate:  v.Get(FieldHireDate),
	}
	return f.Trimmed()
}

// Trimmed returns a copy of f with surrounding whitespace removed.
func (f Form) Trimmed() Form {
	return Form{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		BirthDate: strings.TrimSpace(f.BirthDate),
		Email:     strings.TrimSpace(f.Email),
		Role:      strings.TrimSpace(f.Role),
		HireDate:  strings.TrimSpace(f.HireDate),
	}
}

// Value returns the raw value of the named field.
func (f Form) Value(field string) string {
	switch field {
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldBirthDate:
		return f.BirthDate
	case FieldEmail:
		return f.Email
	case FieldRole:
		return f.Role
	case FieldHireDate:
		return f.HireDate
	}
	return ""
}
