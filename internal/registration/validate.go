// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package registration

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/olegiv/staffreg/internal/model"
)

// Validation message keys. They are translated at render time.
const (
	MsgRequired         = "validation.required"
	MsgInvalidDate      = "validation.invalid_date"
	MsgMinAge           = "validation.min_age"
	MsgInvalidEmail     = "validation.invalid_email"
	MsgEmailTaken       = "validation.email_taken"
	MsgInvalidRole      = "validation.invalid_role"
	MsgHireDateTooEarly = "validation.hire_date_too_early"
)

// MinAgeYears is the minimum age of a person, and the minimum gap
// between birth date and hire date.
const MinAgeYears = 18

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// FieldErrors maps a field name to a validation message key.
type FieldErrors map[string]string

// Has reports whether field has an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// ValidationError is returned when a submitted form fails validation.
type ValidationError struct {
	Fields FieldErrors
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Validate checks every field of f independently and returns the draft
// person built from it. today is the reference date for the age check and
// roster is used for email uniqueness. On failure the returned errors are
// non-empty and the person must be ignored.
func Validate(f Form, roster Roster, today model.Date) (model.Person, FieldErrors) {
	f = f.Trimmed()
	errs := make(FieldErrors)

	if f.FirstName == "" {
		errs[FieldFirstName] = MsgRequired
	}
	if f.LastName == "" {
		errs[FieldLastName] = MsgRequired
	}

	birth, birthOK := validateBirthDate(f.BirthDate, today, errs)
	hire := validateHireDate(f.HireDate, birth, birthOK, errs)

	switch {
	case f.Email == "":
		errs[FieldEmail] = MsgRequired
	case !emailPattern.MatchString(f.Email):
		errs[FieldEmail] = MsgInvalidEmail
	case roster.EmailTaken(f.Email):
		errs[FieldEmail] = MsgEmailTaken
	}

	role := model.Role(f.Role)
	if !role.IsValid() {
		errs[FieldRole] = MsgInvalidRole
	}

	if len(errs) > 0 {
		return model.Person{}, errs
	}

	return model.Person{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		BirthDate: birth,
		Email:     f.Email,
		Role:      role,
		HireDate:  hire,
	}, nil
}

// validateBirthDate parses the birth date and checks the minimum age.
// The boolean result reports whether the date parsed, regardless of age,
// so the hire date can still be checked against it.
func validateBirthDate(raw string, today model.Date, errs FieldErrors) (model.Date, bool) {
	if raw == "" {
		errs[FieldBirthDate] = MsgRequired
		return model.Date{}, false
	}
	birth, err := model.ParseDate(raw)
	if err != nil {
		errs[FieldBirthDate] = MsgInvalidDate
		return model.Date{}, false
	}
	if birth.After(today.AddYears(-MinAgeYears)) {
		errs[FieldBirthDate] = MsgMinAge
	}
	return birth, true
}

func validateHireDate(raw string, birth model.Date, birthOK bool, errs FieldErrors) model.Date {
	if raw == "" {
		errs[FieldHireDate] = MsgRequired
		return model.Date{}
	}
	hire, err := model.ParseDate(raw)
	if err != nil {
		errs[FieldHireDate] = MsgInvalidDate
		return model.Date{}
	}
	if birthOK && hire.Before(birth.AddYears(MinAgeYears)) {
		errs[FieldHireDate] = MsgHireDateTooEarly
	}
	return hire
}
