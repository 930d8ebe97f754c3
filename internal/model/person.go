// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types of the staff registry:
// Person, Role and calendar Date.
package model

import "strings"

// Person is a registered staff member.
type Person struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate Date   `json:"birth_date"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	HireDate  Date   `json:"hire_date"`
}

// FullName returns the first and last name separated by a space.
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// NormalizeEmail lowercases and trims an email for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
