// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Role is the job position of a registered person.
type Role string

// Staff roles.
const (
	// RoleUnselected is the placeholder shown before a role is picked.
	// It is never valid for a registered person.
	RoleUnselected Role = "unselected"

	RoleDeveloper Role = "developer"
	RoleDesigner  Role = "designer"
	RoleManager   Role = "manager"
	RoleAnalyst   Role = "analyst"
)

// ValidRoles lists the selectable roles in display order.
var ValidRoles = []Role{RoleDeveloper, RoleDesigner, RoleManager, RoleAnalyst}

// IsValid reports whether r is one of ValidRoles.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
