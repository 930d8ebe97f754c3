// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the registration page.
	RouteRoot = "/"
	// RouteStaff receives form submissions.
	RouteStaff = "/staff"
	// RouteStaffConfirm commits the previewed draft.
	RouteStaffConfirm = RouteStaff + "/confirm"
	// RouteStaffCancel discards the previewed draft.
	RouteStaffCancel = RouteStaff + "/cancel"
	// RouteStaffID addresses a roster entry.
	RouteStaffID = RouteStaff + "/{id}"
	// RouteStaffIDDelete deletes a roster entry from an HTML form.
	RouteStaffIDDelete = RouteStaffID + "/delete"
	// RouteStaffJSON is the read-only roster feed.
	RouteStaffJSON = "/staff.json"
	// RouteSessionReset starts over with an empty session.
	RouteSessionReset = "/session/reset"

	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
)

// Flash message types understood by the templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// pageIndex is the template rendered for the registration page.
const pageIndex = "index"
