// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/staffreg/internal/registration"
)

// stateKey is the session key holding the serialized registration state.
const stateKey = "registration_state"

// StateStore loads and saves the registration state of the current session.
// The request context must have passed through the manager's LoadAndSave.
type StateStore struct {
	sm     *scs.SessionManager
	logger *slog.Logger
}

// NewStateStore creates a StateStore on top of sm.
func NewStateStore(sm *scs.SessionManager, logger *slog.Logger) *StateStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateStore{sm: sm, logger: logger}
}

// Load returns the state of the current session, or the initial state
// when the session holds none. Undecodable data is discarded.
func (s *StateStore) Load(ctx context.Context) registration.State {
	b := s.sm.GetBytes(ctx, stateKey)
	if len(b) == 0 {
		return registration.NewState()
	}

	var st registration.State
	if err := json.Unmarshal(b, &st); err != nil {
		s.logger.WarnContext(ctx, "discarding undecodable registration state", "error", err)
		s.sm.Remove(ctx, stateKey)
		return registration.NewState()
	}
	return st
}

// Save stores st in the current session.
func (s *StateStore) Save(ctx context.Context, st registration.State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding registration state: %w", err)
	}
	s.sm.Put(ctx, stateKey, b)
	return nil
}

// Reset destroys the current session, dropping the roster and the form.
func (s *StateStore) Reset(ctx context.Context) error {
	if err := s.sm.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}
