// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package session

// GateDecision is the route guard's verdict for a protected screen.
type GateDecision int

const (
	// GatePending means the session is still resolving; show a
	// placeholder and do not redirect yet.
	GatePending GateDecision = iota
	// GateRedirectLogin means the viewer is anonymous; send them to
	// the login screen.
	GateRedirectLogin
	// GateAllow means the viewer is authenticated; render.
	GateAllow
)

// Gate returns the guard decision for the current session state.
// Pending while loading — redirecting before the initial check
// resolves would bounce already-signed-in users through the login
// screen on every start.
func (s *Session) Gate() GateDecision {
	switch s.State() {
	case StateLoading:
		return GatePending
	case StateAuthenticated:
		return GateAllow
	default:
		return GateRedirectLogin
	}
}
