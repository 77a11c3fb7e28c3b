// Package routeguard resolves where a user must be sent given their
// authentication, verification and onboarding state. The web and mobile apps
// each carried their own copy of this redirect logic; this package is the
// single implementation both consume through the session endpoint.
//
// It is pure: no HTTP, no storage, no framework types.
package routeguard

import "strings"

// Destination paths understood by both clients.
const (
	PathLogin           = "/login"
	PathVerifyEmail     = "/verificar-email"
	PathCompleteProfile = "/completar-perfil"
	PathNotAuthorized   = "/nao-autorizado"
)

// State is the snapshot a guarded navigation is resolved against. It is
// re-derived on every navigation; nothing here is cached between renders.
type State struct {
	HasToken        bool
	EmailVerified   bool
	ProfileComplete bool
	Role            string
}

// Resolve returns the path the user must land on when requesting the given
// path. allowedRoles restricts the requested route to specific roles; empty
// means any authenticated, onboarded user may enter.
//
// Precedence: no token, then unverified e-mail, then incomplete profile, then
// role mismatch. Requesting the step the user is stuck on is never redirected
// away, otherwise the user could not finish it.
func Resolve(st State, requested string, allowedRoles ...string) string {
	if !st.HasToken {
		return PathLogin
	}
	if !st.EmailVerified && requested != PathVerifyEmail {
		return PathVerifyEmail
	}
	if st.EmailVerified && !st.ProfileComplete && requested != PathCompleteProfile {
		return PathCompleteProfile
	}
	if len(allowedRoles) > 0 && st.EmailVerified && st.ProfileComplete && !roleAllowed(st.Role, allowedRoles) {
		return PathNotAuthorized
	}
	return requested
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(role, a) {
			return true
		}
	}
	return false
}
