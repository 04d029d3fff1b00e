package models

// Phase is the state of the session state machine:
// Anonymous -> Authenticating -> Authenticated, and back to Anonymous on
// logout or token verification failure.
type Phase string

const (
	PhaseAnonymous      Phase = "anonymous"
	PhaseAuthenticating Phase = "authenticating"
	PhaseAuthenticated  Phase = "authenticated"
)

// Session is the value published by the session manager. Token and User are
// set only in PhaseAuthenticated.
type Session struct {
	Phase Phase
	Token string
	User  *User
}

// Anonymous is the empty identity.
func Anonymous() Session {
	return Session{Phase: PhaseAnonymous}
}

// Authenticated reports whether the session carries a verified identity.
func (s Session) Authenticated() bool {
	return s.Phase == PhaseAuthenticated && s.User != nil && s.Token != ""
}

// UserID returns the owner of the session or "" when anonymous.
func (s Session) UserID() string {
	if !s.Authenticated() {
		return ""
	}
	return s.User.ID
}
