package admin

import "time"

// SessionTTL bounds how long a login is honoured.
const SessionTTL = 24 * time.Hour

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Session is the admin's authentication state. The zero value is logged out.
type Session struct {
	state     State
	startedAt time.Time
}

// RestoreSession rebuilds a logged-in session from its stored start time,
// e.g. one read back from a cookie. Gate.Check still decides whether it is
// honoured.
func RestoreSession(startedAt time.Time) *Session {
	return &Session{state: LoggedIn, startedAt: startedAt}
}

func (s *Session) State() State { return s.state }

func (s *Session) StartedAt() time.Time { return s.startedAt }

func (s *Session) IsLoggedIn() bool { return s.state == LoggedIn }

// ExpiresAt is the instant after which Check forces a logout.
func (s *Session) ExpiresAt() time.Time {
	if s.state != LoggedIn {
		return time.Time{}
	}
	return s.startedAt.Add(SessionTTL)
}

func (s *Session) login(now time.Time) {
	s.state = LoggedIn
	s.startedAt = now
}

// Logout clears the session unconditionally.
func (s *Session) Logout() {
	s.state = LoggedOut
	s.startedAt = time.Time{}
}
