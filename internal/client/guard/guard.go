// Package guard gates access to screens that require an authenticated user.
package guard

import "github.com/abshirdev/finledger/internal/client/session"

// Decision is the outcome of evaluating the session against a protected
// screen.
type Decision int

const (
	// Pending means the initial restore has not finished; hold the screen.
	Pending Decision = iota
	// RedirectLogin means no user is signed in; send them to login.
	RedirectLogin
	// Allow admits the user.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case RedirectLogin:
		return "redirect-login"
	default:
		return "allow"
	}
}

// Evaluate decides from the live session state. It is called before every
// protected command, never cached, so a logout between commands takes effect
// immediately.
func Evaluate(s *session.Store) Decision {
	if s.Loading() {
		return Pending
	}
	if s.User() == nil {
		return RedirectLogin
	}
	return Allow
}
