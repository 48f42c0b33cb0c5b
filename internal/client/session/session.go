// Package session holds the client's authenticated-session state: the
// current user, the initial-restore loading flag, the last auth error, and
// an in-progress OTP challenge.
//
// The store is an explicit, injected object so tests can construct isolated
// instances; nothing in this package is process-global. Only the auth
// service mutates it.
package session

import (
	"context"
	"sync"

	"github.com/abshirdev/finledger/internal/client/api"
	"github.com/abshirdev/finledger/internal/client/models"
	"github.com/abshirdev/finledger/internal/client/tokenstore"
	"github.com/abshirdev/finledger/internal/logging"
)

// OTPChallenge records a login attempt that was challenged with a one-time
// code and not yet resolved.
type OTPChallenge struct {
	UserID int64
}

// Store is the session state shared by the auth service and the route guard.
//
// Invariants:
//   - a non-nil OTP challenge implies no authenticated user;
//   - loading is true only until the initial Restore completes.
type Store struct {
	mu         sync.RWMutex
	user       *models.User
	loading    bool
	err        string
	otpPending *OTPChallenge

	client api.Client
	tokens tokenstore.Store
	log    logging.Logger
}

// NewStore creates an empty session in the loading state; call Restore once
// at application start to resolve it.
func NewStore(client api.Client, tokens tokenstore.Store, log logging.Logger) *Store {
	return &Store{
		loading: true,
		client:  client,
		tokens:  tokens,
		log:     log,
	}
}

// Restore attempts to revive a previous session from the persisted token.
//
// No token: completes anonymous. Token present: validates it against
// GET /users/me/; any failure clears the token and downgrades to anonymous
// silently, since an expired token is indistinguishable from "never logged
// in" and should not alarm the user on startup. Always ends with
// loading=false. Safe to call repeatedly; each call behaves the same.
func (s *Store) Restore(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "token load failed, treating as anonymous", "error", err)
		return
	}
	if token == "" {
		return
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.log.Info(ctx, "persisted token rejected, clearing", "error", err)
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.log.Warn(ctx, "failed to clear rejected token", "error", clearErr)
		}
		s.SetUser(nil)
		return
	}

	s.SetUser(user)
	s.log.Info(ctx, "session restored", "user_id", user.ID)
}

// User returns the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether the initial restore attempt is still in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the most recent failed auth operation, or "".
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// OTPPending returns the unresolved OTP challenge, or nil.
func (s *Store) OTPPending() *OTPChallenge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.otpPending
}

// SetUser installs the authenticated user. A non-nil user resolves any
// pending OTP challenge, keeping the challenge/user exclusion invariant.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	if user != nil {
		s.otpPending = nil
	}
}

// SetOTPPending records an unresolved challenge; the user slot must be (and
// stays) empty until the challenge resolves.
func (s *Store) SetOTPPending(c *OTPChallenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otpPending = c
	if c != nil {
		s.user = nil
	}
}

// SetError records a user-visible auth error message.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

// ClearError empties the error slot; called at the start of auth operations.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Reset returns the session to the anonymous state: no user, no challenge,
// no error. The persisted token is the auth service's responsibility.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.otpPending = nil
	s.err = ""
}
