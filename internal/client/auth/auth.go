// Package auth implements the client-side authentication state machine:
// password login with OTP and email-verification branches, Google OAuth,
// registration, logout, and the resend/reset side-effect operations.
//
// Every operation both records a user-visible message in the session error
// slot and returns the original failure, so callers can branch on the typed
// error (errors.Is / errors.As) while screens display the slot passively.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/abshirdev/finledger/internal/client/api"
	"github.com/abshirdev/finledger/internal/client/models"
	"github.com/abshirdev/finledger/internal/client/session"
	"github.com/abshirdev/finledger/internal/client/tokenstore"
	"github.com/abshirdev/finledger/internal/logging"
)

var (
	// ErrEmailNotVerified marks a Google OAuth 403: the account exists but
	// its email is unverified. Distinct from bad credentials.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrResendCooldown is returned when a resend is requested before the
	// client-side cooldown elapsed. Pure UX pacing; the server enforces its
	// own limit with 429 regardless.
	ErrResendCooldown = errors.New("resend on cooldown")
)

// Generic fallbacks shown when the server provides no detail message.
const (
	msgLoginFailed        = "Login failed"
	msgOTPFailed          = "OTP verification failed"
	msgResendOTPFailed    = "Failed to resend OTP"
	msgResendVerifyFailed = "Failed to resend verification email"
	msgGoogleFailed       = "Google login failed"
	msgGoogleUnverified   = "Please verify your email."
	msgRegisterFailed     = "Registration failed"
	msgResetFailed        = "Reset request failed"
	msgVerifyEmailFailed  = "Email verification failed"
)

// LoginResult tells the caller which way a login resolved so it can route:
// to the OTP prompt, to the verification waiting screen, or straight in.
type LoginResult struct {
	OTPRequired          bool
	VerificationRequired bool
	UserID               int64
	Message              string
}

// Service orchestrates auth operations against the API, mutating the
// session store and the persisted token. It is the only writer of both.
type Service struct {
	client   api.Client
	tokens   tokenstore.Store
	sess     *session.Store
	log      logging.Logger
	validate *validator.Validate

	googleClientID string
	resendOTP      *rate.Limiter
	resendVerify   *rate.Limiter
}

// NewService wires the state machine. resendCooldown throttles the resend
// operations client-side; zero disables the throttle.
func NewService(client api.Client, tokens tokenstore.Store, sess *session.Store,
	googleClientID string, resendCooldown time.Duration, log logging.Logger) *Service {

	newLimiter := func() *rate.Limiter {
		if resendCooldown <= 0 {
			return rate.NewLimiter(rate.Inf, 1)
		}
		return rate.NewLimiter(rate.Every(resendCooldown), 1)
	}

	return &Service{
		client:         client,
		tokens:         tokens,
		sess:           sess,
		log:            log,
		validate:       validator.New(),
		googleClientID: googleClientID,
		resendOTP:      newLimiter(),
		resendVerify:   newLimiter(),
	}
}

// errMsg extracts the server detail from err, falling back to err's own text
// and finally to the given generic message.
func errMsg(err error, fallback string) string {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.Message(fallback)
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}

// authenticate persists the issued token and installs the canonical user
// record fetched from /users/me/. The refetch is deliberate: the server copy
// is always preferred over any user fragment embedded in an auth response.
func (s *Service) authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if err := s.tokens.Save(ctx, accessToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	s.sess.SetUser(user)
	return user, nil
}

// Login attempts a password login. The response resolves in this precedence:
// OTP challenge, verification required, issued token. Failure payloads that
// themselves carry verification_required take the verification branch.
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (*LoginResult, error) {
	s.sess.ClearError()

	resp, err := s.client.Login(ctx, api.LoginRequest{Username: usernameOrEmail, Password: password})
	if err != nil {
		if apiErr, ok := api.AsError(err); ok && apiErr.VerificationRequired {
			s.sess.SetOTPPending(&session.OTPChallenge{UserID: apiErr.UserID})
			s.sess.SetError(apiErr.Message(msgLoginFailed))
		} else {
			s.sess.SetError(errMsg(err, msgLoginFailed))
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	switch {
	case resp.OTPRequired:
		s.sess.SetOTPPending(&session.OTPChallenge{UserID: resp.UserID})
		return &LoginResult{OTPRequired: true, UserID: resp.UserID}, nil

	case resp.VerificationRequired:
		s.sess.SetOTPPending(&session.OTPChallenge{UserID: resp.UserID})
		s.sess.SetError(resp.Detail)
		return &LoginResult{VerificationRequired: true, UserID: resp.UserID}, nil

	default:
		if _, err := s.authenticate(ctx, resp.Access); err != nil {
			s.sess.SetError(errMsg(err, msgLoginFailed))
			return nil, fmt.Errorf("login: %w", err)
		}
		return &LoginResult{Message: resp.Message}, nil
	}
}

// VerifyOTP resolves a pending challenge. On success the session becomes
// authenticated and the challenge clears; on failure the challenge stays
// pending so the user can retry or resend.
func (s *Service) VerifyOTP(ctx context.Context, userID int64, code string) (string, error) {
	resp, err := s.client.VerifyOTP(ctx, userID, code)
	if err != nil {
		s.sess.SetError(errMsg(err, msgOTPFailed))
		return "", fmt.Errorf("verify otp: %w", err)
	}

	if _, err := s.authenticate(ctx, resp.Access); err != nil {
		s.sess.SetError(errMsg(err, msgOTPFailed))
		return "", fmt.Errorf("verify otp: %w", err)
	}
	return resp.Message, nil
}

// ResendOTP asks the server to dispatch a fresh code. State is unchanged
// either way; a server 429 or the local cooldown surface as errors for the
// caller to display.
func (s *Service) ResendOTP(ctx context.Context, userID int64) error {
	if !s.resendOTP.Allow() {
		return ErrResendCooldown
	}
	if err := s.client.ResendOTP(ctx, userID); err != nil {
		msg := errMsg(err, msgResendOTPFailed)
		if api.IsRateLimited(err) {
			s.log.Info(ctx, "otp resend rate limited", "user_id", userID)
		}
		s.sess.SetError(msg)
		return fmt.Errorf("resend otp: %w", err)
	}
	return nil
}

// ResendVerification re-sends the account verification email.
func (s *Service) ResendVerification(ctx context.Context, userID int64) error {
	if !s.resendVerify.Allow() {
		return ErrResendCooldown
	}
	if err := s.client.ResendVerification(ctx, userID); err != nil {
		s.sess.SetError(errMsg(err, msgResendVerifyFailed))
		return fmt.Errorf("resend verification: %w", err)
	}
	return nil
}

// LoginWithGoogle exchanges a Google ID token for a session. A 403 means
// the Google account's email is not verified; the session stays anonymous
// and the returned error matches ErrEmailNotVerified.
func (s *Service) LoginWithGoogle(ctx context.Context, idToken string) (*models.User, error) {
	s.sess.ClearError()

	resp, err := s.client.GoogleLogin(ctx, idToken, s.googleClientID)
	if err != nil {
		if api.IsForbidden(err) {
			s.sess.SetError(errMsg(err, msgGoogleUnverified))
			return nil, fmt.Errorf("google login: %w: %w", ErrEmailNotVerified, err)
		}
		s.sess.SetError(errMsg(err, msgGoogleFailed))
		return nil, fmt.Errorf("google login: %w", err)
	}

	user, err := s.authenticate(ctx, resp.Access)
	if err != nil {
		s.sess.SetError(errMsg(err, msgGoogleFailed))
		return nil, fmt.Errorf("google login: %w", err)
	}
	return user, nil
}

// Register creates an account and signs in immediately: registration returns
// a usable token even before email verification. Verification status is
// informational here; the caller is responsible for steering unverified
// users to the waiting screen.
func (s *Service) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	s.sess.ClearError()

	if err := s.validate.Struct(req); err != nil {
		s.sess.SetError(msgRegisterFailed)
		return nil, fmt.Errorf("register: %w", err)
	}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		s.sess.SetError(errMsg(err, msgRegisterFailed))
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := s.authenticate(ctx, resp.Access)
	if err != nil {
		s.sess.SetError(errMsg(err, msgRegisterFailed))
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Logout drops the session unconditionally from any state: persisted token
// cleared, user and challenge forgotten. No network call is made.
func (s *Service) Logout(ctx context.Context) error {
	s.sess.Reset()
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear persisted token on logout", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ResetPassword requests a password-reset email.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	if err := s.client.ResetPassword(ctx, email); err != nil {
		s.sess.SetError(errMsg(err, msgResetFailed))
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// ResetPasswordConfirm completes a reset with the emailed uid/token pair.
func (s *Service) ResetPasswordConfirm(ctx context.Context, uid, token, password string) error {
	if err := s.client.ResetPasswordConfirm(ctx, uid, token, password); err != nil {
		s.sess.SetError(errMsg(err, msgResetFailed))
		return fmt.Errorf("reset password confirm: %w", err)
	}
	return nil
}

// VerifyEmail redeems an email-verification token and returns the server's
// confirmation message.
func (s *Service) VerifyEmail(ctx context.Context, token string) (string, error) {
	msg, err := s.client.VerifyEmail(ctx, token)
	if err != nil {
		s.sess.SetError(errMsg(err, msgVerifyEmailFailed))
		return "", fmt.Errorf("verify email: %w", err)
	}
	return msg, nil
}
