package api

import (
	"context"

	"github.com/abshirdev/finledger/internal/client/models"
)

// LoginRequest carries password-login credentials. Username accepts either
// the username or the registered email.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the polymorphic answer of POST /users/login/.
// Exactly one of the three outcomes applies, in this precedence:
// OTP challenge, verification required, or issued token.
type LoginResponse struct {
	OTPRequired          bool   `json:"otp_required"`
	VerificationRequired bool   `json:"verification_required"`
	Access               string `json:"access"`
	Refresh              string `json:"refresh"`
	Message              string `json:"message"`
	Detail               string `json:"detail"`
	UserID               int64  `json:"user_id"`
}

// TokenResponse is returned by POST /users/verify-otp/.
type TokenResponse struct {
	Access  string `json:"access"`
	Message string `json:"message"`
}

// OAuthResponse is returned by POST /users/google-oauth/ and
// POST /users/register/: a token pair plus an embedded user fragment.
type OAuthResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *models.User `json:"user"`
}

// RegisterRequest carries the self-registration form. The validate tags are
// enforced client-side before any network call.
type RegisterRequest struct {
	Username          string `json:"username" validate:"required,min=3"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
	PreferredCurrency string `json:"preferred_currency" validate:"required,len=3"`
}

// Client is the transport-agnostic contract to the finance backend.
// All methods honor context cancellation and map failures to *Error or to
// the package sentinels (see errors.go).
type Client interface {
	Close() error

	// Auth.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	VerifyOTP(ctx context.Context, userID int64, code string) (*TokenResponse, error)
	ResendOTP(ctx context.Context, userID int64) error
	ResendVerification(ctx context.Context, userID int64) error
	GoogleLogin(ctx context.Context, idToken, clientID string) (*OAuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*OAuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	ResetPassword(ctx context.Context, email string) error
	ResetPasswordConfirm(ctx context.Context, uid, token, password string) error
	VerifyEmail(ctx context.Context, token string) (string, error)

	// Recurring bills.
	ListBills(ctx context.Context) ([]models.Bill, error)
	CreateBill(ctx context.Context, in models.BillInput) (*models.Bill, error)
	UpdateBill(ctx context.Context, id int64, in models.BillInput) (*models.Bill, error)
	PayBill(ctx context.Context, id int64) (string, error)

	// Transactions.
	ListTransactions(ctx context.Context, deleted bool) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	RestoreTransaction(ctx context.Context, id int64) error

	// Reference data.
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
	ListBudgets(ctx context.Context) ([]models.Budget, error)
}
