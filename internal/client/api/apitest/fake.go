// Package apitest provides a hand-rolled fake api.Client for unit tests.
// Each method delegates to an optional function field and records the call,
// so tests only stub what they exercise.
package apitest

import (
	"context"
	"sync"

	"github.com/abshirdev/finledger/internal/client/api"
	"github.com/abshirdev/finledger/internal/client/models"
)

// Fake implements api.Client. Unset function fields return zero values.
type Fake struct {
	mu    sync.Mutex
	calls []string

	LoginFn                func(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	VerifyOTPFn            func(ctx context.Context, userID int64, code string) (*api.TokenResponse, error)
	ResendOTPFn            func(ctx context.Context, userID int64) error
	ResendVerificationFn   func(ctx context.Context, userID int64) error
	GoogleLoginFn          func(ctx context.Context, idToken, clientID string) (*api.OAuthResponse, error)
	RegisterFn             func(ctx context.Context, req api.RegisterRequest) (*api.OAuthResponse, error)
	CurrentUserFn          func(ctx context.Context) (*models.User, error)
	ResetPasswordFn        func(ctx context.Context, email string) error
	ResetPasswordConfirmFn func(ctx context.Context, uid, token, password string) error
	VerifyEmailFn          func(ctx context.Context, token string) (string, error)

	ListBillsFn  func(ctx context.Context) ([]models.Bill, error)
	CreateBillFn func(ctx context.Context, in models.BillInput) (*models.Bill, error)
	UpdateBillFn func(ctx context.Context, id int64, in models.BillInput) (*models.Bill, error)
	PayBillFn    func(ctx context.Context, id int64) (string, error)

	ListTransactionsFn   func(ctx context.Context, deleted bool) ([]models.Transaction, error)
	CreateTransactionFn  func(ctx context.Context, in models.TransactionInput) (*models.Transaction, error)
	DeleteTransactionFn  func(ctx context.Context, id int64) error
	RestoreTransactionFn func(ctx context.Context, id int64) error

	ListAccountsFn   func(ctx context.Context) ([]models.Account, error)
	ListCategoriesFn func(ctx context.Context) ([]models.Category, error)
	ListCurrenciesFn func(ctx context.Context) ([]models.Currency, error)
	ListBudgetsFn    func(ctx context.Context) ([]models.Budget, error)
}

var _ api.Client = (*Fake)(nil)

func (f *Fake) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

// Calls returns the method names invoked so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times the named method was invoked.
func (f *Fake) CallCount(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *Fake) Close() error { return nil }

func (f *Fake) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	f.record("Login")
	if f.LoginFn == nil {
		return &api.LoginResponse{}, nil
	}
	return f.LoginFn(ctx, req)
}

func (f *Fake) VerifyOTP(ctx context.Context, userID int64, code string) (*api.TokenResponse, error) {
	f.record("VerifyOTP")
	if f.VerifyOTPFn == nil {
		return &api.TokenResponse{}, nil
	}
	return f.VerifyOTPFn(ctx, userID, code)
}

func (f *Fake) ResendOTP(ctx context.Context, userID int64) error {
	f.record("ResendOTP")
	if f.ResendOTPFn == nil {
		return nil
	}
	return f.ResendOTPFn(ctx, userID)
}

func (f *Fake) ResendVerification(ctx context.Context, userID int64) error {
	f.record("ResendVerification")
	if f.ResendVerificationFn == nil {
		return nil
	}
	return f.ResendVerificationFn(ctx, userID)
}

func (f *Fake) GoogleLogin(ctx context.Context, idToken, clientID string) (*api.OAuthResponse, error) {
	f.record("GoogleLogin")
	if f.GoogleLoginFn == nil {
		return &api.OAuthResponse{}, nil
	}
	return f.GoogleLoginFn(ctx, idToken, clientID)
}

func (f *Fake) Register(ctx context.Context, req api.RegisterRequest) (*api.OAuthResponse, error) {
	f.record("Register")
	if f.RegisterFn == nil {
		return &api.OAuthResponse{}, nil
	}
	return f.RegisterFn(ctx, req)
}

func (f *Fake) CurrentUser(ctx context.Context) (*models.User, error) {
	f.record("CurrentUser")
	if f.CurrentUserFn == nil {
		return &models.User{}, nil
	}
	return f.CurrentUserFn(ctx)
}

func (f *Fake) ResetPassword(ctx context.Context, email string) error {
	f.record("ResetPassword")
	if f.ResetPasswordFn == nil {
		return nil
	}
	return f.ResetPasswordFn(ctx, email)
}

func (f *Fake) ResetPasswordConfirm(ctx context.Context, uid, token, password string) error {
	f.record("ResetPasswordConfirm")
	if f.ResetPasswordConfirmFn == nil {
		return nil
	}
	return f.ResetPasswordConfirmFn(ctx, uid, token, password)
}

func (f *Fake) VerifyEmail(ctx context.Context, token string) (string, error) {
	f.record("VerifyEmail")
	if f.VerifyEmailFn == nil {
		return "", nil
	}
	return f.VerifyEmailFn(ctx, token)
}

func (f *Fake) ListBills(ctx context.Context) ([]models.Bill, error) {
	f.record("ListBills")
	if f.ListBillsFn == nil {
		return nil, nil
	}
	return f.ListBillsFn(ctx)
}

func (f *Fake) CreateBill(ctx context.Context, in models.BillInput) (*models.Bill, error) {
	f.record("CreateBill")
	if f.CreateBillFn == nil {
		return &models.Bill{}, nil
	}
	return f.CreateBillFn(ctx, in)
}

func (f *Fake) UpdateBill(ctx context.Context, id int64, in models.BillInput) (*models.Bill, error) {
	f.record("UpdateBill")
	if f.UpdateBillFn == nil {
		return &models.Bill{}, nil
	}
	return f.UpdateBillFn(ctx, id, in)
}

func (f *Fake) PayBill(ctx context.Context, id int64) (string, error) {
	f.record("PayBill")
	if f.PayBillFn == nil {
		return "", nil
	}
	return f.PayBillFn(ctx, id)
}

func (f *Fake) ListTransactions(ctx context.Context, deleted bool) ([]models.Transaction, error) {
	f.record("ListTransactions")
	if f.ListTransactionsFn == nil {
		return nil, nil
	}
	return f.ListTransactionsFn(ctx, deleted)
}

func (f *Fake) CreateTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	f.record("CreateTransaction")
	if f.CreateTransactionFn == nil {
		return &models.Transaction{}, nil
	}
	return f.CreateTransactionFn(ctx, in)
}

func (f *Fake) DeleteTransaction(ctx context.Context, id int64) error {
	f.record("DeleteTransaction")
	if f.DeleteTransactionFn == nil {
		return nil
	}
	return f.DeleteTransactionFn(ctx, id)
}

func (f *Fake) RestoreTransaction(ctx context.Context, id int64) error {
	f.record("RestoreTransaction")
	if f.RestoreTransactionFn == nil {
		return nil
	}
	return f.RestoreTransactionFn(ctx, id)
}

func (f *Fake) ListAccounts(ctx context.Context) ([]models.Account, error) {
	f.record("ListAccounts")
	if f.ListAccountsFn == nil {
		return nil, nil
	}
	return f.ListAccountsFn(ctx)
}

func (f *Fake) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.record("ListCategories")
	if f.ListCategoriesFn == nil {
		return nil, nil
	}
	return f.ListCategoriesFn(ctx)
}

func (f *Fake) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	f.record("ListCurrencies")
	if f.ListCurrenciesFn == nil {
		return nil, nil
	}
	return f.ListCurrenciesFn(ctx)
}

func (f *Fake) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	f.record("ListBudgets")
	if f.ListBudgetsFn == nil {
		return nil, nil
	}
	return f.ListBudgetsFn(ctx)
}
