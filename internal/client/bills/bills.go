// Package bills manages the recurring-bills view: a cached listing with a
// derived summary, and the optimistic pay flow.
//
// Paying is the one mutation rendered before the server answers: the bill is
// marked paid locally, the payment is posted, and the listing is refetched
// whether the post succeeded or failed. A rejected payment is therefore
// rolled back by the refetch, not by an inverse patch.
package bills

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abshirdev/finledger/internal/client/api"
	"github.com/abshirdev/finledger/internal/client/models"
	"github.com/abshirdev/finledger/internal/client/mutate"
	"github.com/abshirdev/finledger/internal/logging"
)

// Summary is derived from the cached listing on every change.
// TotalMonthly sums all bill amounts; Overdue and Upcoming count active,
// unpaid bills with a due date on either side of now.
type Summary struct {
	TotalMonthly float64
	Overdue      int
	Upcoming     int
}

// The backend emits payment-validation messages in Somali. They are mapped
// to English here, on the client, so an unknown message still surfaces
// verbatim rather than being swallowed.
var paymentTranslations = map[string]string{
	"Account-kaagu waa faaruq yahay. Fadlan lacag ku shubo si aad biilka u bixiso.": "Your account has insufficient funds. Please deposit money to pay the bill.",
	"Lacagta account-ka kuma filna bixinta biilka.":                                 "Your account balance is not enough to pay this bill.",
	"Bill already paid":                                                            "This bill has already been paid.",
}

func translatePayment(msg string) string {
	if t, ok := paymentTranslations[msg]; ok {
		return t
	}
	return msg
}

// PaymentError is a rejected bill payment with a displayable message.
// RawMessage keeps the untranslated server text for diagnostics.
type PaymentError struct {
	BillID     int64
	Message    string
	RawMessage string

	cause error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("pay bill %d: %s", e.BillID, e.Message)
}

func (e *PaymentError) Unwrap() error { return e.cause }

// Service holds the cached bill listing and its summary.
type Service struct {
	mu      sync.RWMutex
	bills   []models.Bill
	summary Summary

	client api.Client
	log    logging.Logger
	now    func() time.Time
}

func NewService(client api.Client, log logging.Logger) *Service {
	return &Service{client: client, log: log, now: time.Now}
}

// Fetch reloads the listing from the server and recomputes the summary.
func (s *Service) Fetch(ctx context.Context) ([]models.Bill, error) {
	list, err := s.client.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch bills: %w", err)
	}
	s.mu.Lock()
	s.bills = list
	s.summary = s.computeSummary(list)
	s.mu.Unlock()
	return list, nil
}

// Bills returns a copy of the cached listing.
func (s *Service) Bills() []models.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Bill(nil), s.bills...)
}

// Summary returns the summary derived from the cached listing.
func (s *Service) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *Service) computeSummary(list []models.Bill) Summary {
	today := s.now()
	var sum Summary
	for _, b := range list {
		sum.TotalMonthly += b.Amount
		if !b.IsActive || b.IsPaid || b.NextDueDate == "" {
			continue
		}
		due, err := time.Parse("2006-01-02", b.NextDueDate)
		if err != nil {
			continue
		}
		if due.Before(today) {
			sum.Overdue++
		} else {
			sum.Upcoming++
		}
	}
	return sum
}

// Create posts a new bill and refetches the listing.
func (s *Service) Create(ctx context.Context, in models.BillInput) (*models.Bill, error) {
	bill, err := s.client.CreateBill(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	if _, err := s.Fetch(ctx); err != nil {
		return bill, err
	}
	return bill, nil
}

// Update replaces an existing bill and refetches the listing.
func (s *Service) Update(ctx context.Context, id int64, in models.BillInput) (*models.Bill, error) {
	bill, err := s.client.UpdateBill(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update bill %d: %w", id, err)
	}
	if _, err := s.Fetch(ctx); err != nil {
		return bill, err
	}
	return bill, nil
}

// Pay marks the bill paid locally, posts the payment, and refetches the
// listing regardless of outcome. A rejection whose payload carries a detail
// message is returned as *PaymentError with the message translated.
func (s *Service) Pay(ctx context.Context, id int64) (string, error) {
	var (
		detail  string
		callErr error
	)

	err := mutate.OptimisticReconcile(ctx, mutate.OptimisticOp{
		Optimistic: func() { s.markPaid(id) },
		Call: func(ctx context.Context) error {
			d, err := s.client.PayBill(ctx, id)
			detail = d
			callErr = err
			return err
		},
		Reconcile: func(ctx context.Context) error {
			_, err := s.Fetch(ctx)
			return err
		},
	})
	if err != nil {
		// only the payment's own rejection carries a displayable detail; a
		// failed reconcile refetch must not be dressed up as one
		if apiErr, ok := api.AsError(callErr); ok && apiErr.Detail != "" {
			s.log.Info(ctx, "bill payment rejected", "bill_id", id, "detail", apiErr.Detail)
			return "", &PaymentError{
				BillID:     id,
				Message:    translatePayment(apiErr.Detail),
				RawMessage: apiErr.Detail,
				cause:      err,
			}
		}
		return "", fmt.Errorf("pay bill %d: %w", id, err)
	}
	return detail, nil
}

func (s *Service) markPaid(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bills {
		if s.bills[i].ID == id {
			s.bills[i].IsPaid = true
		}
	}
	s.summary = s.computeSummary(s.bills)
}
