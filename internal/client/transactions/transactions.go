// Package transactions manages the ledger view: active and soft-deleted
// listings, confirm-first delete and restore, filtering, sorting, and CSV
// export.
//
// Delete and restore wait for the server before touching local state. A
// transaction vanishing from the list and then reappearing on a failed
// delete would be worse than a short wait, so no optimistic variant exists
// here.
package transactions

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/abshirdev/finledger/internal/client/api"
	"github.com/abshirdev/finledger/internal/client/models"
	"github.com/abshirdev/finledger/internal/client/mutate"
	"github.com/abshirdev/finledger/internal/logging"
)

// Filter narrows a listing. Zero values mean "no constraint".
type Filter struct {
	AccountID  int64
	CategoryID int64
	Type       string
	StartDate  string // inclusive, YYYY-MM-DD
	EndDate    string // inclusive, YYYY-MM-DD
	Search     string // case-insensitive, matches description, account and category names
}

// Sort keys for Apply.
const (
	SortByDate     = "date"
	SortByAmount   = "amount"
	SortByAccount  = "account"
	SortByCategory = "category"
)

// Sort orders a listing; Descending false means ascending.
type Sort struct {
	Key        string
	Descending bool
}

// Service caches the active and deleted listings.
type Service struct {
	mu      sync.RWMutex
	active  []models.Transaction
	deleted []models.Transaction

	client api.Client
	log    logging.Logger
}

func NewService(client api.Client, log logging.Logger) *Service {
	return &Service{client: client, log: log}
}

// Fetch reloads the active listing.
func (s *Service) Fetch(ctx context.Context) ([]models.Transaction, error) {
	list, err := s.client.ListTransactions(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	s.mu.Lock()
	s.active = list
	s.mu.Unlock()
	return list, nil
}

// FetchDeleted reloads the soft-deleted listing.
func (s *Service) FetchDeleted(ctx context.Context) ([]models.Transaction, error) {
	list, err := s.client.ListTransactions(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("fetch deleted transactions: %w", err)
	}
	s.mu.Lock()
	s.deleted = list
	s.mu.Unlock()
	return list, nil
}

// Active returns a copy of the cached active listing.
func (s *Service) Active() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Transaction(nil), s.active...)
}

// Deleted returns a copy of the cached deleted listing.
func (s *Service) Deleted() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Transaction(nil), s.deleted...)
}

// Create posts a new transaction and refetches the active listing.
func (s *Service) Create(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	tx, err := s.client.CreateTransaction(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	if _, err := s.Fetch(ctx); err != nil {
		return tx, err
	}
	return tx, nil
}

// Delete soft-deletes a transaction. The cache changes only after the server
// confirms.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := mutate.ConfirmThenApply(ctx, mutate.ConfirmOp{
		Call: func(ctx context.Context) error {
			return s.client.DeleteTransaction(ctx, id)
		},
		Apply: func() {
			s.mu.Lock()
			s.active = removeByID(s.active, id)
			s.mu.Unlock()
		},
	})
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// Restore undeletes a transaction. The cache changes only after the server
// confirms.
func (s *Service) Restore(ctx context.Context, id int64) error {
	err := mutate.ConfirmThenApply(ctx, mutate.ConfirmOp{
		Call: func(ctx context.Context) error {
			return s.client.RestoreTransaction(ctx, id)
		},
		Apply: func() {
			s.mu.Lock()
			s.deleted = removeByID(s.deleted, id)
			s.mu.Unlock()
		},
	})
	if err != nil {
		return fmt.Errorf("restore transaction %d: %w", id, err)
	}
	return nil
}

func removeByID(list []models.Transaction, id int64) []models.Transaction {
	out := list[:0]
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Apply filters and sorts a listing without mutating it.
func Apply(list []models.Transaction, f Filter, s Sort) []models.Transaction {
	out := make([]models.Transaction, 0, len(list))
	for _, t := range list {
		if matches(t, f) {
			out = append(out, t)
		}
	}
	sortList(out, s)
	return out
}

func matches(t models.Transaction, f Filter) bool {
	if f.AccountID != 0 && (t.Account == nil || t.Account.ID != f.AccountID) {
		return false
	}
	if f.CategoryID != 0 && (t.Category == nil || t.Category.ID != f.CategoryID) {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	// dates are ISO strings, so lexicographic comparison is chronological
	if f.StartDate != "" && t.TransactionDate < f.StartDate {
		return false
	}
	if f.EndDate != "" && t.TransactionDate > f.EndDate {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		hay := strings.ToLower(t.Description)
		if t.Account != nil {
			hay += " " + strings.ToLower(t.Account.Name)
		}
		if t.Category != nil {
			hay += " " + strings.ToLower(t.Category.Name)
		}
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

func sortList(list []models.Transaction, s Sort) {
	if s.Key == "" {
		return
	}
	less := func(a, b models.Transaction) bool {
		switch s.Key {
		case SortByAmount:
			return a.Amount < b.Amount
		case SortByAccount:
			return accountName(a) < accountName(b)
		case SortByCategory:
			return categoryName(a) < categoryName(b)
		default:
			return a.TransactionDate < b.TransactionDate
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if s.Descending {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

func accountName(t models.Transaction) string {
	if t.Account == nil {
		return ""
	}
	return t.Account.Name
}

func categoryName(t models.Transaction) string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Name
}

// ExportCSV writes a listing with the header row
// Date, Description, Category, Account, Amount, Type, Currency.
func ExportCSV(w io.Writer, list []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Description", "Category", "Account", "Amount", "Type", "Currency"}); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	for _, t := range list {
		rec := []string{
			t.TransactionDate,
			t.Description,
			categoryName(t),
			accountName(t),
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Type,
			t.Currency,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
