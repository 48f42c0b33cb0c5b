package models

// Transaction types used by /transactions/.
const (
	TypeIncome   = "Income"
	TypeExpense  = "Expense"
	TypeTransfer = "Transfer"
)

// Transaction is a ledger entry. Deleted entries are soft-deleted server-side
// and only appear when listing with ?deleted=true.
type Transaction struct {
	ID              int64     `json:"id"`
	Account         *Account  `json:"account"`
	Category        *Category `json:"category"`
	Type            string    `json:"type"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	Description     string    `json:"description"`
	TransactionDate string    `json:"transaction_date"`
}

// TransactionInput is the write shape for creating a transaction.
type TransactionInput struct {
	Account         int64   `json:"account"`
	Category        int64   `json:"category,omitempty"`
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description,omitempty"`
	TransactionDate string  `json:"transaction_date"`
}
