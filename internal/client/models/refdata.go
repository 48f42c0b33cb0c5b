package models

// Account is a money account (wallet, bank, mobile money).
type Account struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// Category labels transactions and bills.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Currency is a selectable currency code.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Budget is a per-category monthly budget with optional rollover.
type Budget struct {
	ID              int64   `json:"id"`
	Category        int64   `json:"category"`
	CategoryName    string  `json:"category_name"`
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	BudgetAmount    float64 `json:"budget_amount"`
	TotalSpent      float64 `json:"total_spent"`
	TotalRemaining  float64 `json:"total_remaining"`
	Currency        string  `json:"currency"`
	RolloverEnabled bool    `json:"rollover_enabled"`
}
