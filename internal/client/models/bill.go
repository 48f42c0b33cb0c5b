package models

// BillFrequency values accepted by the recurring-bills endpoint.
const (
	FrequencyMonthly = "Monthly"
	FrequencyWeekly  = "Weekly"
	FrequencyYearly  = "Yearly"
)

// Bill is a recurring bill as served by /recurring-bills/.
// Dates are "YYYY-MM-DD" strings on the wire; NextDueDate may be empty.
type Bill struct {
	ID          int64     `json:"id"`
	Account     *Account  `json:"account"`
	Category    *Category `json:"category"`
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Type        string    `json:"type"`
	Frequency   string    `json:"frequency"`
	StartDate   string    `json:"start_date"`
	NextDueDate string    `json:"next_due_date"`
	EndDate     string    `json:"end_date,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsPaid      bool      `json:"is_paid"`
}

// BillInput is the write shape for creating or updating a bill: account and
// category travel as bare ids, not nested objects.
type BillInput struct {
	Account     int64   `json:"account"`
	Category    int64   `json:"category,omitempty"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Type        string  `json:"type"`
	Frequency   string  `json:"frequency"`
	StartDate   string  `json:"start_date,omitempty"`
	NextDueDate string  `json:"next_due_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	IsActive    bool    `json:"is_active"`
}
