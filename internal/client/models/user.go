// Package models defines client-side data models mirroring the REST API's
// JSON payloads.
package models

// User is the canonical account record returned by GET /users/me/.
type User struct {
	ID                int64   `json:"id"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Phone             string  `json:"phone"`
	IsVerified        bool    `json:"is_verified"`
	PreferredCurrency string  `json:"preferred_currency"`
	TwoFactorEnabled  bool    `json:"two_factor_enabled"`
	MonthlyIncomeEst  float64 `json:"monthly_income_est"`
	SavingsGoal       float64 `json:"savings_goal"`
}
