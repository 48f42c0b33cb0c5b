package cli

import (
	"context"
	"fmt"
)

// Accounts prints the user's accounts with balances.
func (a *App) Accounts(ctx context.Context) error {
	list, err := a.client.ListAccounts(ctx)
	if err != nil {
		return err
	}
	for _, acc := range list {
		printlnFn(fmt.Sprintf("%4d  %-20s %-10s %12.2f %s", acc.ID, acc.Name, acc.Type, acc.Balance, acc.Currency))
	}
	return nil
}

// Categories prints the available categories.
func (a *App) Categories(ctx context.Context) error {
	list, err := a.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range list {
		printlnFn(fmt.Sprintf("%4d  %-20s %s", c.ID, c.Name, c.Type))
	}
	return nil
}

// Currencies prints the selectable currency codes.
func (a *App) Currencies(ctx context.Context) error {
	list, err := a.client.ListCurrencies(ctx)
	if err != nil {
		return err
	}
	for _, c := range list {
		printlnFn(fmt.Sprintf("%-5s %s", c.Code, c.Name))
	}
	return nil
}

// Budgets prints the monthly budgets with spent and remaining amounts.
func (a *App) Budgets(ctx context.Context) error {
	list, err := a.client.ListBudgets(ctx)
	if err != nil {
		return err
	}
	for _, b := range list {
		printlnFn(fmt.Sprintf("%4d  %-15s %02d/%d  budget %10.2f  spent %10.2f  left %10.2f %s",
			b.ID, b.CategoryName, b.Month, b.Year, b.BudgetAmount, b.TotalSpent, b.TotalRemaining, b.Currency))
	}
	return nil
}
