package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/abshirdev/finledger/internal/client/bills"
	"github.com/abshirdev/finledger/internal/client/models"
)

// Bills fetches and prints the recurring bills with the summary line.
func (a *App) Bills(ctx context.Context) error {
	list, err := a.bills.Fetch(ctx)
	if err != nil {
		return err
	}

	sum := a.bills.Summary()
	printlnFn(fmt.Sprintf("Monthly total: %.2f  Overdue: %d  Upcoming: %d",
		sum.TotalMonthly, sum.Overdue, sum.Upcoming))

	for _, b := range list {
		status := "unpaid"
		if b.IsPaid {
			status = "paid"
		}
		if !b.IsActive {
			status = "inactive"
		}
		printlnFn(fmt.Sprintf("%4d  %-20s %10.2f %s  due %-10s  %s",
			b.ID, b.Name, b.Amount, b.Currency, b.NextDueDate, status))
	}
	return nil
}

// PayBill pays the bill named by idArg. The listing updates optimistically
// and is reconciled against the server either way; a rejected payment prints
// the translated message.
func (a *App) PayBill(ctx context.Context, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		printlnFn("Usage: pay <id>")
		return nil
	}

	detail, err := a.bills.Pay(ctx, id)
	if err != nil {
		var payErr *bills.PaymentError
		if errors.As(err, &payErr) {
			printlnFn(payErr.Message)
			return nil
		}
		return err
	}

	if detail == "" {
		detail = "Bill paid!"
	}
	printlnFn(detail)
	return nil
}

// AddBill prompts for the bill form and creates it.
func (a *App) AddBill(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Bill name", os.Stdout)
	if err != nil {
		return err
	}
	accountArg, err := getSimpleText(a.reader, "Account id", os.Stdout)
	if err != nil {
		return err
	}
	account, err := strconv.ParseInt(accountArg, 10, 64)
	if err != nil {
		printlnFn("Account id must be a number")
		return nil
	}
	amountArg, err := getSimpleText(a.reader, "Amount", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(amountArg, 64)
	if err != nil {
		printlnFn("Amount must be a number")
		return nil
	}
	currency, err := getSimpleText(a.reader, "Currency code", os.Stdout)
	if err != nil {
		return err
	}
	frequency, err := getSimpleText(a.reader, "Frequency (Monthly/Weekly/Yearly)", os.Stdout)
	if err != nil {
		return err
	}
	if frequency == "" {
		frequency = models.FrequencyMonthly
	}
	dueDate, err := getSimpleText(a.reader, "Next due date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	bill, err := a.bills.Create(ctx, models.BillInput{
		Account:     account,
		Name:        name,
		Amount:      amount,
		Currency:    currency,
		Type:        models.TypeExpense,
		Frequency:   frequency,
		NextDueDate: dueDate,
		IsActive:    true,
	})
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Bill %d created", bill.ID))
	return nil
}
