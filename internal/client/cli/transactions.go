package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/abshirdev/finledger/internal/client/models"
	"github.com/abshirdev/finledger/internal/client/transactions"
)

func printTxs(list []models.Transaction) {
	for _, tx := range list {
		account := ""
		if tx.Account != nil {
			account = tx.Account.Name
		}
		category := ""
		if tx.Category != nil {
			category = tx.Category.Name
		}
		printlnFn(fmt.Sprintf("%4d  %-10s %-8s %10.2f %s  %-15s %-12s %s",
			tx.ID, tx.TransactionDate, tx.Type, tx.Amount, tx.Currency, account, category, tx.Description))
	}
}

// Transactions fetches and prints the active listing, newest first.
func (a *App) Transactions(ctx context.Context) error {
	list, err := a.txs.Fetch(ctx)
	if err != nil {
		return err
	}
	printTxs(transactions.Apply(list, transactions.Filter{}, transactions.Sort{Key: transactions.SortByDate, Descending: true}))
	return nil
}

// Trash fetches and prints the soft-deleted listing.
func (a *App) Trash(ctx context.Context) error {
	list, err := a.txs.FetchDeleted(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("Trash is empty")
		return nil
	}
	printTxs(list)
	return nil
}

// AddTransaction prompts for the transaction form and creates it.
func (a *App) AddTransaction(ctx context.Context) error {
	accountArg, err := getSimpleText(a.reader, "Account id", os.Stdout)
	if err != nil {
		return err
	}
	account, err := strconv.ParseInt(accountArg, 10, 64)
	if err != nil {
		printlnFn("Account id must be a number")
		return nil
	}
	txType, err := getSimpleText(a.reader, "Type (Income/Expense/Transfer)", os.Stdout)
	if err != nil {
		return err
	}
	if txType == "" {
		txType = models.TypeExpense
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
	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	tx, err := a.txs.Create(ctx, models.TransactionInput{
		Account:         account,
		Type:            txType,
		Amount:          amount,
		Currency:        currency,
		TransactionDate: date,
		Description:     description,
	})
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Transaction %d created", tx.ID))
	return nil
}

// DeleteTransaction soft-deletes the transaction named by idArg. Nothing
// changes locally until the server confirms.
func (a *App) DeleteTransaction(ctx context.Context, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		printlnFn("Usage: rm <id>")
		return nil
	}
	if err := a.txs.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Transaction deleted, find it under 'trash'")
	return nil
}

// RestoreTransaction undeletes the transaction named by idArg.
func (a *App) RestoreTransaction(ctx context.Context, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		printlnFn("Usage: restore <id>")
		return nil
	}
	if err := a.txs.Restore(ctx, id); err != nil {
		return err
	}
	printlnFn("Transaction restored")
	return nil
}

// ExportTransactions writes the active listing as CSV to the named file.
func (a *App) ExportTransactions(ctx context.Context, path string) error {
	list, err := a.txs.Fetch(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	sorted := transactions.Apply(list, transactions.Filter{}, transactions.Sort{Key: transactions.SortByDate, Descending: true})
	if err := transactions.ExportCSV(f, sorted); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Exported %d transactions to %s", len(sorted), path))
	return nil
}
