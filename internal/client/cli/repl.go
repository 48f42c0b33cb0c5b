package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/abshirdev/finledger/internal/client/guard"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	guardDecision() guard.Decision

	Login(ctx context.Context) error
	LoginGoogle(ctx context.Context) error
	Register(ctx context.Context) error
	VerifyEmail(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Logout(ctx context.Context) error

	Whoami(ctx context.Context) error
	ShowToken(ctx context.Context) error
	Bills(ctx context.Context) error
	PayBill(ctx context.Context, idArg string) error
	AddBill(ctx context.Context) error
	Transactions(ctx context.Context) error
	Trash(ctx context.Context) error
	AddTransaction(ctx context.Context) error
	DeleteTransaction(ctx context.Context, idArg string) error
	RestoreTransaction(ctx context.Context, idArg string) error
	ExportTransactions(ctx context.Context, path string) error
	Accounts(ctx context.Context) error
	Categories(ctx context.Context) error
	Currencies(ctx context.Context) error
	Budgets(ctx context.Context) error
}

// protected lists the commands that require a signed-in user.
var protected = map[string]bool{
	"whoami": true, "token": true,
	"bills": true, "pay": true, "addbill": true,
	"tx": true, "trash": true, "addtx": true,
	"rm": true, "restore": true, "export": true,
	"accounts": true, "categories": true, "currencies": true, "budgets": true,
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Before dispatching a protected command the session gate is consulted:
// Pending holds the command, RedirectLogin points the user at login. The
// gate is checked per command, never cached.
//
// Any errors returned by command handlers are printed and swallowed here;
// the loop itself never aborts on a failed command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fl> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if protected[cmd] {
			switch a.guardDecision() {
			case guard.Pending:
				printlnFn("Session is still being restored, try again in a moment")
				continue
			case guard.RedirectLogin:
				printlnFn("Please login first")
				continue
			}
		}

		var err error
		switch cmd {
		case "help":
			if a.guardDecision() == guard.Allow {
				printlnFn("Available commands: whoami, bills, pay <id>, addbill, tx, trash, addtx, rm <id>, restore <id>, export <file>, accounts, categories, currencies, budgets, token, logout, exit")
			} else {
				printlnFn("Available commands: login, google, register, verify, reset, exit")
			}

		case "login":
			err = a.Login(ctx)
		case "google":
			err = a.LoginGoogle(ctx)
		case "register":
			err = a.Register(ctx)
		case "verify":
			err = a.VerifyEmail(ctx)
		case "reset":
			err = a.ResetPassword(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.Whoami(ctx)
		case "token":
			err = a.ShowToken(ctx)
		case "bills":
			err = a.Bills(ctx)
		case "pay":
			if len(args) == 0 {
				printlnFn("Usage: pay <id>")
				continue
			}
			err = a.PayBill(ctx, args[0])
		case "addbill":
			err = a.AddBill(ctx)
		case "tx":
			err = a.Transactions(ctx)
		case "trash":
			err = a.Trash(ctx)
		case "addtx":
			err = a.AddTransaction(ctx)
		case "rm":
			if len(args) == 0 {
				printlnFn("Usage: rm <id>")
				continue
			}
			err = a.DeleteTransaction(ctx, args[0])
		case "restore":
			if len(args) == 0 {
				printlnFn("Usage: restore <id>")
				continue
			}
			err = a.RestoreTransaction(ctx, args[0])
		case "export":
			if len(args) == 0 {
				printlnFn("Usage: export <file>")
				continue
			}
			err = a.ExportTransactions(ctx, args[0])
		case "accounts":
			err = a.Accounts(ctx)
		case "categories":
			err = a.Categories(ctx)
		case "currencies":
			err = a.Currencies(ctx)
		case "budgets":
			err = a.Budgets(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
