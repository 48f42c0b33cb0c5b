// Package cli implements the interactive finledger shell.
//
// The shell is a plain read-eval-print loop over stdin. Commands that show
// or change financial data are gated on the session: while the initial
// restore runs they are held, and without a signed-in user they redirect to
// login. The gate is re-evaluated on every dispatched command, so a logout
// takes effect immediately.
//
// Commands
//
//	Signed out:
//	  - help              — show available commands
//	  - login             — password login (may continue into an OTP prompt)
//	  - google            — sign in with a Google ID token
//	  - register          — create an account
//	  - verify            — redeem an email-verification token
//	  - reset             — request a password-reset email
//	  - exit | quit       — leave the program
//
//	Signed in:
//	  - whoami            — show the current user
//	  - bills             — list recurring bills with the summary line
//	  - pay <id>          — pay a bill
//	  - addbill           — create a recurring bill
//	  - tx                — list active transactions
//	  - trash             — list soft-deleted transactions
//	  - addtx             — create a transaction
//	  - rm <id>           — soft-delete a transaction
//	  - restore <id>      — restore a soft-deleted transaction
//	  - export <file>     — export the active listing as CSV
//	  - accounts          — list accounts
//	  - categories        — list categories
//	  - currencies        — list currency codes
//	  - budgets           — list monthly budgets
//	  - token             — show claims of the stored access token
//	  - logout            — drop the session
//	  - exit | quit       — leave the program
package cli
