package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/abshirdev/finledger/internal/client/api"
	"github.com/abshirdev/finledger/internal/client/auth"
	"github.com/abshirdev/finledger/internal/client/bills"
	"github.com/abshirdev/finledger/internal/client/config"
	"github.com/abshirdev/finledger/internal/client/guard"
	"github.com/abshirdev/finledger/internal/client/localdb"
	"github.com/abshirdev/finledger/internal/client/session"
	"github.com/abshirdev/finledger/internal/client/tokenstore"
	"github.com/abshirdev/finledger/internal/client/transactions"
	"github.com/abshirdev/finledger/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	log    logging.Logger

	db     *sql.DB
	tokens tokenstore.Store
	client api.Client
	sess   *session.Store
	auth   *auth.Service
	bills  *bills.Service
	txs    *transactions.Service

	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := localdb.Open(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	tokens := tokenstore.NewSQLiteStore(db)
	client := api.NewHTTPClient(c.BaseURL, tokens, c.RequestTimeout, log)
	sess := session.NewStore(client, tokens, log)

	return &App{
		config: c,
		log:    log,
		db:     db,
		tokens: tokens,
		client: client,
		sess:   sess,
		auth:   auth.NewService(client, tokens, sess, c.GoogleClientID, c.ResendCooldown, log),
		bills:  bills.NewService(client, log),
		txs:    transactions.NewService(client, log),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session and hands control to the shell.
// It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.sess.Restore(ctx)

	fmt.Println("Welcome to finledger (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	if err := a.client.Close(); err != nil {
		a.log.Warn(context.Background(), "closing api client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing local database", "error", err)
	}
}

func (a *App) guardDecision() guard.Decision {
	return guard.Evaluate(a.sess)
}

func (a *App) getStatus() string {
	if u := a.sess.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	if a.sess.OTPPending() != nil {
		return "(otp pending)"
	}
	return ""
}
