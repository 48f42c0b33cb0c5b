package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abshirdev/finledger/internal/client/api"
	"github.com/abshirdev/finledger/internal/client/api/apitest"
	"github.com/abshirdev/finledger/internal/client/auth"
	"github.com/abshirdev/finledger/internal/client/bills"
	"github.com/abshirdev/finledger/internal/client/config"
	"github.com/abshirdev/finledger/internal/client/models"
	"github.com/abshirdev/finledger/internal/client/session"
	"github.com/abshirdev/finledger/internal/client/transactions"
	"github.com/abshirdev/finledger/internal/logging"
)

type memTokens struct{ token string }

func (m *memTokens) Token(ctx context.Context) (string, error)    { return m.token, nil }
func (m *memTokens) Save(ctx context.Context, token string) error { m.token = token; return nil }
func (m *memTokens) Clear(ctx context.Context) error              { m.token = ""; return nil }

func newTestApp(t *testing.T, fake *apitest.Fake) *App {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	tokens := &memTokens{}
	sess := session.NewStore(fake, tokens, log)
	sess.Restore(context.Background())

	cfg := &config.Config{}
	cfg.LoadDefaults()

	return &App{
		config: cfg,
		log:    log,
		tokens: tokens,
		client: fake,
		sess:   sess,
		auth:   auth.NewService(fake, tokens, sess, "client-id-1", 0, log),
		bills:  bills.NewService(fake, log),
		txs:    transactions.NewService(fake, log),
		reader: bufio.NewReader(strings.NewReader("")),
	}
}

// stubPrompts feeds scripted answers to the text and password prompts and
// collects everything the commands print.
func stubPrompts(t *testing.T, answers []string, password string) *[]string {
	t.Helper()

	i := 0
	origText, origPw, origPrintln := getSimpleText, getPassword, printlnFn
	t.Cleanup(func() { getSimpleText, getPassword, printlnFn = origText, origPw, origPrintln })

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatalf("prompt overflow, no answer %d scripted", i)
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer) (string, error) {
		return password, nil
	}

	var printed []string
	printlnFn = func(args ...any) (int, error) {
		printed = append(printed, fmt.Sprintln(args...))
		return 0, nil
	}
	return &printed
}

func TestApp_Login_WithOTPChallenge(t *testing.T) {
	fake := &apitest.Fake{
		LoginFn: func(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
			return &api.LoginResponse{OTPRequired: true, UserID: 42}, nil
		},
		VerifyOTPFn: func(ctx context.Context, userID int64, code string) (*api.TokenResponse, error) {
			require.Equal(t, "123456", code)
			return &api.TokenResponse{Access: "tok"}, nil
		},
		CurrentUserFn: func(ctx context.Context) (*models.User, error) {
			return &models.User{ID: 42, Username: "amina"}, nil
		},
	}
	app := newTestApp(t, fake)
	stubPrompts(t, []string{"amina", "123456"}, "pw")

	require.NoError(t, app.Login(context.Background()))
	require.NotNil(t, app.sess.User())
	require.Equal(t, "amina", app.sess.User().Username)
}

func TestApp_Login_OTPCancelKeepsChallenge(t *testing.T) {
	fake := &apitest.Fake{
		LoginFn: func(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
			return &api.LoginResponse{OTPRequired: true, UserID: 42}, nil
		},
	}
	app := newTestApp(t, fake)
	stubPrompts(t, []string{"amina", ""}, "pw")

	require.NoError(t, app.Login(context.Background()))
	require.Nil(t, app.sess.User())
	require.NotNil(t, app.sess.OTPPending())
}

func TestApp_PayBill_TranslatedRejection(t *testing.T) {
	fake := &apitest.Fake{
		PayBillFn: func(ctx context.Context, id int64) (string, error) {
			return "", &api.Error{Status: 400, Detail: "Bill already paid"}
		},
	}
	app := newTestApp(t, fake)
	printed := stubPrompts(t, nil, "")

	require.NoError(t, app.PayBill(context.Background(), "3"), "a rejection is user feedback, not a shell error")
	require.Contains(t, strings.Join(*printed, ""), "This bill has already been paid.")
}

func TestApp_PayBill_BadArgument(t *testing.T) {
	fake := &apitest.Fake{}
	app := newTestApp(t, fake)
	stubPrompts(t, nil, "")

	require.NoError(t, app.PayBill(context.Background(), "abc"))
	require.Zero(t, fake.CallCount("PayBill"))
}

func TestApp_Logout(t *testing.T) {
	fake := &apitest.Fake{}
	app := newTestApp(t, fake)
	stubPrompts(t, nil, "")

	app.sess.SetUser(&models.User{ID: 1, Username: "amina"})
	app.tokens.(*memTokens).token = "tok"

	require.NoError(t, app.Logout(context.Background()))
	require.Nil(t, app.sess.User())
	require.Equal(t, "", app.tokens.(*memTokens).token)
	require.Empty(t, fake.Calls())
}
