package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abshirdev/finledger/internal/client/api"
	"github.com/abshirdev/finledger/internal/client/api/apitest"
	"github.com/abshirdev/finledger/internal/client/models"
	"github.com/abshirdev/finledger/internal/logging"
)

// memTokens is an in-memory tokenstore.Store for tests.
type memTokens struct {
	token   string
	loadErr error
}

func (m *memTokens) Token(ctx context.Context) (string, error) { return m.token, m.loadErr }
func (m *memTokens) Save(ctx context.Context, token string) error {
	m.token = token
	return nil
}
func (m *memTokens) Clear(ctx context.Context) error {
	m.token = ""
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRestore_NoToken(t *testing.T) {
	fake := &apitest.Fake{}
	s := NewStore(fake, &memTokens{}, testLogger())

	require.True(t, s.Loading())

	// repeated restores with no token behave identically
	for i := 0; i < 3; i++ {
		s.Restore(context.Background())
		require.Nil(t, s.User())
		require.False(t, s.Loading())
	}
	require.Zero(t, fake.CallCount("CurrentUser"), "no token means no network call")
}

func TestRestore_ValidToken(t *testing.T) {
	fake := &apitest.Fake{
		CurrentUserFn: func(ctx context.Context) (*models.User, error) {
			return &models.User{ID: 42, Username: "amina"}, nil
		},
	}
	tokens := &memTokens{token: "tok"}
	s := NewStore(fake, tokens, testLogger())

	s.Restore(context.Background())

	require.False(t, s.Loading())
	require.NotNil(t, s.User())
	require.Equal(t, int64(42), s.User().ID)
	require.Equal(t, "tok", tokens.token, "valid token stays persisted")
}

func TestRestore_RejectedTokenIsCleared(t *testing.T) {
	fake := &apitest.Fake{
		CurrentUserFn: func(ctx context.Context) (*models.User, error) {
			return nil, &api.Error{Status: 401, Detail: "token expired"}
		},
	}
	tokens := &memTokens{token: "stale"}
	s := NewStore(fake, tokens, testLogger())

	s.Restore(context.Background())

	require.Nil(t, s.User())
	require.False(t, s.Loading())
	require.Equal(t, "", tokens.token, "rejected token must be removed")
	require.Equal(t, "", s.Err(), "restore failure is silent")

	// a retry now behaves like the no-token case
	s.Restore(context.Background())
	require.Nil(t, s.User())
	require.False(t, s.Loading())
	require.Equal(t, 1, fake.CallCount("CurrentUser"))
}

func TestRestore_TokenLoadErrorTreatedAsAnonymous(t *testing.T) {
	fake := &apitest.Fake{}
	s := NewStore(fake, &memTokens{loadErr: errors.New("disk gone")}, testLogger())

	s.Restore(context.Background())

	require.Nil(t, s.User())
	require.False(t, s.Loading())
	require.Zero(t, fake.CallCount("CurrentUser"))
}

func TestStore_OTPChallengeExcludesUser(t *testing.T) {
	s := NewStore(&apitest.Fake{}, &memTokens{}, testLogger())

	s.SetUser(&models.User{ID: 1})
	s.SetOTPPending(&OTPChallenge{UserID: 9})
	require.Nil(t, s.User(), "a pending challenge implies no authenticated user")
	require.Equal(t, int64(9), s.OTPPending().UserID)

	s.SetUser(&models.User{ID: 9})
	require.Nil(t, s.OTPPending(), "installing a user resolves the challenge")
}

func TestStore_Reset(t *testing.T) {
	s := NewStore(&apitest.Fake{}, &memTokens{}, testLogger())
	s.SetUser(&models.User{ID: 1})
	s.SetError("boom")

	s.Reset()
	require.Nil(t, s.User())
	require.Nil(t, s.OTPPending())
	require.Equal(t, "", s.Err())
}

func TestStore_ErrorSlot(t *testing.T) {
	s := NewStore(&apitest.Fake{}, &memTokens{}, testLogger())

	s.SetError("bad credentials")
	require.Equal(t, "bad credentials", s.Err())

	s.ClearError()
	require.Equal(t, "", s.Err())
}
