package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abshirdev/finledger/internal/logging"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, token string, handler http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, &staticTokens{token: token}, 5*time.Second, discardLogger())
}

func TestHTTPClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID, gotContentType string

	c := newTestClient(t, "tok-123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"id": 1, "username": "amina"}`))
	}))

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "amina", user.Username)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.NotEmpty(t, gotReqID)
	require.Equal(t, "application/json", gotContentType)
}

func TestHTTPClient_NoTokenMeansNoAuthHeader(t *testing.T) {
	var sawAuthHeader bool

	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))

	_, err := c.Login(context.Background(), LoginRequest{Username: "u", Password: "p"})
	require.NoError(t, err)
	require.False(t, sawAuthHeader)
}

func TestHTTPClient_DecodesErrorPayload(t *testing.T) {
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": "Please verify your email.", "verification_required": true, "user_id": 42}`))
	}))

	_, err := c.Login(context.Background(), LoginRequest{Username: "u", Password: "p"})
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, apiErr.Status)
	require.Equal(t, "Please verify your email.", apiErr.Detail)
	require.True(t, apiErr.VerificationRequired)
	require.Equal(t, int64(42), apiErr.UserID)
	require.Contains(t, apiErr.Raw, "verify your email")
}

func TestHTTPClient_ErrorDetailFallsBackToErrorAndMessageKeys(t *testing.T) {
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "reset failed"}`))
	}))

	err := c.ResetPassword(context.Background(), "a@b.co")
	apiErr, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, "reset failed", apiErr.Detail)
}

func TestHTTPClient_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refused connection from here on

	c := NewHTTPClient(srv.URL, &staticTokens{}, time.Second, discardLogger())
	_, err := c.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_ListEnvelopes(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": 1, "name": "Rent"}]`))
		}))
		bills, err := c.ListBills(context.Background())
		require.NoError(t, err)
		require.Len(t, bills, 1)
		require.Equal(t, "Rent", bills[0].Name)
	})

	t.Run("paginated results", func(t *testing.T) {
		c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"count": 2, "results": [{"id": 1}, {"id": 2}]}`))
		}))
		bills, err := c.ListBills(context.Background())
		require.NoError(t, err)
		require.Len(t, bills, 2)
	})
}

func TestHTTPClient_ListTransactionsDeletedQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))

	_, err := c.ListTransactions(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, "deleted=true", gotQuery)

	_, err = c.ListTransactions(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, "", gotQuery)
}

func TestHTTPClient_PayBillReturnsDetail(t *testing.T) {
	var gotPath string
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"detail": "Bill paid!"}`))
	}))

	detail, err := c.PayBill(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Bill paid!", detail)
	require.Equal(t, "/recurring-bills/7/pay_bill/", gotPath)
}

func TestHTTPClient_EmptyBodyOnNoContent(t *testing.T) {
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.ResendOTP(context.Background(), 42))
}
