package tokenstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:tokenstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM metadata;`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_TokenAbsent(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	token, err := s.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", token)
}

func TestSQLiteStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(setupDB(t))

	require.NoError(t, s.Save(ctx, "tok-1"))
	token, err := s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)

	// saving again overwrites the single slot
	require.NoError(t, s.Save(ctx, "tok-2"))
	token, err = s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", token)

	require.NoError(t, s.Clear(ctx))
	token, err = s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "", token)
}

func TestSQLiteStore_ClearWhenEmpty(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	require.NoError(t, s.Clear(context.Background()))
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestInspect_ExtractsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	iat := time.Now().Truncate(time.Second)

	raw := signedToken(t, jwt.MapClaims{
		"user_id": 42,
		"exp":     exp.Unix(),
		"iat":     iat.Unix(),
	})

	info, err := Inspect(raw)
	require.NoError(t, err)
	require.Equal(t, int64(42), info.UserID)
	require.Equal(t, exp.Unix(), info.ExpiresAt.Unix())
	require.Equal(t, iat.Unix(), info.IssuedAt.Unix())
}

func TestInspect_ExpiredTokenStillParses(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	info, err := Inspect(raw)
	require.NoError(t, err, "inspection is display-only and must not validate expiry")
	require.Equal(t, int64(7), info.UserID)
}

func TestInspect_OpaqueToken(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	require.Error(t, err)
}
