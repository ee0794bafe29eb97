// Package sqlitetest opens throwaway SQLite databases for tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// NewDB returns a migrated database stored under t.TempDir. It is closed on cleanup.
func NewDB(t testing.TB) *database.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "hrms.db"), 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))

	t.Cleanup(func() { db.Close() })
	return db
}

// InsertUser creates a user row directly and returns its id.
func InsertUser(t testing.TB, db *database.DB, name, email, role string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	var id int64
	err = db.QueryRowContext(context.Background(),
		`INSERT INTO users (name, email, password, user_type, joining_date)
		 VALUES (?, ?, ?, ?, ?) RETURNING user_id`,
		name, email, string(hash), role, time.Now().UTC().Format("2006-01-02"),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// Count runs a COUNT(*) style query and returns the result.
func Count(t testing.TB, db *database.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}
