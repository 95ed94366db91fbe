// ABOUTME: Shared test helpers for database tests.
// ABOUTME: Provides setupTestDB, a controllable clock and small fixtures.
package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// setClock pins the package clock to ts until the test ends.
func setClock(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

// startFinished creates a workout and finishes it so the next one can start.
func startFinished(t *testing.T, conn DBTX, note string) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := CreateWorkout(ctx, conn, nil, nil)
	require.NoError(t, err)
	require.NoError(t, FinishWorkout(ctx, conn, id, note))
	return id
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}
