// ABOUTME: Shared fixtures for statistics tests.
// ABOUTME: Builds finished workouts at fixed times against a temp database.
package stats

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fixedNow is a Wednesday.
var fixedNow = time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	prev := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = prev })
	return conn
}

type setSpec struct {
	exercise string
	weight   float64
	reps     int
}

// logWorkout records a finished workout with the given sets and moves it to started.
func logWorkout(t *testing.T, conn *sql.DB, started time.Time, duration time.Duration, note string, sets ...setSpec) int64 {
	t.Helper()
	ctx := context.Background()

	id, err := db.CreateWorkout(ctx, conn, nil, nil)
	require.NoError(t, err)

	exercises := map[string]int64{}
	for _, s := range sets {
		exID, ok := exercises[s.exercise]
		if !ok {
			exID, err = db.AddExercise(ctx, conn, id, s.exercise, "")
			require.NoError(t, err)
			exercises[s.exercise] = exID
		}
		_, err = db.AddSet(ctx, conn, exID, s.weight, s.reps)
		require.NoError(t, err)
	}
	require.NoError(t, db.FinishWorkout(ctx, conn, id, note))
	moveWorkout(t, conn, id, started, duration)
	return id
}

func moveWorkout(t *testing.T, conn *sql.DB, id int64, started time.Time, duration time.Duration) {
	t.Helper()
	_, err := conn.Exec(`UPDATE workouts SET started_at = ?, finished_at = ? WHERE id = ?`,
		calc.FormatTimestamp(started), calc.FormatTimestamp(started.Add(duration)), id)
	require.NoError(t, err)
}

func addCardio(t *testing.T, conn *sql.DB, workoutID int64, kind models.CardioActivityType, seconds int, calories *int) {
	t.Helper()
	_, err := db.AddCardioActivity(context.Background(), conn, workoutID, kind, seconds,
		db.CardioOptions{CaloriesBurned: calories})
	require.NoError(t, err)
}

func daysBefore(n int) time.Time {
	return fixedNow.AddDate(0, 0, -n)
}
