// ABOUTME: Exercise-name to muscle-group lookup and volume distribution.
// ABOUTME: Unknown exercise names are grouped under "other".
package stats

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/harperreed/gym/internal/calc"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/models"
)

// OtherMuscle is the bucket for exercise names missing from the table.
const OtherMuscle = "other"

type muscleInfo struct {
	muscle   string
	movement string
}

var exerciseMuscles = map[string]muscleInfo{
	// chest
	"bench press":          {"chest", "push"},
	"incline bench press":  {"chest", "push"},
	"dumbbell bench press": {"chest", "push"},
	"dumbbell fly":         {"chest", "push"},
	"cable fly":            {"chest", "push"},
	"push-ups":             {"chest", "push"},
	// back
	"deadlift":      {"back", "pull"},
	"barbell row":   {"back", "pull"},
	"bent over row": {"back", "pull"},
	"pull-ups":      {"back", "pull"},
	"chin-ups":      {"back", "pull"},
	"lat pulldown":  {"back", "pull"},
	"seated row":    {"back", "pull"},
	"dumbbell row":  {"back", "pull"},
	// shoulders
	"overhead press":          {"shoulders", "push"},
	"military press":          {"shoulders", "push"},
	"dumbbell shoulder press": {"shoulders", "push"},
	"lateral raise":           {"shoulders", "isolation"},
	"front raise":             {"shoulders", "isolation"},
	"face pull":               {"shoulders", "pull"},
	// legs
	"squat":                 {"quadriceps", "legs"},
	"back squat":            {"quadriceps", "legs"},
	"front squat":           {"quadriceps", "legs"},
	"leg press":             {"quadriceps", "legs"},
	"leg extension":         {"quadriceps", "isolation"},
	"leg curl":              {"hamstrings", "isolation"},
	"romanian deadlift":     {"hamstrings", "legs"},
	"lunge":                 {"quadriceps", "legs"},
	"bulgarian split squat": {"quadriceps", "legs"},
	"hip thrust":            {"glutes", "legs"},
	"calf raise":            {"calves", "isolation"},
	// arms
	"dumbbell curl":    {"biceps", "pull"},
	"barbell curl":     {"biceps", "pull"},
	"hammer curl":      {"biceps", "pull"},
	"tricep pushdown":  {"triceps", "push"},
	"tricep extension": {"triceps", "push"},
	"skull crusher":    {"triceps", "push"},
	"dips":             {"triceps", "push"},
	// core
	"plank":        {"core", "isolation"},
	"crunch":       {"core", "isolation"},
	"leg raise":    {"core", "isolation"},
	"cable crunch": {"core", "isolation"},
}

// MuscleFor returns the muscle group and movement type for an exercise name.
// Unknown names return ("other", "").
func MuscleFor(exerciseName string) (muscle, movement string) {
	info, ok := exerciseMuscles[models.NormalizeExerciseName(exerciseName)]
	if !ok {
		return OtherMuscle, ""
	}
	return info.muscle, info.movement
}

// GetMuscleVolumeDistribution buckets lifted volume from finished workouts
// started in the last days by muscle group, largest first. A non-positive days uses 30.
func GetMuscleVolumeDistribution(ctx context.Context, conn db.DBTX, days int) ([]MuscleVolume, error) {
	since := periodStart(orDefault(days, DefaultDistributionDays))
	rows, err := conn.QueryContext(ctx, `
		SELECT lower(trim(e.name)), SUM(s.weight * s.reps)
		FROM exercises e
		JOIN sets s ON s.exercise_id = e.id
		JOIN workouts w ON w.id = e.workout_id
		WHERE w.finished_at IS NOT NULL AND w.started_at >= ? AND s.weight > 0
		GROUP BY lower(trim(e.name))`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise volume: %w", err)
	}
	defer rows.Close()

	byMuscle := map[string]float64{}
	var total float64
	for rows.Next() {
		var (
			name   string
			volume float64
		)
		if err := rows.Scan(&name, &volume); err != nil {
			return nil, fmt.Errorf("failed to scan exercise volume: %w", err)
		}
		muscle, _ := MuscleFor(name)
		byMuscle[muscle] += volume
		total += volume
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]MuscleVolume, 0, len(byMuscle))
	for muscle, volume := range byMuscle {
		out = append(out, MuscleVolume{
			Muscle:     muscle,
			Volume:     math.Round(volume),
			Percentage: calc.Percent(volume, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].Muscle < out[j].Muscle
	})
	return out, nil
}
