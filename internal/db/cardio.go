// ABOUTME: Cardio activity CRUD attached to workouts.
// ABOUTME: Partial updates only write the fields that were provided.
package db

import (
	"context"
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

// CardioOptions holds the optional fields of a new cardio activity.
type CardioOptions struct {
	DistanceMeters *float64
	CaloriesBurned *int
	AvgHeartRate   *int
	Notes          *string
}

// CardioUpdate lists the fields to change. Nil fields are left untouched.
type CardioUpdate struct {
	ActivityType    *models.CardioActivityType
	DurationSeconds *int
	DistanceMeters  *float64
	CaloriesBurned  *int
	AvgHeartRate    *int
	Notes           *string
}

// IsEmpty reports whether the update changes nothing.
func (u CardioUpdate) IsEmpty() bool {
	return u.ActivityType == nil && u.DurationSeconds == nil && u.DistanceMeters == nil &&
		u.CaloriesBurned == nil && u.AvgHeartRate == nil && u.Notes == nil
}

const cardioColumns = `id, workout_id, activity_type, duration_seconds, distance_meters,
	calories_burned, avg_heart_rate, notes, order_index`

// AddCardioActivity appends a cardio activity to the workout and returns its id.
func AddCardioActivity(ctx context.Context, conn DBTX, workoutID int64, activityType models.CardioActivityType, durationSeconds int, opts CardioOptions) (int64, error) {
	res, err := conn.ExecContext(ctx, `
		INSERT INTO cardio_activities (workout_id, activity_type, duration_seconds, distance_meters,
			calories_burned, avg_heart_rate, notes, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COUNT(*) FROM cardio_activities WHERE workout_id = ?))`,
		workoutID, string(activityType), durationSeconds, opts.DistanceMeters,
		opts.CaloriesBurned, opts.AvgHeartRate, opts.Notes, workoutID)
	if err != nil {
		return 0, fmt.Errorf("failed to add cardio activity: %w", err)
	}
	return res.LastInsertId()
}

// UpdateCardioActivity writes the non-nil fields of u. An empty update is a no-op.
func UpdateCardioActivity(ctx context.Context, conn DBTX, id int64, u CardioUpdate) error {
	if u.IsEmpty() {
		return nil
	}
	var activityType *string
	if u.ActivityType != nil {
		s := string(*u.ActivityType)
		activityType = &s
	}
	_, err := conn.ExecContext(ctx, `
		UPDATE cardio_activities SET
			activity_type = COALESCE(?, activity_type),
			duration_seconds = COALESCE(?, duration_seconds),
			distance_meters = COALESCE(?, distance_meters),
			calories_burned = COALESCE(?, calories_burned),
			avg_heart_rate = COALESCE(?, avg_heart_rate),
			notes = COALESCE(?, notes)
		WHERE id = ?`,
		activityType, u.DurationSeconds, u.DistanceMeters, u.CaloriesBurned, u.AvgHeartRate, u.Notes, id)
	if err != nil {
		return fmt.Errorf("failed to update cardio activity: %w", err)
	}
	return nil
}

// SetCardioDuration overwrites the duration of one activity.
func SetCardioDuration(ctx context.Context, conn DBTX, id int64, seconds int) error {
	_, err := conn.ExecContext(ctx, `UPDATE cardio_activities SET duration_seconds = ? WHERE id = ?`, seconds, id)
	if err != nil {
		return fmt.Errorf("failed to set cardio duration: %w", err)
	}
	return nil
}

// SetCardioCalories overwrites calories burned; nil clears the value.
func SetCardioCalories(ctx context.Context, conn DBTX, id int64, calories *int) error {
	_, err := conn.ExecContext(ctx, `UPDATE cardio_activities SET calories_burned = ? WHERE id = ?`, calories, id)
	if err != nil {
		return fmt.Errorf("failed to set cardio calories: %w", err)
	}
	return nil
}

// DeleteCardioActivity removes one activity.
func DeleteCardioActivity(ctx context.Context, conn DBTX, id int64) error {
	_, err := conn.ExecContext(ctx, `DELETE FROM cardio_activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cardio activity: %w", err)
	}
	return nil
}

// GetCardioForWorkout returns the workout's activities in order.
func GetCardioForWorkout(ctx context.Context, conn DBTX, workoutID int64) ([]models.CardioActivity, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT `+cardioColumns+` FROM cardio_activities
		WHERE workout_id = ?
		ORDER BY order_index, id`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cardio activities: %w", err)
	}
	defer rows.Close()

	var out []models.CardioActivity
	for rows.Next() {
		var (
			c            models.CardioActivity
			activityType string
		)
		err := rows.Scan(&c.ID, &c.WorkoutID, &activityType, &c.DurationSeconds, &c.DistanceMeters,
			&c.CaloriesBurned, &c.AvgHeartRate, &c.Notes, &c.OrderIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cardio activity: %w", err)
		}
		c.ActivityType = models.CardioActivityType(activityType)
		out = append(out, c)
	}
	return out, rows.Err()
}
