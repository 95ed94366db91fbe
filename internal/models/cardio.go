// ABOUTME: Cardio activity model and the fixed catalog of activity kinds.
// ABOUTME: Each kind has a display label and an icon identifier.
package models

// CardioActivityType enumerates the recognized cardio kinds.
type CardioActivityType string

const (
	CardioTreadmill   CardioActivityType = "treadmill"
	CardioBike        CardioActivityType = "bike"
	CardioRowing      CardioActivityType = "rowing"
	CardioElliptical  CardioActivityType = "elliptical"
	CardioStairmaster CardioActivityType = "stairmaster"
	CardioRunning     CardioActivityType = "running"
	CardioCycling     CardioActivityType = "cycling"
	CardioSwimming    CardioActivityType = "swimming"
	CardioWalking     CardioActivityType = "walking"
	CardioOther       CardioActivityType = "other"
)

// CardioKind describes one entry of the activity catalog.
type CardioKind struct {
	Type  CardioActivityType `json:"type"`
	Label string             `json:"label"`
	Icon  string             `json:"icon"`
}

// CardioActivities is the catalog of recognized activities, in display order.
var CardioActivities = []CardioKind{
	{CardioTreadmill, "Treadmill", "walk-outline"},
	{CardioBike, "Stationary Bike", "bicycle-outline"},
	{CardioRowing, "Rowing", "boat-outline"},
	{CardioElliptical, "Elliptical", "fitness-outline"},
	{CardioStairmaster, "Stairmaster", "trending-up-outline"},
	{CardioRunning, "Running", "walk-outline"},
	{CardioCycling, "Cycling", "bicycle-outline"},
	{CardioSwimming, "Swimming", "water-outline"},
	{CardioWalking, "Walking", "footsteps-outline"},
	{CardioOther, "Other", "ellipsis-horizontal-outline"},
}

const defaultCardioIcon = "fitness-outline"

func lookupCardioKind(t CardioActivityType) (CardioKind, bool) {
	for _, k := range CardioActivities {
		if k.Type == t {
			return k, true
		}
	}
	return CardioKind{}, false
}

// ActivityLabel returns the display label, or the raw type when unknown.
func ActivityLabel(t CardioActivityType) string {
	if k, ok := lookupCardioKind(t); ok {
		return k.Label
	}
	return string(t)
}

// ActivityIcon returns the icon identifier for the activity type.
func ActivityIcon(t CardioActivityType) string {
	if k, ok := lookupCardioKind(t); ok {
		return k.Icon
	}
	return defaultCardioIcon
}

// IsValidActivityType checks if a string names a catalog activity.
func IsValidActivityType(s string) bool {
	_, ok := lookupCardioKind(CardioActivityType(s))
	return ok
}

// CardioActivity is a cardio entry attached to a workout.
type CardioActivity struct {
	ID              int64              `json:"id" yaml:"id"`
	WorkoutID       int64              `json:"workout_id" yaml:"workout_id"`
	ActivityType    CardioActivityType `json:"activity_type" yaml:"activity_type"`
	DurationSeconds int                `json:"duration_seconds" yaml:"duration_seconds"`
	DistanceMeters  *float64           `json:"distance_meters,omitempty" yaml:"distance_meters,omitempty"`
	CaloriesBurned  *int               `json:"calories_burned,omitempty" yaml:"calories_burned,omitempty"`
	AvgHeartRate    *int               `json:"avg_heart_rate,omitempty" yaml:"avg_heart_rate,omitempty"`
	Notes           *string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	OrderIndex      int                `json:"order_index" yaml:"order_index"`
}
