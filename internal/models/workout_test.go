// ABOUTME: Tests for workout, set and cardio model helpers.
// ABOUTME: Covers placeholder detection, volume math and catalog lookups.
package models

import (
	"testing"
	"time"
)

func TestSetPlaceholder(t *testing.T) {
	if !(Set{}).IsPlaceholder() {
		t.Error("expected zero set to be a placeholder")
	}
	if (Set{Weight: 20}).IsPlaceholder() {
		t.Error("weight-only set should not be a placeholder")
	}
	if (Set{Weight: 20}).IsComplete() {
		t.Error("weight-only set should not be complete")
	}
	if !(Set{Weight: 20, Reps: 5}).IsComplete() {
		t.Error("expected 20x5 to be complete")
	}
}

func TestWorkoutDetailVolume(t *testing.T) {
	d := WorkoutDetail{Exercises: []ExerciseWithSets{
		{Sets: []Set{{Weight: 100, Reps: 5}, {Weight: 100, Reps: 5}}},
		{Sets: []Set{{Weight: 0, Reps: 0}, {Weight: 50, Reps: 10}}},
	}}
	if got := d.Volume(); got != 1500 {
		t.Errorf("Volume() = %v, want 1500", got)
	}
	if got := d.SetCount(); got != 4 {
		t.Errorf("SetCount() = %d, want 4", got)
	}
}

func TestWorkoutDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	w := Workout{StartedAt: start}
	if w.IsFinished() || w.Duration() != 0 {
		t.Error("unfinished workout should have zero duration")
	}
	end := start.Add(45 * time.Minute)
	w.FinishedAt = &end
	if w.Duration() != 45*time.Minute {
		t.Errorf("Duration() = %v, want 45m", w.Duration())
	}
}

func TestHasNote(t *testing.T) {
	blank := "   "
	note := "leg day"
	if (&Workout{}).HasNote() || (&Workout{Note: &blank}).HasNote() {
		t.Error("blank note should not count")
	}
	if !(&Workout{Note: &note}).HasNote() {
		t.Error("expected note to count")
	}
}

func TestNormalizeExerciseName(t *testing.T) {
	if got := NormalizeExerciseName("  Bench Press "); got != "bench press" {
		t.Errorf("got %q", got)
	}
}

func TestCardioCatalog(t *testing.T) {
	if len(CardioActivities) != 10 {
		t.Fatalf("expected 10 catalog entries, got %d", len(CardioActivities))
	}
	if ActivityLabel(CardioBike) != "Stationary Bike" {
		t.Errorf("label = %s", ActivityLabel(CardioBike))
	}
	if ActivityLabel("kayak") != "kayak" {
		t.Error("unknown type should fall back to raw value")
	}
	if ActivityIcon(CardioSwimming) != "water-outline" {
		t.Errorf("icon = %s", ActivityIcon(CardioSwimming))
	}
	if ActivityIcon("kayak") != "fitness-outline" {
		t.Error("unknown type should use default icon")
	}
	if !IsValidActivityType("rowing") || IsValidActivityType("kayak") {
		t.Error("IsValidActivityType mismatch")
	}
}

func TestProgramWorkoutDayCount(t *testing.T) {
	p := ProgramWithDays{Days: []ProgramDayWithExercises{
		{Exercises: []ProgramDayExercise{{Name: "Squat"}}},
		{},
		{Exercises: []ProgramDayExercise{{Name: "Bench"}, {Name: "Row"}}},
	}}
	if p.WorkoutDayCount() != 2 {
		t.Errorf("WorkoutDayCount() = %d, want 2", p.WorkoutDayCount())
	}
	if !p.Days[1].IsRestDay() {
		t.Error("expected day 1 to be a rest day")
	}
	if len(p.Days[2].Patterns()) != 2 {
		t.Error("expected two patterns")
	}
}
