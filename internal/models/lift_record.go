package models

import "time"

const (
	ExerciseSquat    = "squat"
	ExerciseBench    = "bench"
	ExerciseDeadlift = "deadlift"
)

// Lifts enumerates the three tracked exercises in display order.
var Lifts = []string{ExerciseSquat, ExerciseBench, ExerciseDeadlift}

// LiftRecord is append-only: entries are never mutated or deleted once
// written.
type LiftRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Exercise     string    `json:"exercise"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	EstimatedMax float64   `json:"estimated_max"`
	Date         time.Time `json:"date"`
	Notes        string    `json:"notes"`
}
