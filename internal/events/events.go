// Package events defines the domain event payloads emitted after profile
// and lift-record writes, and the Kafka publisher that delivers them.
package events

import "time"

const (
	TopicOnboardingCompleted = "profile.onboarding.completed"
	TopicLiftRecordCreated   = "lift.record.created"
)

// OnboardingCompleted is emitted once per user, after the profile merge
// commits.
type OnboardingCompleted struct {
	UserID        string    `json:"user_id"`
	Gender        string    `json:"gender"`
	Experience    string    `json:"experience"`
	ProgramType   string    `json:"program_type"`
	DaysPerWeek   int       `json:"days_per_week"`
	DurationWeeks int       `json:"duration_weeks"`
	CompletedAt   time.Time `json:"completed_at"`
}

// LiftRecordCreated is emitted for every appended lift record, seeded or
// logged.
type LiftRecordCreated struct {
	RecordID     string    `json:"record_id"`
	UserID       string    `json:"user_id"`
	Exercise     string    `json:"exercise"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	EstimatedMax float64   `json:"estimated_max"`
	Date         time.Time `json:"date"`
}
