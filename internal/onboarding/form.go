// Package onboarding implements the first-run wizard: a strictly linear
// four-step form that collects the fields required before a profile is
// usable, validates them per step, and commits the result as a single
// profile update plus initial lift records.
package onboarding

import "github.com/Noaaaaa59/powerlifting-app-v2/internal/models"

// Field names match the JSON keys used by the HTTP layer.
const (
	FieldGender        = "gender"
	FieldBodyweight    = "bodyweight"
	FieldExperience    = "experience"
	FieldSquat         = "squat"
	FieldBench         = "bench"
	FieldDeadlift      = "deadlift"
	FieldProgramType   = "program_type"
	FieldDurationWeeks = "duration_weeks"
	FieldDaysPerWeek   = "days_per_week"
	FieldPriorityLift  = "priority_lift"
)

// Form holds every value the wizard collects. Values persist across
// navigation in both directions; nothing is discarded until submit.
type Form struct {
	Gender        string  `json:"gender"`
	Bodyweight    float64 `json:"bodyweight"`
	Experience    string  `json:"experience"`
	Squat         float64 `json:"squat"`
	Bench         float64 `json:"bench"`
	Deadlift      float64 `json:"deadlift"`
	ProgramType   string  `json:"program_type"`
	DurationWeeks int     `json:"duration_weeks"`
	DaysPerWeek   int     `json:"days_per_week"`
	PriorityLift  string  `json:"priority_lift"`
}

// DefaultForm returns a form with the step-4 defaults preselected, matching
// what the client presents before any interaction.
func DefaultForm() Form {
	return Form{
		ProgramType:   models.ProgramType531,
		DurationWeeks: 4,
		DaysPerWeek:   3,
		PriorityLift:  models.ExerciseSquat,
	}
}

// Result is the normalized outcome of a valid submission: the profile delta
// with the linear-program override already applied, plus the entered PRs.
type Result struct {
	Gender                string
	Bodyweight            float64
	Experience            string
	ProgramType           string
	DaysPerWeek           int
	DurationWeeks         int
	PriorityLift          *string
	TrainingMaxPercentage int
	Squat                 float64
	Bench                 float64
	Deadlift              float64
}

// defaultTrainingMaxPct is committed on completion; the wizard does not
// collect a training max and downstream program generation starts
// conservative.
const defaultTrainingMaxPct = 90

// normalize applies the commit-time rules: linear programs are fixed at 3
// days regardless of collected input, and a priority lift is stored only
// when it is meaningful (531 with more than 3 days). A hidden priority-lift
// selection is cleared rather than silently submitted.
func (f Form) normalize() Result {
	days := f.DaysPerWeek
	if f.ProgramType == models.ProgramTypeLinear {
		days = 3
	}
	var priority *string
	if f.ProgramType == models.ProgramType531 && days > 3 {
		lift := f.PriorityLift
		priority = &lift
	}
	return Result{
		Gender:                f.Gender,
		Bodyweight:            f.Bodyweight,
		Experience:            f.Experience,
		ProgramType:           f.ProgramType,
		DaysPerWeek:           days,
		DurationWeeks:         f.DurationWeeks,
		PriorityLift:          priority,
		TrainingMaxPercentage: defaultTrainingMaxPct,
		Squat:                 f.Squat,
		Bench:                 f.Bench,
		Deadlift:              f.Deadlift,
	}
}
