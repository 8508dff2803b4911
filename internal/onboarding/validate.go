package onboarding

import "github.com/Noaaaaa59/powerlifting-app-v2/internal/models"

// stepFields declares which fields each step validates. Advance from step k
// checks exactly this set and nothing else.
var stepFields = map[Step][]string{
	Step1: {FieldGender, FieldBodyweight},
	Step2: {FieldExperience},
	Step3: {FieldSquat, FieldBench, FieldDeadlift},
	Step4: {FieldProgramType, FieldDurationWeeks, FieldDaysPerWeek, FieldPriorityLift},
}

// StepFields returns the field set validated by the given step, or nil for
// the terminal state.
func StepFields(step Step) []string {
	return stepFields[step]
}

var allowedGenders = map[string]struct{}{
	models.GenderMale:   {},
	models.GenderFemale: {},
}

var allowedExperienceLevels = map[string]struct{}{
	models.ExperienceBeginner:     {},
	models.ExperienceIntermediate: {},
	models.ExperienceAdvanced:     {},
	models.ExperienceElite:        {},
}

var allowedLifts = map[string]struct{}{
	models.ExerciseSquat:    {},
	models.ExerciseBench:    {},
	models.ExerciseDeadlift: {},
}

// validateField reports the violation message for one field, or "" when the
// field passes. Validation never fails any other way; the wizard stays
// interactive regardless of input.
func validateField(form Form, field string) string {
	switch field {
	case FieldGender:
		if _, ok := allowedGenders[form.Gender]; !ok {
			return "gender must be one of: male, female"
		}
	case FieldBodyweight:
		if form.Bodyweight <= 0 {
			return "bodyweight must be greater than 0"
		}
	case FieldExperience:
		if _, ok := allowedExperienceLevels[form.Experience]; !ok {
			return "experience must be one of: beginner, intermediate, advanced, elite"
		}
	case FieldSquat:
		if form.Squat <= 0 {
			return "squat must be greater than 0"
		}
	case FieldBench:
		if form.Bench <= 0 {
			return "bench must be greater than 0"
		}
	case FieldDeadlift:
		if form.Deadlift <= 0 {
			return "deadlift must be greater than 0"
		}
	case FieldProgramType:
		if form.ProgramType != models.ProgramType531 && form.ProgramType != models.ProgramTypeLinear {
			return "program_type must be one of: 531, linear"
		}
	case FieldDurationWeeks:
		if form.DurationWeeks != 4 && form.DurationWeeks != 6 {
			return "duration_weeks must be 4 or 6"
		}
	case FieldDaysPerWeek:
		if form.DaysPerWeek != 3 && form.DaysPerWeek != 4 && form.DaysPerWeek != 5 {
			return "days_per_week must be 3, 4 or 5"
		}
	case FieldPriorityLift:
		if _, ok := allowedLifts[form.PriorityLift]; !ok {
			return "priority_lift must be one of: squat, bench, deadlift"
		}
	}
	return ""
}

// ValidateStep checks every field in the step's declared set and returns the
// violations keyed by field name. An empty map means the step is valid.
func ValidateStep(form Form, step Step) map[string]string {
	errs := map[string]string{}
	for _, field := range stepFields[step] {
		if msg := validateField(form, field); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// ValidateAll checks the full field set across all four steps.
func ValidateAll(form Form) map[string]string {
	errs := map[string]string{}
	for step := Step1; step <= Step4; step++ {
		for field, msg := range ValidateStep(form, step) {
			errs[field] = msg
		}
	}
	return errs
}
