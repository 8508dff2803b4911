package onboarding

import "github.com/Noaaaaa59/powerlifting-app-v2/internal/models"

// Step-4 input visibility is a small decision table over (program type,
// days per week). It controls which inputs are presented, not which fields
// are validated; hidden fields keep their defaults and still validate.

// ShowDaysPerWeek reports whether the days-per-week control is presented.
// Linear programs fix the schedule at 3 days without offering a choice.
func ShowDaysPerWeek(programType string) bool {
	return programType == models.ProgramType531
}

// ShowPriorityLift reports whether the priority-lift control is presented.
// Only a 531 program running more than 3 days has a slot for extra
// frequency on one lift.
func ShowPriorityLift(programType string, daysPerWeek int) bool {
	return programType == models.ProgramType531 && daysPerWeek > 3
}

// VisibleStep4Fields returns the step-4 field names presented for the given
// selection, in display order.
func VisibleStep4Fields(programType string, daysPerWeek int) []string {
	fields := []string{FieldProgramType, FieldDurationWeeks}
	if ShowDaysPerWeek(programType) {
		fields = append(fields, FieldDaysPerWeek)
	}
	if ShowPriorityLift(programType, daysPerWeek) {
		fields = append(fields, FieldPriorityLift)
	}
	return fields
}
