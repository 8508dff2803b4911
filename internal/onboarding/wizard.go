package onboarding

import (
	"context"
	"errors"
)

// Step identifies the wizard's position. Steps are strictly linear; no step
// is reachable except from its immediate neighbor.
type Step int

const (
	Step1 Step = iota + 1 // gender, bodyweight
	Step2                 // experience
	Step3                 // squat, bench, deadlift PRs
	Step4                 // program configuration
	Submitted
)

var (
	// ErrFinalStep is returned by Advance from step 4, which only exposes
	// Submit.
	ErrFinalStep = errors.New("onboarding: final step requires submit")
	// ErrNotAtFinalStep is returned by Submit from any step before step 4.
	ErrNotAtFinalStep = errors.New("onboarding: submit is only available from the final step")
	// ErrAlreadySubmitted is returned once the wizard reached its terminal
	// state.
	ErrAlreadySubmitted = errors.New("onboarding: already submitted")
	// ErrSubmitInFlight is returned when a submit is attempted while a
	// previous one has not returned yet.
	ErrSubmitInFlight = errors.New("onboarding: submit already in flight")
)

// Completer performs the composite write for a validated submission.
type Completer interface {
	Complete(ctx context.Context, result Result) error
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, result Result) error

func (f CompleterFunc) Complete(ctx context.Context, result Result) error {
	return f(ctx, result)
}

// Wizard is the onboarding state machine. Mutate Form directly between
// transitions; Advance, Retreat and Submit are the only ways to change step.
// A Wizard is not safe for concurrent use.
type Wizard struct {
	Form Form

	step       Step
	submitting bool
}

func NewWizard() *Wizard {
	return &Wizard{Form: DefaultForm(), step: Step1}
}

func (w *Wizard) Step() Step {
	return w.step
}

// Advance validates only the current step's field set. It fails closed: on
// any violation the step is unchanged and the per-field messages are
// returned for display.
func (w *Wizard) Advance() (map[string]string, error) {
	switch w.step {
	case Submitted:
		return nil, ErrAlreadySubmitted
	case Step4:
		return nil, ErrFinalStep
	}
	if errs := ValidateStep(w.Form, w.step); len(errs) > 0 {
		return errs, nil
	}
	w.step++
	return nil, nil
}

// Retreat moves back one step without re-validating. All entered values are
// retained. It reports whether a move happened; retreating from step 1 or
// after submission is a no-op.
func (w *Wizard) Retreat() bool {
	if w.step <= Step1 || w.step == Submitted {
		return false
	}
	w.step--
	return true
}

// Submit validates the full field set, then runs the composite write. On
// success the wizard reaches its terminal state. On validation failure the
// per-field messages are returned; on write failure the error is returned;
// either way the wizard stays on step 4 and may be retried.
func (w *Wizard) Submit(ctx context.Context, completer Completer) (map[string]string, error) {
	switch {
	case w.step == Submitted:
		return nil, ErrAlreadySubmitted
	case w.step != Step4:
		return nil, ErrNotAtFinalStep
	case w.submitting:
		return nil, ErrSubmitInFlight
	}
	if errs := ValidateAll(w.Form); len(errs) > 0 {
		return errs, nil
	}

	w.submitting = true
	defer func() { w.submitting = false }()

	if err := completer.Complete(ctx, w.Form.normalize()); err != nil {
		return nil, err
	}
	w.step = Submitted
	return nil, nil
}
