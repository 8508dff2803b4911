package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/onboarding"
)

type onboardingCompleter interface {
	Complete(ctx context.Context, uid string, result onboarding.Result) (*models.Profile, error)
}

type sessionRefresher interface {
	Refresh(ctx context.Context)
}

type OnboardingHandler struct {
	service  onboardingCompleter
	sessions sessionRefresher
}

func NewOnboardingHandler(service onboardingCompleter, sessions sessionRefresher) *OnboardingHandler {
	return &OnboardingHandler{service: service, sessions: sessions}
}

// ValidateStep checks a single wizard step's field set against the submitted
// form, so the client can gate Advance server-side. For step 4 the response
// also carries the visible-field set for the current selection.
func (h *OnboardingHandler) ValidateStep(c *fiber.Ctx) error {
	if _, err := requireUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	stepNumber, err := strconv.Atoi(c.Params("step"))
	if err != nil || stepNumber < 1 || stepNumber > 4 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Step must be between 1 and 4"})
	}
	step := onboarding.Step(stepNumber)

	form := onboarding.DefaultForm()
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	errs := onboarding.ValidateStep(form, step)
	response := fiber.Map{
		"valid":  len(errs) == 0,
		"errors": errs,
	}
	if step == onboarding.Step4 {
		response["visible_fields"] = onboarding.VisibleStep4Fields(form.ProgramType, form.DaysPerWeek)
	}
	return c.JSON(response)
}

// Complete runs the full wizard over the submitted form and, when every step
// validates, performs the composite write. Field violations come back keyed
// by field name; a write failure is a single retryable error.
func (h *OnboardingHandler) Complete(c *fiber.Ctx) error {
	uid, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	form := onboarding.DefaultForm()
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	wizard := onboarding.NewWizard()
	wizard.Form = form
	for wizard.Step() != onboarding.Step4 {
		if errs, err := wizard.Advance(); err != nil || len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Validation failed",
				"step":   int(wizard.Step()),
				"errors": errs,
			})
		}
	}

	var profile *models.Profile
	errs, err := wizard.Submit(c.Context(), onboarding.CompleterFunc(func(ctx context.Context, result onboarding.Result) error {
		var completeErr error
		profile, completeErr = h.service.Complete(ctx, uid, result)
		return completeErr
	}))
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"step":   int(onboarding.Step4),
			"errors": errs,
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete onboarding"})
	}

	h.sessions.Refresh(c.Context())

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingCompleted,
	})
}
