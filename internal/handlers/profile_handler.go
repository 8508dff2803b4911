package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/observability"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/repository"
)

type profileService interface {
	GetProfile(ctx context.Context, uid string) (*models.Profile, error)
	UpdatePreferences(ctx context.Context, uid string, input repository.UpdatePreferencesInput) (*models.Profile, error)
	ListLiftRecords(ctx context.Context, uid string, page, limit int) ([]models.LiftRecord, int, error)
}

type ProfileHandler struct {
	service  profileService
	sessions sessionRefresher
}

func NewProfileHandler(service profileService, sessions sessionRefresher) *ProfileHandler {
	return &ProfileHandler{service: service, sessions: sessions}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	uid, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.service.GetProfile(c.Context(), uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			observability.RecordProfileFetch("miss")
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		observability.RecordProfileFetch("error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	observability.RecordProfileFetch("hit")
	return c.JSON(fiber.Map{"profile": profile})
}

type updatePreferencesRequest struct {
	WeightUnit       *string `json:"weight_unit"`
	ThemeColor       *string `json:"theme_color"`
	ThemeMode        *string `json:"theme_mode"`
	RestTimerDefault *int    `json:"rest_timer_default"`
}

func (h *ProfileHandler) UpdatePreferences(c *fiber.Ctx) error {
	uid, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateUpdatePreferencesRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.service.UpdatePreferences(c.Context(), uid, repository.UpdatePreferencesInput{
		WeightUnit:       req.WeightUnit,
		ThemeColor:       req.ThemeColor,
		ThemeMode:        req.ThemeMode,
		RestTimerDefault: req.RestTimerDefault,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update preferences"})
	}

	// Preference changes feed the theme controller through the session store.
	h.sessions.Refresh(c.Context())

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) ListLiftRecords(c *fiber.Ctx) error {
	uid, err := requireUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	records, total, err := h.service.ListLiftRecords(c.Context(), uid, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch lift records"})
	}
	return c.JSON(fiber.Map{
		"lift_records": records,
		"pagination":   buildPaginationMeta(page, limit, total),
	})
}
