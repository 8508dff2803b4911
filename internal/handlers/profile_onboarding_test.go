package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/onboarding"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/repository"
)

type stubOnboardingService struct {
	lastUID    string
	lastResult onboarding.Result
	calls      int
	err        error
}

func (s *stubOnboardingService) Complete(_ context.Context, uid string, result onboarding.Result) (*models.Profile, error) {
	s.calls++
	s.lastUID = uid
	s.lastResult = result
	if s.err != nil {
		return nil, s.err
	}
	gender := result.Gender
	return &models.Profile{
		UID:                 uid,
		Gender:              &gender,
		Bodyweight:          result.Bodyweight,
		Experience:          result.Experience,
		OnboardingCompleted: true,
	}, nil
}

type stubSessionRefresher struct {
	refreshes int
}

func (s *stubSessionRefresher) Refresh(context.Context) {
	s.refreshes++
}

type stubProfileService struct {
	profile         *models.Profile
	getErr          error
	records         []models.LiftRecord
	lastPreferences repository.UpdatePreferencesInput
}

func (s *stubProfileService) GetProfile(context.Context, string) (*models.Profile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.profile, nil
}

func (s *stubProfileService) UpdatePreferences(_ context.Context, _ string, input repository.UpdatePreferencesInput) (*models.Profile, error) {
	s.lastPreferences = input
	return s.profile, nil
}

func (s *stubProfileService) ListLiftRecords(context.Context, string, int, int) ([]models.LiftRecord, int, error) {
	return s.records, len(s.records), nil
}

func newTestApp(uid string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uid)
		return c.Next()
	})
	return app
}

const fullOnboardingBody = `{
	"gender": "female",
	"bodyweight": 65,
	"experience": "intermediate",
	"squat": 100,
	"bench": 50,
	"deadlift": 120,
	"program_type": "531",
	"duration_weeks": 4,
	"days_per_week": 4,
	"priority_lift": "squat"
}`

func TestOnboardingCompleteHappyPath(t *testing.T) {
	service := &stubOnboardingService{}
	sessions := &stubSessionRefresher{}
	handler := NewOnboardingHandler(service, sessions)

	app := newTestApp("u1")
	app.Post("/api/v1/onboarding", handler.Complete)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding", strings.NewReader(fullOnboardingBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUID != "u1" {
		t.Errorf("expected uid forwarded, got %q", service.lastUID)
	}
	if service.lastResult.DaysPerWeek != 4 {
		t.Errorf("531 must keep the selected days, got %d", service.lastResult.DaysPerWeek)
	}
	if service.lastResult.PriorityLift == nil || *service.lastResult.PriorityLift != "squat" {
		t.Errorf("expected priority lift squat, got %v", service.lastResult.PriorityLift)
	}
	if sessions.refreshes != 1 {
		t.Errorf("expected one session refresh after completion, got %d", sessions.refreshes)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["onboarding_complete"] != true {
		t.Fatalf("expected onboarding_complete true, got %#v", payload["onboarding_complete"])
	}
}

func TestOnboardingCompleteLinearOverridesDays(t *testing.T) {
	service := &stubOnboardingService{}
	handler := NewOnboardingHandler(service, &stubSessionRefresher{})

	app := newTestApp("u1")
	app.Post("/api/v1/onboarding", handler.Complete)

	body := strings.Replace(fullOnboardingBody, `"531"`, `"linear"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastResult.DaysPerWeek != 3 {
		t.Errorf("linear program must commit 3 days, got %d", service.lastResult.DaysPerWeek)
	}
	if service.lastResult.PriorityLift != nil {
		t.Errorf("expected priority lift cleared for linear, got %v", service.lastResult.PriorityLift)
	}
}

func TestOnboardingCompleteValidationFailure(t *testing.T) {
	service := &stubOnboardingService{}
	sessions := &stubSessionRefresher{}
	handler := NewOnboardingHandler(service, sessions)

	app := newTestApp("u1")
	app.Post("/api/v1/onboarding", handler.Complete)

	body := strings.Replace(fullOnboardingBody, `"female"`, `"unknown"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if service.calls != 0 {
		t.Errorf("service must not run on validation failure, got %d calls", service.calls)
	}
	if sessions.refreshes != 0 {
		t.Errorf("no refresh on failure, got %d", sessions.refreshes)
	}

	var payload struct {
		Step   int               `json:"step"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Step != 1 {
		t.Errorf("expected failure reported on step 1, got %d", payload.Step)
	}
	if payload.Errors["gender"] == "" {
		t.Errorf("expected gender violation, got %v", payload.Errors)
	}
}

func TestOnboardingCompleteWriteFailureIsRetryable(t *testing.T) {
	service := &stubOnboardingService{err: errors.New("store unavailable")}
	handler := NewOnboardingHandler(service, &stubSessionRefresher{})

	app := newTestApp("u1")
	app.Post("/api/v1/onboarding", handler.Complete)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding", strings.NewReader(fullOnboardingBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestValidateStepReportsFieldErrors(t *testing.T) {
	handler := NewOnboardingHandler(&stubOnboardingService{}, &stubSessionRefresher{})

	app := newTestApp("u1")
	app.Post("/api/v1/onboarding/steps/:step/validate", handler.ValidateStep)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/steps/1/validate", strings.NewReader(`{"bodyweight":-3}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Valid  bool              `json:"valid"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Valid {
		t.Fatal("expected step 1 invalid")
	}
	if payload.Errors["gender"] == "" || payload.Errors["bodyweight"] == "" {
		t.Fatalf("expected gender and bodyweight violations, got %v", payload.Errors)
	}
}

func TestValidateStepFourExposesVisibleFields(t *testing.T) {
	handler := NewOnboardingHandler(&stubOnboardingService{}, &stubSessionRefresher{})

	app := newTestApp("u1")
	app.Post("/api/v1/onboarding/steps/:step/validate", handler.ValidateStep)

	body := `{"program_type":"linear","duration_weeks":6,"days_per_week":5,"priority_lift":"bench"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/steps/4/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Valid         bool     `json:"valid"`
		VisibleFields []string `json:"visible_fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Valid {
		t.Fatal("expected step 4 valid")
	}
	if len(payload.VisibleFields) != 2 {
		t.Fatalf("linear must present only program_type and duration_weeks, got %v", payload.VisibleFields)
	}
}

func TestUpdatePreferencesRejectsUnknownThemeColor(t *testing.T) {
	service := &stubProfileService{profile: &models.Profile{UID: "u1"}}
	handler := NewProfileHandler(service, &stubSessionRefresher{})

	app := newTestApp("u1")
	app.Put("/api/v1/profile/preferences", handler.UpdatePreferences)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/preferences", strings.NewReader(`{"theme_color":"magenta"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdatePreferencesForwardsPartialInput(t *testing.T) {
	service := &stubProfileService{profile: &models.Profile{UID: "u1"}}
	sessions := &stubSessionRefresher{}
	handler := NewProfileHandler(service, sessions)

	app := newTestApp("u1")
	app.Put("/api/v1/profile/preferences", handler.UpdatePreferences)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile/preferences", strings.NewReader(`{"theme_color":"ocean","theme_mode":"auto"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastPreferences.ThemeColor == nil || *service.lastPreferences.ThemeColor != "ocean" {
		t.Errorf("expected theme_color forwarded, got %+v", service.lastPreferences.ThemeColor)
	}
	if service.lastPreferences.WeightUnit != nil {
		t.Errorf("absent fields must stay nil, got %+v", service.lastPreferences.WeightUnit)
	}
	if sessions.refreshes != 1 {
		t.Errorf("expected session refresh after preference change, got %d", sessions.refreshes)
	}
}

func TestListLiftRecordsPaginates(t *testing.T) {
	service := &stubProfileService{records: []models.LiftRecord{
		{ID: "r1", UserID: "u1", Exercise: models.ExerciseSquat},
		{ID: "r2", UserID: "u1", Exercise: models.ExerciseBench},
	}}
	handler := NewProfileHandler(service, &stubSessionRefresher{})

	app := newTestApp("u1")
	app.Get("/api/v1/lifts", handler.ListLiftRecords)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lifts?page=1&limit=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		LiftRecords []models.LiftRecord   `json:"lift_records"`
		Pagination  models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.LiftRecords) != 2 {
		t.Fatalf("expected 2 records, got %d", len(body.LiftRecords))
	}
	if body.Pagination.Total != 2 || body.Pagination.TotalPages != 1 {
		t.Fatalf("unexpected pagination meta: %+v", body.Pagination)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	service := &stubProfileService{getErr: pgx.ErrNoRows}
	handler := NewProfileHandler(service, &stubSessionRefresher{})

	app := newTestApp("u1")
	app.Get("/api/v1/profile", handler.GetProfile)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
