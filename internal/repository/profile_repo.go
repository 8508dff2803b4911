package repository

import (
	"context"
	"time"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
)

const profileColumns = `uid, email, display_name, photo_url, weight_unit, theme_color, theme_mode,
			   rest_timer_default, bodyweight, gender, experience, friends, onboarding_completed,
			   program_type, program_days_per_week, program_duration_weeks, program_priority_lift,
			   program_training_max_pct, program_current_week, program_current_day, program_started_at,
			   created_at, updated_at`

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateIfAbsent seeds a profile with default preferences for a newly seen
// identity. It is a no-op when a record already exists for the uid.
func (r *ProfileRepository) CreateIfAbsent(ctx context.Context, uid, email, displayName string, photoURL *string) error {
	prefs := models.DefaultPreferences()
	query := `
		INSERT INTO profiles (uid, email, display_name, photo_url, weight_unit, theme_color, theme_mode,
							  rest_timer_default, bodyweight, experience, friends, onboarding_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, '{}', FALSE)
		ON CONFLICT (uid) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		uid, email, displayName, photoURL,
		prefs.WeightUnit, prefs.ThemeColor, prefs.ThemeMode, prefs.RestTimerDefault,
		models.ExperienceBeginner,
	)
	return err
}

func (r *ProfileRepository) GetByUID(ctx context.Context, uid string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE uid = $1`
	return r.scanProfile(ctx, query, uid)
}

// OnboardingInput is the validated profile delta committed when the wizard
// submits. ProgramDaysPerWeek must already carry the linear-program override.
type OnboardingInput struct {
	Gender                string
	Bodyweight            float64
	Experience            string
	ProgramType           string
	ProgramDaysPerWeek    int
	ProgramDurationWeeks  int
	ProgramPriorityLift   *string
	ProgramTrainingMaxPct int
}

func (r *ProfileRepository) CompleteOnboarding(ctx context.Context, uid string, input OnboardingInput) (*models.Profile, error) {
	query := `
		UPDATE profiles
		SET gender = $1,
			bodyweight = $2,
			experience = $3,
			program_type = $4,
			program_days_per_week = $5,
			program_duration_weeks = $6,
			program_priority_lift = $7,
			program_training_max_pct = $8,
			onboarding_completed = TRUE,
			updated_at = NOW()
		WHERE uid = $9
		RETURNING ` + profileColumns
	return r.scanProfile(ctx, query,
		input.Gender,
		input.Bodyweight,
		input.Experience,
		input.ProgramType,
		input.ProgramDaysPerWeek,
		input.ProgramDurationWeeks,
		input.ProgramPriorityLift,
		input.ProgramTrainingMaxPct,
		uid,
	)
}

type UpdatePreferencesInput struct {
	WeightUnit       *string
	ThemeColor       *string
	ThemeMode        *string
	RestTimerDefault *int
}

func (r *ProfileRepository) UpdatePreferences(ctx context.Context, uid string, input UpdatePreferencesInput) (*models.Profile, error) {
	query := `
		UPDATE profiles
		SET weight_unit = COALESCE($1, weight_unit),
			theme_color = COALESCE($2, theme_color),
			theme_mode = COALESCE($3, theme_mode),
			rest_timer_default = COALESCE($4, rest_timer_default),
			updated_at = NOW()
		WHERE uid = $5
		RETURNING ` + profileColumns
	return r.scanProfile(ctx, query,
		input.WeightUnit,
		input.ThemeColor,
		input.ThemeMode,
		input.RestTimerDefault,
		uid,
	)
}

func (r *ProfileRepository) scanProfile(ctx context.Context, query string, args ...any) (*models.Profile, error) {
	var (
		profile        models.Profile
		programType    *string
		daysPerWeek    *int
		durationWeeks  *int
		priorityLift   *string
		trainingMaxPct *int
		currentWeek    *int
		currentDay     *int
		progStartedAt  *time.Time
	)
	row := r.db.QueryRow(ctx, query, args...)
	err := row.Scan(
		&profile.UID,
		&profile.Email,
		&profile.DisplayName,
		&profile.PhotoURL,
		&profile.Preferences.WeightUnit,
		&profile.Preferences.ThemeColor,
		&profile.Preferences.ThemeMode,
		&profile.Preferences.RestTimerDefault,
		&profile.Bodyweight,
		&profile.Gender,
		&profile.Experience,
		&profile.Friends,
		&profile.OnboardingCompleted,
		&programType,
		&daysPerWeek,
		&durationWeeks,
		&priorityLift,
		&trainingMaxPct,
		&currentWeek,
		&currentDay,
		&progStartedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if programType != nil {
		profile.ProgramSettings = &models.ProgramSettings{
			ProgramType:           *programType,
			DaysPerWeek:           deref(daysPerWeek),
			DurationWeeks:         deref(durationWeeks),
			PriorityLift:          priorityLift,
			TrainingMaxPercentage: deref(trainingMaxPct),
		}
	}
	if currentWeek != nil && currentDay != nil && progStartedAt != nil {
		profile.ProgramProgress = &models.ProgramProgress{
			CurrentWeek: *currentWeek,
			CurrentDay:  *currentDay,
			StartedAt:   *progStartedAt,
		}
	}
	return &profile, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
