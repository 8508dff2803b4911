package models

import "time"

// Enumerated profile values. Stored as text in Postgres, validated at the
// boundary before any write.
const (
	GenderMale   = "male"
	GenderFemale = "female"

	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
	ExperienceElite        = "elite"

	WeightUnitKG  = "kg"
	WeightUnitLBS = "lbs"

	ProgramType531    = "531"
	ProgramTypeLinear = "linear"
)

// ThemeColors lists every accepted theme color. "rouge" is the baseline and
// is applied when no preference is stored.
var ThemeColors = []string{"rouge", "neutre", "forest", "rose", "ocean", "sunset"}

const (
	ThemeModeLight = "light"
	ThemeModeDark  = "dark"
	ThemeModeAuto  = "auto"
)

type Preferences struct {
	WeightUnit       string `json:"weight_unit"`
	ThemeColor       string `json:"theme_color"`
	ThemeMode        string `json:"theme_mode"`
	RestTimerDefault int    `json:"rest_timer_default"`
}

type ProgramSettings struct {
	DaysPerWeek           int     `json:"days_per_week"`
	DurationWeeks         int     `json:"duration_weeks"`
	PriorityLift          *string `json:"priority_lift"`
	ProgramType           string  `json:"program_type"`
	TrainingMaxPercentage int     `json:"training_max_percentage"`
}

type ProgramProgress struct {
	CurrentWeek int       `json:"current_week"`
	CurrentDay  int       `json:"current_day"`
	StartedAt   time.Time `json:"started_at"`
}

type Profile struct {
	UID                 string           `json:"uid"`
	Email               string           `json:"email"`
	DisplayName         string           `json:"display_name"`
	PhotoURL            *string          `json:"photo_url"`
	Preferences         Preferences      `json:"preferences"`
	Bodyweight          float64          `json:"bodyweight"`
	Gender              *string          `json:"gender"`
	Experience          string           `json:"experience"`
	Friends             []string         `json:"friends"`
	OnboardingCompleted bool             `json:"onboarding_completed"`
	ProgramSettings     *ProgramSettings `json:"program_settings"`
	ProgramProgress     *ProgramProgress `json:"program_progress"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// DefaultPreferences are seeded when a profile record is first created for a
// freshly signed-in identity.
func DefaultPreferences() Preferences {
	return Preferences{
		WeightUnit:       WeightUnitKG,
		ThemeColor:       "rouge",
		ThemeMode:        ThemeModeDark,
		RestTimerDefault: 180,
	}
}
