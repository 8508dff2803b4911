package handlers

import (
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
)

var allowedWeightUnits = map[string]struct{}{
	models.WeightUnitKG:  {},
	models.WeightUnitLBS: {},
}

var allowedThemeModes = map[string]struct{}{
	models.ThemeModeLight: {},
	models.ThemeModeDark:  {},
	models.ThemeModeAuto:  {},
}

func validateUpdatePreferencesRequest(req updatePreferencesRequest) string {
	if req.WeightUnit != nil {
		if _, ok := allowedWeightUnits[*req.WeightUnit]; !ok {
			return "weight_unit must be one of: kg, lbs"
		}
	}
	if req.ThemeColor != nil {
		if !validThemeColor(*req.ThemeColor) {
			return "theme_color must be one of: rouge, neutre, forest, rose, ocean, sunset"
		}
	}
	if req.ThemeMode != nil {
		if _, ok := allowedThemeModes[*req.ThemeMode]; !ok {
			return "theme_mode must be one of: light, dark, auto"
		}
	}
	if req.RestTimerDefault != nil && *req.RestTimerDefault <= 0 {
		return "rest_timer_default must be greater than 0"
	}
	return ""
}

func validThemeColor(color string) bool {
	for _, c := range models.ThemeColors {
		if c == color {
			return true
		}
	}
	return false
}
