package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/theme"
)

type presentationSource interface {
	Presentation() theme.Presentation
}

// ThemeHandler exposes the effective presentation derived by the theme
// controller from the signed-in profile's preferences.
type ThemeHandler struct {
	controller presentationSource
}

func NewThemeHandler(controller presentationSource) *ThemeHandler {
	return &ThemeHandler{controller: controller}
}

func (h *ThemeHandler) GetTheme(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"theme": h.controller.Presentation()})
}
