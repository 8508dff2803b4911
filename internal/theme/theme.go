// Package theme derives the effective presentation (color, light/dark) from
// profile preferences and, in auto mode, a system-level signal.
package theme

import (
	"fmt"
	"sync"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
)

const (
	defaultColor = "rouge"
	defaultMode  = models.ThemeModeDark
)

// SystemSignal reports the system-level light/dark preference. Only auto
// mode consults it.
type SystemSignal interface {
	Dark() bool
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// Presentation is the derived observable state.
type Presentation struct {
	Color string `json:"color"`
	Dark  bool   `json:"dark"`
}

// Controller applies themes idempotently: re-applying the same (color, mode)
// pair leaves the presentation untouched and notifies nobody.
type Controller struct {
	signal SystemSignal

	mu          sync.Mutex
	color       string
	mode        string
	current     Presentation
	unsubscribe func()
	subs        map[int]func(Presentation)
	nextID      int
}

func NewController(signal SystemSignal) *Controller {
	c := &Controller{
		signal: signal,
		color:  defaultColor,
		mode:   defaultMode,
		subs:   make(map[int]func(Presentation)),
	}
	c.current = c.derive()
	return c
}

func validColor(color string) bool {
	for _, c := range models.ThemeColors {
		if c == color {
			return true
		}
	}
	return false
}

// SetTheme records the preference pair and re-applies. Unknown values are
// rejected; the previous theme stays in effect.
func (c *Controller) SetTheme(color, mode string) error {
	if !validColor(color) {
		return fmt.Errorf("theme: unknown color %q", color)
	}
	switch mode {
	case models.ThemeModeLight, models.ThemeModeDark, models.ThemeModeAuto:
	default:
		return fmt.Errorf("theme: unknown mode %q", mode)
	}

	c.mu.Lock()
	c.color = color
	c.mode = mode
	c.syncSignalLocked()
	c.mu.Unlock()

	c.Apply()
	return nil
}

// SyncFromPreferences applies the profile's stored theme, falling back to
// the baseline when no preferences are present.
func (c *Controller) SyncFromPreferences(prefs *models.Preferences) {
	if prefs == nil {
		_ = c.SetTheme(defaultColor, defaultMode)
		return
	}
	if err := c.SetTheme(prefs.ThemeColor, prefs.ThemeMode); err != nil {
		_ = c.SetTheme(defaultColor, defaultMode)
	}
}

// syncSignalLocked keeps the system-signal subscription alive only while in
// auto mode.
func (c *Controller) syncSignalLocked() {
	if c.mode == models.ThemeModeAuto {
		if c.unsubscribe == nil && c.signal != nil {
			c.unsubscribe = c.signal.Subscribe(func(bool) { c.Apply() })
		}
		return
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) derive() Presentation {
	dark := true
	switch c.mode {
	case models.ThemeModeLight:
		dark = false
	case models.ThemeModeDark:
		dark = true
	case models.ThemeModeAuto:
		if c.signal != nil {
			dark = c.signal.Dark()
		}
	}
	return Presentation{Color: c.color, Dark: dark}
}

// Apply re-derives the presentation. Observers are notified only when the
// result actually changed, which makes repeated application a no-op.
func (c *Controller) Apply() {
	c.mu.Lock()
	next := c.derive()
	if next == c.current {
		c.mu.Unlock()
		return
	}
	c.current = next
	subs := make([]func(Presentation), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

func (c *Controller) Presentation() Presentation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) Subscribe(fn func(Presentation)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}
