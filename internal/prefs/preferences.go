package prefs

import (
	"context"
	"errors"
	"fmt"
)

// Storage keys shared with the component library's navigation.
const (
	ThemeKey  = "lumiere-theme"
	NavTabKey = "lumiere-nav-tab"
)

// ErrInvalidValue is returned when setting a value outside the known set.
var ErrInvalidValue = errors.New("invalid preference value")

// Theme is the color mode of the documentation surface.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// NavTab is the active top-level navigation tab.
type NavTab string

const (
	TabCore       NavTab = "core"
	TabComponents NavTab = "components"
	TabPatterns   NavTab = "patterns"
	TabGuidelines NavTab = "guidelines"
)

// NavTabs lists the tabs in display order.
func NavTabs() []NavTab {
	return []NavTab{TabCore, TabComponents, TabPatterns, TabGuidelines}
}

// NormalizeTheme maps a stored value onto a current theme. Older builds
// stored "navy" for the dark theme; anything unrecognized is light.
func NormalizeTheme(stored string) Theme {
	switch stored {
	case "dark", "navy":
		return ThemeDark
	default:
		return ThemeLight
	}
}

// NormalizeNavTab maps a stored value, including retired tab ids, onto a
// current tab. Anything unrecognized is the first tab.
func NormalizeNavTab(stored string) NavTab {
	switch stored {
	case "foundations":
		return TabCore
	case "templates", "examples":
		return TabPatterns
	case "docs":
		return TabGuidelines
	case string(TabComponents), string(TabPatterns), string(TabGuidelines):
		return NavTab(stored)
	default:
		return TabCore
	}
}

// ParseTheme accepts only current theme names.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: theme %q", ErrInvalidValue, s)
}

// ParseNavTab accepts only current tab ids.
func ParseNavTab(s string) (NavTab, error) {
	for _, t := range NavTabs() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: nav tab %q", ErrInvalidValue, s)
}

// Preferences is the typed view over a Store used by the viewer.
type Preferences struct {
	store Store
}

func New(store Store) *Preferences {
	return &Preferences{store: store}
}

// Theme reads the stored theme, normalizes it, and writes the normalized
// value back when it differs so retired values are migrated once.
func (p *Preferences) Theme(ctx context.Context) (Theme, error) {
	stored, _, err := p.store.Get(ctx, ThemeKey)
	if err != nil {
		return "", err
	}
	t := NormalizeTheme(stored)
	if stored != string(t) {
		if err := p.store.Set(ctx, ThemeKey, string(t)); err != nil {
			return "", err
		}
	}
	return t, nil
}

// SetTheme persists t.
func (p *Preferences) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return p.store.Set(ctx, ThemeKey, string(t))
}

// NavTab reads, normalizes and migrates the stored tab like Theme.
func (p *Preferences) NavTab(ctx context.Context) (NavTab, error) {
	stored, _, err := p.store.Get(ctx, NavTabKey)
	if err != nil {
		return "", err
	}
	tab := NormalizeNavTab(stored)
	if stored != string(tab) {
		if err := p.store.Set(ctx, NavTabKey, string(tab)); err != nil {
			return "", err
		}
	}
	return tab, nil
}

// SetNavTab persists tab.
func (p *Preferences) SetNavTab(ctx context.Context, tab NavTab) error {
	if _, err := ParseNavTab(string(tab)); err != nil {
		return err
	}
	return p.store.Set(ctx, NavTabKey, string(tab))
}

// OnThemeChange calls fn with every newly persisted theme.
func (p *Preferences) OnThemeChange(fn func(Theme)) (cancel func()) {
	return p.store.Subscribe(ThemeKey, func(v string) { fn(NormalizeTheme(v)) })
}

// OnNavTabChange calls fn with every newly persisted tab.
func (p *Preferences) OnNavTabChange(fn func(NavTab)) (cancel func()) {
	return p.store.Subscribe(NavTabKey, func(v string) { fn(NormalizeNavTab(v)) })
}
