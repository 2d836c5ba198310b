// Package config provides configuration management for Hourglass.
package config

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds application settings read from the same document as the
// persisted timers.
type Config struct {
	LifespanYears int                `mapstructure:"lifespan_years" validate:"min=1,max=150"`
	FPS           int                `mapstructure:"fps" validate:"min=1,max=60"`
	Debug         bool               `mapstructure:"debug"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ThemeConfig holds the colour of every cell style the dashboard draws.
type ThemeConfig struct {
	Header       string `mapstructure:"header" validate:"omitempty,hexcolor"`
	Label        string `mapstructure:"label" validate:"omitempty,hexcolor"`
	Border       string `mapstructure:"border" validate:"omitempty,hexcolor"`
	FillSurface  string `mapstructure:"fill_surface" validate:"omitempty,hexcolor"`
	FillMid      string `mapstructure:"fill_mid" validate:"omitempty,hexcolor"`
	FillDeep     string `mapstructure:"fill_deep" validate:"omitempty,hexcolor"`
	Grain        string `mapstructure:"grain" validate:"omitempty,hexcolor"`
	Sparkle      string `mapstructure:"sparkle" validate:"omitempty,hexcolor"`
	Flash        string `mapstructure:"flash" validate:"omitempty,hexcolor"`
	Pane         string `mapstructure:"pane" validate:"omitempty,hexcolor"`
	PaneSelected string `mapstructure:"pane_selected" validate:"omitempty,hexcolor"`
	Error        string `mapstructure:"error" validate:"omitempty,hexcolor"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		Header:       "#A0AEC0",
		Label:        "#E2E8F0",
		Border:       "#6B7280",
		FillSurface:  "#F6E05E",
		FillMid:      "#D69E2E",
		FillDeep:     "#B7791F",
		Grain:        "#FAF089",
		Sparkle:      "#FFFFFF",
		Flash:        "#F56565",
		Pane:         "#CBD5E0",
		PaneSelected: "#7C6FE0",
		Error:        "#FC8181",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LifespanYears: 85,
		FPS:           24,
		Debug:         false,
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Theme: DefaultThemeConfig(),
	}
}

// FromDocument decodes settings from doc, applying defaults and HOURGLASS_*
// environment overrides. Settings that fail validation are replaced by the
// defaults; a broken document never prevents startup.
func FromDocument(doc Document) *Config {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HOURGLASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("debug", "HOURGLASS_KEYDEBUG", "HOURGLASS_DEBUG")

	if err := v.MergeConfigMap(settingsOnly(doc)); err != nil {
		logrus.WithError(err).Warn("ignoring unreadable settings")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logrus.WithError(err).Warn("invalid settings, using defaults")
		return DefaultConfig()
	}

	if err := ValidateStruct(&cfg); err != nil {
		logrus.WithError(err).Warn("invalid settings, using defaults")
		defaults := DefaultConfig()
		if ValidateVar(cfg.LifespanYears, "min=1,max=150") != nil {
			cfg.LifespanYears = defaults.LifespanYears
		}
		if ValidateVar(cfg.FPS, "min=1,max=60") != nil {
			cfg.FPS = defaults.FPS
		}
		if ValidateStruct(&cfg.Theme) != nil {
			cfg.Theme = defaults.Theme
		}
	}

	return &cfg
}

// settingsOnly drops the timer records so they are not decoded as settings.
func settingsOnly(doc Document) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch k {
		case KeyDOB, KeyCountdown, KeyDeadline:
			continue
		}
		out[k] = v
	}
	return out
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("lifespan_years", defaults.LifespanYears)
	v.SetDefault("fps", defaults.FPS)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)

	// Theme defaults
	v.SetDefault("theme.header", defaults.Theme.Header)
	v.SetDefault("theme.label", defaults.Theme.Label)
	v.SetDefault("theme.border", defaults.Theme.Border)
	v.SetDefault("theme.fill_surface", defaults.Theme.FillSurface)
	v.SetDefault("theme.fill_mid", defaults.Theme.FillMid)
	v.SetDefault("theme.fill_deep", defaults.Theme.FillDeep)
	v.SetDefault("theme.grain", defaults.Theme.Grain)
	v.SetDefault("theme.sparkle", defaults.Theme.Sparkle)
	v.SetDefault("theme.flash", defaults.Theme.Flash)
	v.SetDefault("theme.pane", defaults.Theme.Pane)
	v.SetDefault("theme.pane_selected", defaults.Theme.PaneSelected)
	v.SetDefault("theme.error", defaults.Theme.Error)
}
