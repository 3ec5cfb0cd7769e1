package model

// AppConfig holds application-wide preferences and default layout settings.
type AppConfig struct {
	// Default layout constants applied to fixtures without their own overrides
	DefaultEdgePadding float64 `json:"default_edge_padding"`
	DefaultClearance   float64 `json:"default_clearance"`
	DefaultColumnGap   float64 `json:"default_column_gap"`
	DefaultRowGap      float64 `json:"default_row_gap"`
	DefaultMaxAttempts int     `json:"default_max_attempts"`
	StrictFallback     bool    `json:"strict_fallback"`

	// Fixture server
	ListenAddr string `json:"listen_addr"`

	// Desktop preview
	PreviewWidth  float32 `json:"preview_width"`
	PreviewHeight float32 `json:"preview_height"`
	Theme         string  `json:"theme"` // "light", "dark", "system"

	RecentFixtures []string `json:"recent_fixtures"`
}

// DefaultAppConfig returns an AppConfig populated with defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultEdgePadding: defaults.EdgePadding,
		DefaultClearance:   defaults.Clearance,
		DefaultColumnGap:   defaults.ColumnGap,
		DefaultRowGap:      defaults.RowGap,
		DefaultMaxAttempts: defaults.MaxAttempts,
		StrictFallback:     defaults.StrictFallback,
		ListenAddr:         "127.0.0.1:8087",
		PreviewWidth:       1280,
		PreviewHeight:      800,
		Theme:              "system",
		RecentFixtures:     []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a LayoutSettings struct.
// The seed is left untouched.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	s.EdgePadding = c.DefaultEdgePadding
	s.Clearance = c.DefaultClearance
	s.ColumnGap = c.DefaultColumnGap
	s.RowGap = c.DefaultRowGap
	s.MaxAttempts = c.DefaultMaxAttempts
	s.StrictFallback = c.StrictFallback
}

// AddRecentFixture moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentFixture(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentFixtures {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentFixtures = recent
}
