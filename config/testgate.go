package config

// TestGateConfig requires a recent passing test run before git commits.
// Tooling that runs the test suite is expected to touch MarkerPath on
// success; the gate only checks the marker's existence and age.
type TestGateConfig struct {
	Enabled       bool   `yaml:"enabled" mapstructure:"enabled"`
	MarkerPath    string `yaml:"marker_path" mapstructure:"marker_path"`
	MaxAgeSeconds int    `yaml:"max_age_seconds" mapstructure:"max_age_seconds"`
}

// DefaultTestGateConfig returns a disabled gate with a 15 minute window.
func DefaultTestGateConfig() TestGateConfig {
	return TestGateConfig{
		Enabled:       false,
		MarkerPath:    ".warden/tests-passed",
		MaxAgeSeconds: 900,
	}
}
