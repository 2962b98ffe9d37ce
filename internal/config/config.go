// Package config provides configuration management for jackify-progress.
package config

import "time"

// InputMode selects where decoded engine lines come from.
type InputMode string

const (
	// InputSubprocess spawns EngineCommand and reads its stdout.
	InputSubprocess InputMode = "subprocess"
	// InputStdin reads lines from the process's own stdin, for piping an
	// engine's output in from a separate process (e.g. `engine | jackify-progress`).
	InputStdin InputMode = "stdin"
	// InputDemo drives the dashboard from a built-in scripted sequence of
	// lines, for trying the dashboard without a real engine.
	InputDemo InputMode = "demo"
)

// Config holds all configuration options for the progress dashboard.
type Config struct {
	// Input
	InputMode     InputMode `json:"input_mode"`
	EngineCommand []string  `json:"engine_command"` // argv, used when InputMode == InputSubprocess
	LineBufferSize int      `json:"line_buffer_size"`

	// Dashboard
	TUIEnabled bool `json:"tui_enabled"`

	// Observability
	Verbose   bool   `json:"verbose"`
	LogFormat string `json:"log_format"` // json, text
	LogLevel  string `json:"log_level"`  // debug, info, warn, error

	// Staleness / freshness tunables (spec.md §9 open questions: caller
	// may want these configurable)
	CompletedStaleAfter   time.Duration `json:"completed_stale_after"`
	IncompleteStaleAfter  time.Duration `json:"incomplete_stale_after"`
	SpeedFreshness        time.Duration `json:"speed_freshness"`
	BSAHoldDuration       time.Duration `json:"bsa_hold_duration"`
	SummaryHoldDuration   time.Duration `json:"summary_hold_duration"`
	SummaryThrottleInterval time.Duration `json:"summary_throttle_interval"`

	// Diagnostic modes
	PrintConfig bool `json:"print_config"`
	Check       bool `json:"check"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		// Input
		InputMode:      InputDemo,
		LineBufferSize: 256,

		// Dashboard
		TUIEnabled: true,

		// Observability
		Verbose:   false,
		LogFormat: "json",
		LogLevel:  "info",

		// Staleness / freshness
		CompletedStaleAfter:     500 * time.Millisecond,
		IncompleteStaleAfter:    30 * time.Second,
		SpeedFreshness:          2 * time.Second,
		BSAHoldDuration:         1500 * time.Millisecond,
		SummaryHoldDuration:     500 * time.Millisecond,
		SummaryThrottleInterval: 100 * time.Millisecond,
	}
}
