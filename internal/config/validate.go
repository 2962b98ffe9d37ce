package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing every problem found.
func Validate(cfg *Config) error {
	var errs []error

	switch cfg.InputMode {
	case InputSubprocess, InputStdin, InputDemo:
	default:
		errs = append(errs, ValidationError{
			Field:   "input_mode",
			Message: fmt.Sprintf(`must be one of "subprocess", "stdin", "demo" (got %q)`, cfg.InputMode),
		})
	}

	if cfg.InputMode == InputSubprocess && len(cfg.EngineCommand) == 0 {
		errs = append(errs, ValidationError{
			Field:   "engine_command",
			Message: "required when input mode is \"subprocess\" (pass it as trailing positional arguments)",
		})
	}

	if cfg.LineBufferSize < 1 {
		errs = append(errs, ValidationError{
			Field:   "buffer",
			Message: "must be at least 1",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.LogFormat] {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be 'json' or 'text' (got %q)", cfg.LogFormat),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.LogLevel] {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error (got %q)", cfg.LogLevel),
		})
	}

	durations := []struct {
		field string
		value int64
	}{
		{"completed_stale_after", int64(cfg.CompletedStaleAfter)},
		{"incomplete_stale_after", int64(cfg.IncompleteStaleAfter)},
		{"speed_freshness", int64(cfg.SpeedFreshness)},
		{"bsa_hold_duration", int64(cfg.BSAHoldDuration)},
		{"summary_hold_duration", int64(cfg.SummaryHoldDuration)},
		{"summary_throttle_interval", int64(cfg.SummaryThrottleInterval)},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errs = append(errs, ValidationError{
				Field:   d.field,
				Message: "must be positive",
			})
		}
	}

	if cfg.IncompleteStaleAfter < cfg.CompletedStaleAfter {
		errs = append(errs, ValidationError{
			Field:   "incomplete_stale_after",
			Message: "should be at least completed_stale_after, otherwise incomplete files disappear before completed ones",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ApplyCheckMode modifies config for -check mode: force the demo input so
// validation and startup can be exercised without a real engine.
func ApplyCheckMode(cfg *Config) {
	cfg.InputMode = InputDemo
	cfg.Verbose = true
}
