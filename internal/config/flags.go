package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// inputModeValue is a custom flag.Value for selecting InputMode from a
// small set of string choices, rejecting anything else at parse time.
type inputModeValue struct {
	mode *InputMode
}

func (v inputModeValue) String() string {
	if v.mode == nil {
		return ""
	}
	return string(*v.mode)
}

func (v inputModeValue) Set(value string) error {
	switch InputMode(value) {
	case InputSubprocess, InputStdin, InputDemo:
		*v.mode = InputMode(value)
		return nil
	default:
		return fmt.Errorf(`must be one of "subprocess", "stdin", "demo" (got %q)`, value)
	}
}

// ParseFlags parses command-line flags and returns a Config. The returned
// error is always nil: the flag package exits on a malformed flag, and
// missing or inconsistent settings are reported by Validate.
func ParseFlags() (*Config, error) {
	cfg := DefaultConfig()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `jackify-progress - live dashboard for the Jackify install/extract engine

Usage:
  jackify-progress [flags] -- <engine command...>
  engine | jackify-progress -input stdin [flags]

Input Flags:
`)
		printFlagCategory([]string{"input", "buffer"})

		fmt.Fprintf(os.Stderr, "\nDashboard:\n")
		printFlagCategory([]string{"tui"})

		fmt.Fprintf(os.Stderr, "\nObservability:\n")
		printFlagCategory([]string{"v", "log-format", "log-level"})

		fmt.Fprintf(os.Stderr, "\nSmoothing / Staleness Tunables:\n")
		printFlagCategory([]string{"completed-stale-after", "incomplete-stale-after",
			"speed-freshness", "bsa-hold", "summary-hold", "summary-throttle"})

		fmt.Fprintf(os.Stderr, "\nDiagnostics:\n")
		printFlagCategory([]string{"print-config", "check"})

		fmt.Fprintf(os.Stderr, `
Examples:
  # Drive the dashboard from a real engine invocation
  jackify-progress -- /opt/jackify/engine --modlist skyrim-se.json

  # Pipe engine output in from a separate process
  jackify-installer-cli | jackify-progress -input stdin

  # Try the dashboard without a real engine
  jackify-progress -input demo

`)
	}

	flag.Var(inputModeValue{&cfg.InputMode}, "input", `Line source: "subprocess", "stdin", or "demo"`)
	flag.IntVar(&cfg.LineBufferSize, "buffer", cfg.LineBufferSize, "Decoded-line channel buffer size")

	flag.BoolVar(&cfg.TUIEnabled, "tui", cfg.TUIEnabled, "Enable live terminal dashboard (use -tui=false to disable)")

	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, `Log level: "debug", "info", "warn", or "error"`)

	flag.DurationVar(&cfg.CompletedStaleAfter, "completed-stale-after", cfg.CompletedStaleAfter,
		"How long a 100%-complete file stays in the active list before being dropped")
	flag.DurationVar(&cfg.IncompleteStaleAfter, "incomplete-stale-after", cfg.IncompleteStaleAfter,
		"How long a file with no update stays in the active list before being dropped")
	flag.DurationVar(&cfg.SpeedFreshness, "speed-freshness", cfg.SpeedFreshness,
		"How long an aggregate speed reading stays valid before the dashboard treats it as stale")
	flag.DurationVar(&cfg.BSAHoldDuration, "bsa-hold", cfg.BSAHoldDuration,
		"Minimum time the BSA-building display holds once detected")
	flag.DurationVar(&cfg.SummaryHoldDuration, "summary-hold", cfg.SummaryHoldDuration,
		"Minimum time the summary view holds before switching back to the file list")
	flag.DurationVar(&cfg.SummaryThrottleInterval, "summary-throttle", cfg.SummaryThrottleInterval,
		"Minimum interval between summary-row rebuilds")

	flag.BoolVar(&cfg.PrintConfig, "print-config", cfg.PrintConfig, "Print the resolved configuration and exit")
	flag.BoolVar(&cfg.Check, "check", cfg.Check, "Check mode: force the demo input and verbose logging, then run")

	flag.Parse()

	if args := flag.Args(); len(args) > 0 {
		cfg.EngineCommand = args
		if cfg.InputMode == InputDemo {
			cfg.InputMode = InputSubprocess
		}
	}

	return cfg, nil
}

// printFlagCategory prints flags matching the given names (helper for usage).
func printFlagCategory(names []string) {
	flag.VisitAll(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				fmt.Fprintf(os.Stderr, "  -%s %s\n    \t%s", f.Name, flagType(f), f.Usage)
				if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "0s" {
					fmt.Fprintf(os.Stderr, " (default %s)", f.DefValue)
				}
				fmt.Fprintln(os.Stderr)
				return
			}
		}
	})
}

// flagType returns a type hint for the flag value.
func flagType(f *flag.Flag) string {
	switch f.DefValue {
	case "true", "false":
		return ""
	}

	if strings.HasSuffix(f.DefValue, "s") || strings.HasSuffix(f.DefValue, "m") || strings.HasSuffix(f.DefValue, "h") {
		return "duration"
	}

	if _, err := fmt.Sscanf(f.DefValue, "%d", new(int)); err == nil {
		return "int"
	}

	return "string"
}
