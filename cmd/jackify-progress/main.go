// Package main provides the jackify-progress CLI entry point.
//
// jackify-progress renders a live terminal dashboard over an installation
// engine's progress telemetry, reading decoded lines from a spawned
// subprocess, stdin, or a built-in demo stream, and switching to a
// post-install step sequence once the engine exits.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jackify/jackify-progress/internal/config"
	"github.com/jackify/jackify-progress/internal/demo"
	"github.com/jackify/jackify-progress/internal/engine"
	"github.com/jackify/jackify-progress/internal/logging"
	"github.com/jackify/jackify-progress/internal/progress"
	"github.com/jackify/jackify-progress/internal/tui"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/jackify-progress
var version = "dev"

// demoTickInterval paces the scripted demo stream so it plays back like a
// real engine instead of flashing through in a single frame.
const demoTickInterval = 150 * time.Millisecond

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-version", "--version", "version":
			fmt.Printf("jackify-progress %s\n", version)
			return 0
		}
	}

	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	// When the TUI is active, logs to stderr would corrupt the alt-screen
	// rendering, so swap in a discarding logger the same way the teacher's
	// main.go suppresses logging under -tui.
	var logger *slog.Logger
	if cfg.TUIEnabled {
		logger = logging.NewLoggerWithWriter(io.Discard, "json", "info")
	} else {
		logger = logging.NewLogger(cfg.LogFormat, cfg.LogLevel, cfg.Verbose)
	}
	logging.SetDefault(logger)

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	if cfg.Check {
		config.ApplyCheckMode(cfg)
		logger.Info("check_mode_enabled", "input_mode", cfg.InputMode)
	}

	if cfg.PrintConfig {
		printConfig(cfg)
		return 0
	}

	logger.Info("starting",
		"version", version,
		"input_mode", cfg.InputMode,
		"tui_enabled", cfg.TUIEnabled,
	)

	agg := progress.NewAggregator()
	agg.SpeedFreshness = cfg.SpeedFreshness
	agg.CompletedStaleAfter = cfg.CompletedStaleAfter
	agg.IncompleteStaleAfter = cfg.IncompleteStaleAfter

	render := progress.NewRenderModel()
	render.SpeedFreshness = cfg.SpeedFreshness
	render.BSAHoldDuration = cfg.BSAHoldDuration
	render.SummaryHoldDuration = cfg.SummaryHoldDuration
	render.SummaryThrottleInterval = cfg.SummaryThrottleInterval

	postInstall := progress.NewPostInstallStepMachine()

	model := tui.New(tui.Config{
		Source:      agg,
		RenderModel: render,
		PostInstall: postInstall,
	})

	f := &feeder{
		agg:         agg,
		postInstall: postInstall,
		logger:      logger,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !cfg.TUIEnabled {
		if err := f.run(ctx, cfg); err != nil {
			logger.Error("engine_failed", "error", err)
			return 1
		}
		printSummary(render, agg.GetState())
		return 0
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	f.program = program

	done := make(chan error, 1)
	go func() { done <- f.run(ctx, cfg) }()

	if _, err := program.Run(); err != nil {
		logger.Error("tui_failed", "error", err)
		cancel()
		<-done
		return 1
	}

	cancel()
	if err := <-done; err != nil {
		logger.Error("engine_failed", "error", err)
		return 1
	}
	return 0
}

// feeder owns the single goroutine that reads decoded engine lines and
// folds them into the aggregator, then the post-install step machine,
// forwarding both to the running TUI program (if any).
type feeder struct {
	agg         *progress.Aggregator
	postInstall *progress.PostInstallStepMachine
	program     *tea.Program
	logger      *slog.Logger
}

func (f *feeder) run(ctx context.Context, cfg *config.Config) error {
	switch cfg.InputMode {
	case config.InputDemo:
		return f.runDemo(ctx)
	case config.InputStdin:
		return f.runReader(ctx, os.Stdin, cfg.LineBufferSize)
	case config.InputSubprocess:
		return f.runSubprocess(ctx, cfg)
	default:
		return fmt.Errorf("unknown input mode %q", cfg.InputMode)
	}
}

// runReader drains an engine.LineReader over r until EOF, folding each
// line into the aggregator and forwarding it to the console scrollback.
// EOF on stdin has no exit code to report, so it is treated as success.
func (f *feeder) runReader(ctx context.Context, r io.Reader, bufferSize int) error {
	lr := engine.NewLineReader(r, bufferSize)
	go lr.Run()

	for line := range lr.Lines() {
		f.agg.ProcessLine(line)
		tui.SendRawLine(f.program, line)
		select {
		case <-ctx.Done():
			lr.Close()
		default:
		}
	}

	tui.SendFinished(f.program, true)
	return nil
}

// runSubprocess spawns cfg.EngineCommand, reads its stdout as decoded
// lines, and reports success based on the process's exit status. Stderr
// is classified and buffered by a logging.StderrHandler rather than piped
// straight to the terminal, so a failure can be reported with the engine's
// own diagnostics instead of just an exit code.
func (f *feeder) runSubprocess(ctx context.Context, cfg *config.Config) error {
	cmd := exec.CommandContext(ctx, cfg.EngineCommand[0], cfg.EngineCommand[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("opening engine stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("opening engine stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting engine process: %w", err)
	}

	stderrHandler := logging.NewStderrHandler(f.logger, cfg.Verbose)
	go stderrHandler.HandleReader(stderr)

	lr := engine.NewLineReader(stdout, cfg.LineBufferSize)
	go lr.Run()

	for line := range lr.Lines() {
		f.agg.ProcessLine(line)
		tui.SendRawLine(f.program, line)
	}

	waitErr := cmd.Wait()
	success := waitErr == nil
	if !success {
		f.logger.Error("engine_process_exited",
			"error", waitErr,
			"stderr_errors", stderrHandler.CountErrors(),
			"stderr_recent", stderrHandler.RecentLines(10),
		)
	}
	tui.SendFinished(f.program, success)
	return nil
}

// runDemo plays the built-in scripted install sequence, then hands off to
// the post-install step machine with the scripted post-install sequence,
// the two-stream switch described for a real engine realized concretely
// since there is no second subprocess to wait on.
func (f *feeder) runDemo(ctx context.Context) error {
	ticker := time.NewTicker(demoTickInterval)
	defer ticker.Stop()

	for _, line := range demo.InstallLines {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		f.agg.ProcessLine(line)
		tui.SendRawLine(f.program, line)
	}

	tui.SendFinished(f.program, true)

	for _, line := range demo.PostInstallLines {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		f.postInstall.Observe(line)
		tui.SendRawLine(f.program, line)
	}
	f.postInstall.End(true)

	return nil
}

// printConfig prints the resolved configuration and exits, for -print-config.
func printConfig(cfg *config.Config) {
	fmt.Println("jackify-progress resolved configuration:")
	fmt.Printf("  input_mode:                %s\n", cfg.InputMode)
	fmt.Printf("  engine_command:            %v\n", cfg.EngineCommand)
	fmt.Printf("  line_buffer_size:          %d\n", cfg.LineBufferSize)
	fmt.Printf("  tui_enabled:               %t\n", cfg.TUIEnabled)
	fmt.Printf("  verbose:                   %t\n", cfg.Verbose)
	fmt.Printf("  log_format:                %s\n", cfg.LogFormat)
	fmt.Printf("  log_level:                 %s\n", cfg.LogLevel)
	fmt.Printf("  completed_stale_after:     %s\n", cfg.CompletedStaleAfter)
	fmt.Printf("  incomplete_stale_after:    %s\n", cfg.IncompleteStaleAfter)
	fmt.Printf("  speed_freshness:           %s\n", cfg.SpeedFreshness)
	fmt.Printf("  bsa_hold_duration:         %s\n", cfg.BSAHoldDuration)
	fmt.Printf("  summary_hold_duration:     %s\n", cfg.SummaryHoldDuration)
	fmt.Printf("  summary_throttle_interval: %s\n", cfg.SummaryThrottleInterval)
}

// printSummary prints a final status line when the dashboard runs without
// a TUI (e.g. -tui=false for scripted/CI use).
func printSummary(render *progress.RenderModel, s *progress.InstallationProgress) {
	fmt.Printf("%s (%d%%)\n", render.OverallLabel(s), render.OverallPercent(s))
}
