package cli

import (
	"io"
	"time"

	"github.com/ariel-frischer/profilecheck/internal/checker"
	"github.com/ariel-frischer/profilecheck/internal/config"
	"github.com/ariel-frischer/profilecheck/internal/lifecycle"
	"github.com/ariel-frischer/profilecheck/internal/logging"
	"github.com/ariel-frischer/profilecheck/internal/progress"
	"github.com/ariel-frischer/profilecheck/internal/report"
	"github.com/ariel-frischer/profilecheck/internal/validation"
	"github.com/ariel-frischer/profilecheck/internal/xmi"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	apperrors "github.com/ariel-frischer/profilecheck/internal/errors"
)

// loadFunc loads configuration for a local config path.
type loadFunc func(localConfigPath string) (*config.Configuration, error)

// session is the per-invocation state shared by commands: effective
// configuration, logger and lifecycle handler.
type session struct {
	load loadFunc

	cfg     *config.Configuration
	logger  zerolog.Logger
	handler lifecycle.NotificationHandler
}

func newSession(load loadFunc) *session {
	if load == nil {
		load = config.Load
	}
	return &session{load: load, logger: zerolog.Nop()}
}

// setup loads configuration and applies the global flags on top of it.
func (s *session) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := s.load(configPath)
	if err != nil {
		return apperrors.ConfigParseError(configPath, err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	} else if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && cfg.LogLevel != "debug" {
		cfg.LogLevel = "info"
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Color = "never"
	}
	switch cfg.Color {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	}

	s.cfg = cfg
	s.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, logging.Auto)
	s.handler = lifecycle.NewLogHandler(s.logger)
	return nil
}

// useColor reports whether rendered output should carry ANSI colors.
func (s *session) useColor() bool {
	switch s.cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return !color.NoColor
}

// format resolves the output format from the --format flag or configuration.
func (s *session) format(cmd *cobra.Command) (report.Format, error) {
	name := s.cfg.OutputFormat
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		name = f.Value.String()
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return "", apperrors.InvalidFormat(name)
	}
	return format, nil
}

func (s *session) renderer(format report.Format) *report.Renderer {
	return report.NewRenderer(format, s.useColor())
}

// checker builds a Checker honoring the document limits and type matching
// mode from configuration.
func (s *session) checker(loose bool) *checker.Checker {
	return checker.New(
		checker.WithParseOptions(
			xmi.WithLogger(s.logger),
			xmi.WithMaxBytes(s.cfg.MaxDocumentBytes),
		),
		checker.WithValidator(validation.New(
			validation.WithLooseTypes(loose),
			validation.WithLogger(s.logger),
		)),
	)
}

// progress returns the stage display, or nil when progress is off.
func (s *session) progress(w io.Writer) *progress.ProgressDisplay {
	if !s.cfg.ShowProgress {
		return nil
	}
	return progress.NewProgressDisplay(progress.DetectTerminalCapabilities(), w)
}

func (s *session) debounce() time.Duration {
	return time.Duration(s.cfg.WatchDebounceMs) * time.Millisecond
}
