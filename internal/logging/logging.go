package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const dryRunPrefix = "[DRY RUN] "

// Options is fixed for the lifetime of a Logger.
type Options struct {
	Verbose bool
	DryRun  bool
	NoColor bool
}

// Logger is a leveled console logger. The zero value is not usable; build
// one with New or Nop.
type Logger struct {
	zl     zerolog.Logger
	dryRun bool
}

// New returns a Logger writing human-readable lines to w.
func New(w io.Writer, opts Options) *Logger {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      opts.NoColor,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}

	return &Logger{
		zl:     zerolog.New(console).Level(level),
		dryRun: opts.DryRun,
	}
}

// NewConsole returns a Logger on w, disabling colour unless w is a terminal
// and NO_COLOR is unset.
func NewConsole(w io.Writer, opts Options) *Logger {
	if !opts.NoColor {
		f, ok := w.(*os.File)
		opts.NoColor = !ok || !IsTerminal(f) || os.Getenv("NO_COLOR") != ""
	}
	return New(w, opts)
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DryRun reports whether actions are being simulated.
func (l *Logger) DryRun() bool { return l.dryRun }

func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

// Action logs a filesystem change at info level, marking it as simulated in
// dry-run mode.
func (l *Logger) Action(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.dryRun {
		msg = dryRunPrefix + msg
	}
	l.zl.Info().Msg(msg)
}
