// Package lol (log of location) is a leveled console logger that stamps
// every line with a high precision timestamp and the source location that
// printed it, so chasing output back to code is a matter of clicking the
// path. Levels above the configured one are filtered away.
package lol

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"go.uber.org/atomic"
)

// Log levels in order of increasing verbosity.
const (
	Off = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

// LevelNames are the string forms accepted by SetLogLevel.
var LevelNames = []string{
	"off",
	"fatal",
	"error",
	"warn",
	"info",
	"debug",
	"trace",
}

type (
	// Ln prints a list of values with spaces in between.
	Ln func(a ...any)
	// F prints a fmt.Sprintf formatted line.
	F func(format string, a ...any)
	// S prints a spew.Sdump of the values for deep inspection.
	S func(a ...any)
	// C accepts a closure so an expensive rendering is skipped entirely
	// when the level is filtered out.
	C func(closure func() string)
	// Chk prints an error if there is one, and reports whether there was.
	Chk func(e error) bool
	// Err constructs an error with fmt.Errorf, prints it, and returns it so
	// the error is logged at the site it arose.
	Err func(format string, a ...any) error

	// LevelPrinter is the set of printers bound to one log level.
	LevelPrinter struct {
		Ln
		F
		S
		C
		Chk
		Err
	}

	// LevelSpec is the id, name and colorizer of one log level.
	LevelSpec struct {
		ID        int
		Name      string
		Colorizer func(a ...any) string
	}
)

// LevelSpecs drives the rendering of the level tag on each line.
var LevelSpecs = []LevelSpec{
	{Off, "", NoSprint},
	{Fatal, "FTL", color.New(color.BgRed, color.FgHiWhite).Sprint},
	{Error, "ERR", color.New(color.FgHiRed).Sprint},
	{Warn, "WRN", color.New(color.FgHiYellow).Sprint},
	{Info, "INF", color.New(color.FgHiGreen).Sprint},
	{Debug, "DBG", color.New(color.FgHiBlue).Sprint},
	{Trace, "TRC", color.New(color.FgHiMagenta).Sprint},
}

// NoTimestamp disables the timestamp column, for reproducible output.
var NoTimestamp atomic.Bool

// NoSprint renders nothing no matter what it is given.
func NoSprint(a ...any) string { return "" }

// Log is the full set of level printers.
type Log struct {
	F, E, W, I, D, T LevelPrinter
}

// Check is the set of error-check printers, one per level.
type Check struct {
	F, E, W, I, D, T Chk
}

// Errorf is the set of error-constructing printers, one per level.
type Errorf struct {
	F, E, W, I, D, T Err
}

// Logger is a Log, Check and Errorf sharing one writer.
type Logger struct {
	*Log
	*Check
	*Errorf
}

// Level is the level the logger is printing at.
var Level atomic.Int32

// Main is the logger the log, chk and errorf packages front for.
var Main = &Logger{}

func init() {
	Main.Log, Main.Check, Main.Errorf = New(os.Stderr)
	SetLoggers(Info)
}

// SetLoggers configures the numeric log level.
func SetLoggers(level int) {
	Main.Log.T.F("log level %s", LevelSpecs[level].Colorizer(LevelNames[level]))
	Level.Store(int32(level))
}

// GetLogLevel returns the number of a named log level, Info if unknown.
func GetLogLevel(level string) (i int) {
	for i = range LevelNames {
		if level == LevelNames[i] {
			return
		}
	}
	return Info
}

// SetLogLevel sets the log level by name.
func SetLogLevel(level string) {
	SetLoggers(GetLogLevel(level))
}

// JoinStrings renders a list of values with spaces between them.
func JoinStrings(a ...any) (s string) {
	for i := range a {
		s += fmt.Sprint(a[i])
		if i < len(a)-1 {
			s += " "
		}
	}
	return
}

var msgCol = color.New(color.FgBlue).Sprint

func emit(w io.Writer, l int32, text string) {
	fmt.Fprintf(w,
		"%s%s %s %s\n",
		msgCol(TimeStamper()),
		LevelSpecs[l].Colorizer(LevelSpecs[l].Name),
		text,
		msgCol(GetLoc(3)),
	)
}

// GetPrinter returns the printer set for one level, writing to w.
func GetPrinter(l int32, w io.Writer) LevelPrinter {
	return LevelPrinter{
		Ln: func(a ...any) {
			if Level.Load() < l {
				return
			}
			emit(w, l, JoinStrings(a...))
		},
		F: func(format string, a ...any) {
			if Level.Load() < l {
				return
			}
			emit(w, l, fmt.Sprintf(format, a...))
		},
		S: func(a ...any) {
			if Level.Load() < l {
				return
			}
			emit(w, l, spew.Sdump(a...))
		},
		C: func(closure func() string) {
			if Level.Load() < l {
				return
			}
			emit(w, l, closure())
		},
		Chk: func(e error) bool {
			if e == nil {
				return false
			}
			if Level.Load() >= l {
				emit(w, l, e.Error())
			}
			return true
		},
		Err: func(format string, a ...any) error {
			if Level.Load() >= l {
				emit(w, l, fmt.Sprintf(format, a...))
			}
			return fmt.Errorf(format, a...)
		},
	}
}

// GetNullPrinter is a printer set that prints nothing.
func GetNullPrinter() LevelPrinter {
	return LevelPrinter{
		Ln:  func(a ...any) {},
		F:   func(format string, a ...any) {},
		S:   func(a ...any) {},
		C:   func(closure func() string) {},
		Chk: func(e error) bool { return e != nil },
		Err: func(format string, a ...any) error { return fmt.Errorf(format, a...) },
	}
}

// New creates a logger with all the levels and things, writing to w.
func New(w io.Writer) (l *Log, c *Check, e *Errorf) {
	l = &Log{
		T: GetPrinter(Trace, w),
		D: GetPrinter(Debug, w),
		I: GetPrinter(Info, w),
		W: GetPrinter(Warn, w),
		E: GetPrinter(Error, w),
		F: GetPrinter(Fatal, w),
	}
	c = &Check{
		F: l.F.Chk,
		E: l.E.Chk,
		W: l.W.Chk,
		I: l.I.Chk,
		D: l.D.Chk,
		T: l.T.Chk,
	}
	e = &Errorf{
		F: l.F.Err,
		E: l.E.Err,
		W: l.W.Err,
		I: l.I.Err,
		D: l.D.Err,
		T: l.T.Err,
	}
	return
}

// TimeStamper generates the timestamp column for log lines.
func TimeStamper() (s string) {
	if NoTimestamp.Load() {
		return
	}
	return time.Now().Format("2006-01-02T15:04:05Z07:00.000 ")
}

// GetLoc returns the code location the given number of frames up the stack.
func GetLoc(skip int) (output string) {
	_, file, line, _ := runtime.Caller(skip)
	return fmt.Sprintf("%s:%d", file, line)
}
