package game

import (
	"io"

	"github.com/sirupsen/logrus"
)

type DebugMode int

const (
	DebugModeScan DebugMode = iota
	DebugModeClimb
	DebugModeLedge
	DebugModeMovement
	DebugModeAuthority
	debugModeCount
)

var debugModeNames = [debugModeCount]string{"scan", "climb", "ledge", "movement", "authority"}

func (m DebugMode) String() string {
	if m < 0 || m >= debugModeCount {
		return "unknown"
	}
	return debugModeNames[m]
}

// ParseDebugMode returns the debug mode with the given name.
func ParseDebugMode(name string) (DebugMode, bool) {
	for i, n := range debugModeNames {
		if n == name {
			return DebugMode(i), true
		}
	}
	return 0, false
}

// Debugger routes tracing messages for the enabled debug modes to a logger.
type Debugger struct {
	log   *logrus.Logger
	modes uint32
}

// NewDebugger returns a debugger writing to the given logger with every mode disabled.
func NewDebugger(log *logrus.Logger) *Debugger {
	if log == nil {
		log = NopLogger()
	}
	return &Debugger{log: log}
}

// SetMode enables or disables a debug mode.
func (d *Debugger) SetMode(mode DebugMode, enabled bool) {
	if enabled {
		d.modes |= 1 << uint32(mode)
	} else {
		d.modes &^= 1 << uint32(mode)
	}
}

// Enabled returns true if the debug mode is enabled.
func (d *Debugger) Enabled(mode DebugMode) bool {
	return d != nil && d.modes&(1<<uint32(mode)) != 0
}

// Notify logs the message at debug level if the mode is enabled and cond holds.
func (d *Debugger) Notify(mode DebugMode, cond bool, format string, args ...any) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.WithField("mode", mode.String()).Debugf(format, args...)
}

// Log returns the logger the debugger writes to.
func (d *Debugger) Log() *logrus.Logger {
	return d.log
}

// NopLogger returns a logger that discards everything written to it.
func NopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
