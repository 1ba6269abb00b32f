package log

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Level is the level of the logger.
type Level uint8

const (
	// Trace is the trace (trce) level.
	Trace Level = iota
	// Debug is the debug (dbug) level.
	Debug
	// Info is the info level.
	Info
	// Warn is the warn level.
	Warn
	// Error is the error (eror) level.
	Error
	// Critical is the critical (crit) level.
	Critical
)

var levelNames = [...]string{
	Trace:    "TRCE",
	Debug:    "DBUG",
	Info:     "INFO",
	Warn:     "WARN",
	Error:    "EROR",
	Critical: "CRIT",
}

var levelColours = [...]color.Attribute{
	Trace:    color.FgHiCyan,
	Debug:    color.FgHiBlue,
	Info:     color.FgCyan,
	Warn:     color.FgYellow,
	Error:    color.FgHiRed,
	Critical: color.FgRed,
}

func (level Level) String() string {
	if int(level) >= len(levelNames) {
		return "???"
	}
	return levelNames[level]
}

// ColouredString returns the level string in the level colour.
func (level Level) ColouredString() string {
	if int(level) >= len(levelColours) {
		return level.String()
	}
	return color.New(levelColours[level]).Sprint(level.String())
}

// ErrLevelNotRecognised is returned by ParseLevel for an unknown level.
var ErrLevelNotRecognised = errors.New("level is not recognised")

// ParseLevel parses a four letter level name, case insensitively.
func ParseLevel(s string) (Level, error) {
	for level, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(level), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrLevelNotRecognised, s)
}
