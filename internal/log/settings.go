package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

type settings struct {
	writer  io.Writer
	level   *Level
	colour  *bool
	caller  callerSettings
	context []contextKeyValues
}

type contextKeyValues struct {
	key    string
	values []string
}

type callerSettings struct {
	file *bool
	line *bool
}

func newSettings(options []Option) (settings settings) {
	for _, option := range options {
		option(&settings)
	}
	return settings
}

// mergeWith sets values for each unset field
// using the values from the other settings.
func (s *settings) mergeWith(other settings) {
	if s.writer == nil {
		s.writer = other.writer
	}

	if s.level == nil && other.level != nil {
		value := *other.level
		s.level = &value
	}

	if s.colour == nil && other.colour != nil {
		value := *other.colour
		s.colour = &value
	}

	if s.caller.file == nil && other.caller.file != nil {
		value := *other.caller.file
		s.caller.file = &value
	}

	if s.caller.line == nil && other.caller.line != nil {
		value := *other.caller.line
		s.caller.line = &value
	}

	context := make([]contextKeyValues, 0, len(other.context)+len(s.context))
	for _, kv := range other.context {
		context = append(context, contextKeyValues{
			key:    kv.key,
			values: append([]string(nil), kv.values...),
		})
	}
	for _, kv := range s.context {
		merged := false
		for i := range context {
			if context[i].key == kv.key {
				context[i].values = append(context[i].values, kv.values...)
				merged = true
				break
			}
		}
		if !merged {
			context = append(context, kv)
		}
	}
	s.context = context
}

// overrideWith sets every field set in other onto s.
func (s *settings) overrideWith(other settings) {
	if other.writer != nil {
		s.writer = other.writer
	}
	if other.level != nil {
		value := *other.level
		s.level = &value
	}
	if other.colour != nil {
		value := *other.colour
		s.colour = &value
	}
	if other.caller.file != nil {
		value := *other.caller.file
		s.caller.file = &value
	}
	if other.caller.line != nil {
		value := *other.caller.line
		s.caller.line = &value
	}
	for _, kv := range other.context {
		for _, value := range kv.values {
			AddContext(kv.key, value)(s)
		}
	}
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		value := Info
		s.level = &value
	}

	if s.colour == nil {
		value := false
		s.colour = &value
	}

	if s.caller.file == nil {
		value := false
		s.caller.file = &value
	}

	if s.caller.line == nil {
		value := false
		s.caller.line = &value
	}
}

func getCallerString(settings callerSettings) (s string) {
	if !*settings.file && !*settings.line {
		return ""
	}

	const depth = 3
	_, file, line, ok := runtime.Caller(depth)
	if !ok {
		return "error"
	}

	var fields []string

	if *settings.file {
		fields = append(fields, filepath.Base(file))
	}

	if *settings.line {
		fields = append(fields, "L"+fmt.Sprint(line))
	}

	return strings.Join(fields, ":")
}
