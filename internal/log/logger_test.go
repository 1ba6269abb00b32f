package log

import (
	"bytes"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// RFC3339 format
const timePrefixRegex = `^[0-9]+-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(Z|[\+\-][0-9]{2}:[0-9]{2}) `

func Test_Logger_log(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		options     []Option
		logFunc     func(l *Logger)
		outputRegex string
	}{
		"info_at_info": {
			options:     []Option{SetLevel(Info)},
			logFunc:     func(l *Logger) { l.Infof("signed with %s", "secp256k1") },
			outputRegex: timePrefixRegex + `INFO signed with secp256k1\n$`,
		},
		"debug_filtered_at_info": {
			options:     []Option{SetLevel(Info)},
			logFunc:     func(l *Logger) { l.Debugf("attempt %d", 2) },
			outputRegex: `^$`,
		},
		"debug_at_trace": {
			options:     []Option{SetLevel(Trace)},
			logFunc:     func(l *Logger) { l.Debug("some words") },
			outputRegex: timePrefixRegex + `DBUG some words\n$`,
		},
		"context": {
			options: []Option{
				SetLevel(Info),
				AddContext("pkg", "ecdsasig"),
				AddContext("pkg", "signer"),
				AddContext("backend", "pure"),
			},
			logFunc:     func(l *Logger) { l.Warn("careful") },
			outputRegex: timePrefixRegex + `WARN careful\tpkg=ecdsasig,signer backend=pure\n$`,
		},
		"caller": {
			options:     []Option{SetCallerFile(true), SetCallerLine(true)},
			logFunc:     func(l *Logger) { l.Errorf("boom") },
			outputRegex: timePrefixRegex + `EROR logger_test.go:L[0-9]+ boom\n$`,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buffer := bytes.NewBuffer(nil)
			options := append([]Option{SetWriter(buffer)}, testCase.options...)
			logger := New(options...)

			testCase.logFunc(logger)

			assert.Regexp(t, regexp.MustCompile(testCase.outputRegex), buffer.String())
		})
	}
}

func Test_Logger_New_child(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	parent := New(SetWriter(buffer), SetLevel(Debug), AddContext("pkg", "parent"))
	child := parent.New(AddContext("pkg", "child"), SetLevel(Warn))

	child.Infof("filtered")
	child.Warnf("kept")
	parent.Debugf("parent")

	expected := regexp.MustCompile(timePrefixRegex + `WARN kept\tpkg=parent,child\n` +
		`[0-9]+-.+ DBUG parent\tpkg=parent\n$`)
	assert.Regexp(t, expected, buffer.String())
}

func Test_Logger_Patch(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	parent := New(SetWriter(buffer), SetLevel(Info))
	child := parent.New()

	parent.Patch(SetLevel(Error))

	child.Warnf("dropped")
	parent.Warnf("dropped")
	child.Errorf("kept")

	assert.Regexp(t, regexp.MustCompile(timePrefixRegex+`EROR kept\n$`), buffer.String())
}

func Test_Logger_concurrent(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	logger := New(SetWriter(buffer))

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		child := logger.New()
		go func() {
			defer wg.Done()
			child.Info("line")
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, bytes.Count(buffer.Bytes(), []byte("INFO line\n")))
}
