package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseLevel(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		s     string
		level Level
		err   error
	}{
		"trce":      {s: "trce", level: Trace},
		"dbug":      {s: "dbug", level: Debug},
		"long_form": {s: "debug", err: ErrLevelNotRecognised},
		"upper":     {s: "INFO", level: Info},
		"warn":      {s: "warn", level: Warn},
		"eror":      {s: "eror", level: Error},
		"crit":      {s: "crit", level: Critical},
		"not_real":  {s: "loud", err: ErrLevelNotRecognised},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			level, err := ParseLevel(testCase.s)
			if testCase.err != nil {
				require.ErrorIs(t, err, testCase.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.level, level)
		})
	}
}

func Test_Level_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DBUG", Debug.String())
	assert.Equal(t, "???", Level(200).String())
	assert.Equal(t, "???", Level(200).ColouredString())
}
