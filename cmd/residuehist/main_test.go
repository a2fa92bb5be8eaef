package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viniciusth/residuehist"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	m.Run()
}

func TestRunSquare(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-n", "10", "-log-level", "error"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "0  0  1  4  9  6  5  6  9  4  1\n")
	assert.Contains(t, stdout.String(), "How many numbers duplicate 2 times: 4\n")
}

func TestRunMultiplicativeNoDump(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-n", "5", "-mode", "mul", "-base", "2", "-dump=false", "-log-level", "error"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.NotContains(t, stdout.String(), "Occurrences")
	assert.Contains(t, stdout.String(), "How many numbers duplicate 1 times: 3\n")
	assert.Contains(t, stdout.String(), "Base 2: tail 0, period 4\n")
}

func TestRunAbortPrintsNothing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-n", "1", "-length", "25", "-overflow", "abort", "-log-level", "error"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "histogram capacity exceeded")
}

func TestRunInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"modulus", []string{"-n", "0"}, 1},
		{"mode", []string{"-mode", "cube"}, 2},
		{"policy", []string{"-overflow", "wrap"}, 2},
		{"width", []string{"-width", "0"}, 2},
		{"flag", []string{"-bogus"}, 2},
		{"log level", []string{"-log-level", "loud"}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-log-level", "error"}, tc.args...)
			assert.Equal(t, tc.code, run(args, &stdout, &stderr))
			assert.Empty(t, stdout.String())
		})
	}
}

func TestParseOptionsPad(t *testing.T) {
	var stderr bytes.Buffer
	k, err := loadConfig([]string{"-n", "91", "-width", "10", "-pad"}, &stderr)
	require.NoError(t, err)
	opts, err := parseOptions(k)
	require.NoError(t, err)
	assert.Equal(t, 91, opts.modulus)
	assert.Equal(t, 100, opts.length)
	assert.Equal(t, residuehist.ModeSquare, opts.mode)
	assert.Equal(t, "en", opts.lang.String())
}

func TestParseOptionsDefaults(t *testing.T) {
	var stderr bytes.Buffer
	k, err := loadConfig(nil, &stderr)
	require.NoError(t, err)
	opts, err := parseOptions(k)
	require.NoError(t, err)
	assert.Equal(t, 31571, opts.modulus)
	assert.Equal(t, 31571, opts.length)
	assert.Equal(t, residuehist.DefaultCapacity, opts.capacity)
	assert.Equal(t, residuehist.OverflowCount, opts.policy)
	assert.Equal(t, int64(residuehist.DefaultBase), opts.base)
	assert.True(t, opts.dump)
}

func TestRunExpand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-n", "10", "-dump=false", "-base", "10", "-expand", "31571", "-log-level", "error"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "    3 x^4 +     1 x^3 +     5 x^2 +     7 x +     1\n")
	assert.Contains(t, stdout.String(), "Expansion verified\n")
}

func TestRunExpandInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"-expand", "12abc"},
		{"-expand", "-5"},
		{"-expand", "100", "-base", "1"},
	} {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run(append([]string{"-n", "10", "-log-level", "error"}, args...), &stdout, &stderr), args)
		assert.Empty(t, stdout.String())
	}
}

func TestRunBadLogLevelMessage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-log-level", "loud"}, &stdout, &stderr))
	assert.Equal(t, "incorrect log level \"LOUD\"\n", stderr.String())
}
