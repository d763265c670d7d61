package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoonSentinel/internal/model"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitDataUnavailable, exitCode(&model.DataUnavailableError{}))
	assert.Equal(t, exitNoOverlap, exitCode(fmt.Errorf("run: %w", &model.NoOverlapError{})))
	assert.Equal(t, exitComputation, exitCode(&model.ComputationError{Err: errors.New("x")}))
	assert.Equal(t, exitFailure, exitCode(errors.New("other")))
}

func TestPeriodsCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"periods", "--config", filepath.Join(t.TempDir(), "none.yaml")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "6mo  6 Months")
	assert.Contains(t, out.String(), "2y   2 Years")
}

func TestAnalyzeCommand_RejectsBadPeriod(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"analyze", "--period", "10y", "--config", filepath.Join(t.TempDir(), "none.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported period")
}
