package main

import (
	"errors"
	"fmt"
	"os"

	"MoonSentinel/internal/model"
)

// Exit codes for the three analysis failure classes.
const (
	exitFailure         = 1
	exitDataUnavailable = 2
	exitNoOverlap       = 3
	exitComputation     = 4
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var (
		unavailable *model.DataUnavailableError
		noOverlap   *model.NoOverlapError
		computation *model.ComputationError
	)
	switch {
	case errors.As(err, &unavailable):
		return exitDataUnavailable
	case errors.As(err, &noOverlap):
		return exitNoOverlap
	case errors.As(err, &computation):
		return exitComputation
	}
	return exitFailure
}
