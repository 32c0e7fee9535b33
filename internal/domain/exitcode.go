// Package domain provides core types for the code scanner.
package domain

// ExitCode represents the exit status of a non-interactive scan.
type ExitCode int

const (
	// ExitClean indicates a successful scan with no issues.
	ExitClean ExitCode = 0
	// ExitFindings indicates a successful scan that reported issues.
	ExitFindings ExitCode = 1
	// ExitError indicates a local error (bad input, config, unreachable service).
	ExitError ExitCode = 2
	// ExitServiceFailure indicates the service rejected the request or returned a malformed body.
	ExitServiceFailure ExitCode = 3
	// ExitInterrupted indicates the scan was interrupted by a signal.
	ExitInterrupted ExitCode = 130
)

// Int returns the exit code as an int for use with os.Exit.
func (e ExitCode) Int() int {
	return int(e)
}
