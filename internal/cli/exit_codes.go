package cli

import (
	"github.com/ariel-frischer/profilecheck/internal/cli/shared"
)

// Exit codes for the profilecheck CLI (re-exported from shared)
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitFindings indicates validation reported findings
	ExitFindings = shared.ExitFindings

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingInput indicates an input document does not exist
	ExitMissingInput = shared.ExitMissingInput

	// ExitParseFailed indicates a document could not be parsed
	ExitParseFailed = shared.ExitParseFailed
)

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
