package errors

import (
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/profilecheck/internal/uml"
	"github.com/ariel-frischer/profilecheck/internal/xmi"
)

// MissingInputFile reports a document path that does not exist.
func MissingInputFile(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("input document not found: %s", path),
		"Check the path and try again",
		"Export the model from your UML tool as XMI 2.x",
	)
}

// MissingInputArgument reports a command run without a document argument.
func MissingInputArgument(usage string) *CLIError {
	return NewArgumentErrorWithUsage(
		"no input document given",
		usage,
		"Pass the path of an XMI export",
	)
}

// NoInputsMatched reports glob patterns that matched no files.
func NoInputsMatched(patterns []string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no documents matched %s", strings.Join(patterns, ", ")),
		"Quote glob patterns so the shell does not expand them",
		"Use ** to match nested directories, e.g. 'models/**/*.xmi'",
	)
}

// ParseFailed reports a document that could not be parsed. The remediation
// depends on the failure.
func ParseFailed(path string, err error) *CLIError {
	var remediation []string
	switch {
	case goerrors.Is(err, xmi.ErrMalformed):
		remediation = []string{"The file is not well-formed XML; re-export it or check for truncation"}
	case goerrors.Is(err, xmi.ErrDocumentTooLarge):
		remediation = []string{"Raise max_document_bytes in the configuration or PROFILECHECK_MAX_DOCUMENT_BYTES"}
	case goerrors.Is(err, xmi.ErrTooDeep):
		remediation = []string{"The document nests elements deeper than the parser allows"}
	case goerrors.Is(err, uml.ErrUnknownVisibility):
		remediation = []string{"Visibility must be one of public, private, protected, package"}
	}
	return WrapWithMessage(err, Runtime, fmt.Sprintf("failed to parse %s", path), remediation...)
}

// InvalidFormat reports an unsupported output format.
func InvalidFormat(format string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid output format %q", format),
		"Use one of: text, json, yaml",
	)
}

// UnknownQuery reports an unrecognized query operation.
func UnknownQuery(op string, known []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown query %q", op),
		"profilecheck query <file> <operation> [args...]",
		"Available operations: "+strings.Join(known, ", "),
	)
}

// ConfigParseError reports a configuration file that could not be loaded.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration, fmt.Sprintf("failed to load config %s", path),
		"Check the file is valid JSON",
		"Run 'profilecheck config show' to see the effective configuration",
	)
}
