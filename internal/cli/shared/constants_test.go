package shared

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/ariel-frischer/profilecheck/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":              {err: nil, want: ExitSuccess},
		"exit error":       {err: NewExitError(ExitFindings), want: ExitFindings},
		"argument":         {err: apperrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"configuration":    {err: apperrors.NewConfigError("bad"), want: ExitInvalidArguments},
		"prerequisite":     {err: apperrors.MissingInputFile("m.xmi"), want: ExitMissingInput},
		"runtime":          {err: apperrors.NewRuntimeError("bad"), want: ExitParseFailed},
		"wrapped cli":      {err: fmt.Errorf("run: %w", apperrors.NewPrerequisiteError("x")), want: ExitMissingInput},
		"plain error":      {err: errors.New("boom"), want: ExitFindings},
		"invalid argument": {err: NewExitError(ExitInvalidArguments), want: ExitInvalidArguments},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "exit code 5", NewExitError(ExitParseFailed).Error())
}

func TestIsExitError(t *testing.T) {
	t.Parallel()
	assert.True(t, IsExitError(NewExitError(ExitFindings)))
	assert.False(t, IsExitError(errors.New("exit code 1")))
	assert.False(t, IsExitError(nil))
}
