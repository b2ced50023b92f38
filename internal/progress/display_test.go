package progress_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ariel-frischer/profilecheck/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var plainCaps = progress.TerminalCapabilities{}

func TestProgressDisplay_StartStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stage        progress.StageInfo
		wantContains []string
		wantErr      bool
	}{
		"parse stage with subject": {
			stage:        progress.StageInfo{Name: "parse", Number: 1, TotalStages: 2, Subject: "shop.xmi"},
			wantContains: []string{"[1/2]", "Running Parse stage", "shop.xmi"},
		},
		"validate stage": {
			stage:        progress.StageInfo{Name: "validate", Number: 2, TotalStages: 2},
			wantContains: []string{"[2/2]", "Validate"},
		},
		"invalid stage": {
			stage:   progress.StageInfo{Name: "", Number: 1, TotalStages: 2},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplay(plainCaps, &buf)
			err := display.StartStage(tt.stage)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, buf.String())
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}

			current, ok := display.Current()
			require.True(t, ok)
			assert.Equal(t, progress.StageInProgress, current.Status)
		})
	}
}

func TestProgressDisplay_CompleteStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps   progress.TerminalCapabilities
		detail string
		want   string
	}{
		"plain without detail": {
			caps: plainCaps,
			want: "[OK] [2/2] Validate stage complete\n",
		},
		"plain with detail": {
			caps:   plainCaps,
			detail: "3 findings",
			want:   "[OK] [2/2] Validate stage complete (3 findings)\n",
		},
		"unicode without color": {
			caps: progress.TerminalCapabilities{SupportsUnicode: true},
			want: "✓ [2/2] Validate stage complete\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplay(tt.caps, &buf)
			stage := progress.StageInfo{Name: "validate", Number: 2, TotalStages: 2}
			require.NoError(t, display.CompleteStage(stage, tt.detail))
			assert.Equal(t, tt.want, buf.String())

			_, ok := display.Current()
			assert.False(t, ok)
		})
	}
}

func TestProgressDisplay_CompleteStageColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	caps := progress.TerminalCapabilities{SupportsUnicode: true, SupportsColor: true}
	display := progress.NewProgressDisplay(caps, &buf)
	require.NoError(t, display.CompleteStage(progress.StageInfo{Name: "parse", Number: 1, TotalStages: 2}, ""))

	assert.Contains(t, buf.String(), "\x1b[32m✓")
}

func TestProgressDisplay_FailStage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	display := progress.NewProgressDisplay(plainCaps, &buf)
	stage := progress.StageInfo{Name: "parse", Number: 1, TotalStages: 2}
	require.NoError(t, display.StartStage(stage))
	require.NoError(t, display.FailStage(stage, errors.New("malformed document")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[FAIL] [1/2] Parse stage failed: malformed document", lines[1])
}

func TestProgressDisplay_NilWriter(t *testing.T) {
	t.Parallel()

	display := progress.NewProgressDisplay(plainCaps, nil)
	stage := progress.StageInfo{Name: "parse", Number: 1, TotalStages: 1}
	assert.NoError(t, display.StartStage(stage))
	assert.NoError(t, display.CompleteStage(stage, ""))
}

func TestStopSpinnerWithoutStart(t *testing.T) {
	t.Parallel()

	display := progress.NewProgressDisplay(plainCaps, nil)
	display.StopSpinner()
	display.StopSpinner()
}
