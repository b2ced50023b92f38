package progress_test

import (
	"strings"
	"testing"

	"github.com/ariel-frischer/profilecheck/internal/progress"
)

// TestStageStatus_String tests the String() method of StageStatus enum
func TestStageStatus_String(t *testing.T) {
	tests := []struct {
		name   string
		status progress.StageStatus
		want   string
	}{
		{name: "pending status", status: progress.StagePending, want: "pending"},
		{name: "in_progress status", status: progress.StageInProgress, want: "in_progress"},
		{name: "completed status", status: progress.StageCompleted, want: "completed"},
		{name: "failed status", status: progress.StageFailed, want: "failed"},
		{name: "unknown status", status: progress.StageStatus(42), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.status.String()
			if got != tt.want {
				t.Errorf("StageStatus.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestStageInfo_Validate tests all validation rules for StageInfo
func TestStageInfo_Validate(t *testing.T) {
	tests := []struct {
		name    string
		stage   progress.StageInfo
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid stage info",
			stage: progress.StageInfo{Name: progress.StageParse, Number: 1, TotalStages: 2},
		},
		{
			name:    "empty name",
			stage:   progress.StageInfo{Number: 1, TotalStages: 2},
			wantErr: true,
			errMsg:  "stage name cannot be empty",
		},
		{
			name:    "zero number",
			stage:   progress.StageInfo{Name: "parse", Number: 0, TotalStages: 2},
			wantErr: true,
			errMsg:  "stage number must be > 0",
		},
		{
			name:    "number exceeds total stages",
			stage:   progress.StageInfo{Name: "parse", Number: 3, TotalStages: 2},
			wantErr: true,
			errMsg:  "stage number cannot exceed total stages",
		},
		{
			name:    "zero total stages",
			stage:   progress.StageInfo{Name: "parse", Number: 1, TotalStages: 0},
			wantErr: true,
			errMsg:  "total stages must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stage.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %q, want containing %q", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestStages(t *testing.T) {
	stages := progress.Stages("shop.xmi", progress.StageParse, progress.StageValidate)

	if len(stages) != 2 {
		t.Fatalf("Stages() returned %d stages, want 2", len(stages))
	}
	for i, stage := range stages {
		if stage.Number != i+1 || stage.TotalStages != 2 || stage.Subject != "shop.xmi" {
			t.Errorf("stage %d = %+v", i, stage)
		}
		if err := stage.Validate(); err != nil {
			t.Errorf("stage %d invalid: %v", i, err)
		}
	}
	if stages[1].Name != progress.StageValidate {
		t.Errorf("second stage = %q, want %q", stages[1].Name, progress.StageValidate)
	}
}
