package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay orchestrates the display of progress indicators. Completion
// lines go to out; the spinner, when shown, animates on stderr.
type ProgressDisplay struct {
	capabilities TerminalCapabilities
	out          io.Writer
	currentStage *StageInfo
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
}

// NewProgressDisplay creates a progress display writing to out. A nil out
// discards all output.
func NewProgressDisplay(caps TerminalCapabilities, out io.Writer) *ProgressDisplay {
	if out == nil {
		out = io.Discard
	}
	return &ProgressDisplay{
		capabilities: caps,
		out:          out,
		symbols:      SelectSymbols(caps),
	}
}

// StartStage begins displaying progress for a stage
func (p *ProgressDisplay) StartStage(stage StageInfo) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	stage.Status = StageInProgress
	p.currentStage = &stage
	msg := buildStageMessage(stage, "Running")

	if p.capabilities.IsTTY {
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		p.spinner.Writer = os.Stderr
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
	} else {
		fmt.Fprintln(p.out, msg)
	}
	return nil
}

// CompleteStage stops the spinner and displays completion status. detail,
// when set, is appended in parentheses.
func (p *ProgressDisplay) CompleteStage(stage StageInfo, detail string) error {
	p.StopSpinner()

	mark := checkmark(p.symbols, p.capabilities.SupportsColor)
	counter := formatStageCounter(stage.Number, stage.TotalStages)
	line := fmt.Sprintf("%s %s %s stage complete", mark, counter, capitalize(stage.Name))
	if detail != "" {
		line += " (" + detail + ")"
	}
	fmt.Fprintln(p.out, line)

	p.currentStage = nil
	return nil
}

// FailStage stops the spinner and displays failure status
func (p *ProgressDisplay) FailStage(stage StageInfo, err error) error {
	p.StopSpinner()

	mark := failureMark(p.symbols, p.capabilities.SupportsColor)
	counter := formatStageCounter(stage.Number, stage.TotalStages)
	fmt.Fprintf(p.out, "%s %s %s stage failed: %v\n", mark, counter, capitalize(stage.Name), err)

	p.currentStage = nil
	return nil
}

// StopSpinner stops the spinner without showing completion/failure
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}

// Current returns the stage in progress, if any.
func (p *ProgressDisplay) Current() (StageInfo, bool) {
	if p.currentStage == nil {
		return StageInfo{}, false
	}
	return *p.currentStage, true
}
