package cli

import (
	"io"

	"github.com/ariel-frischer/profilecheck/internal/lifecycle"
	"github.com/ariel-frischer/profilecheck/internal/progress"
)

// stageRunner runs the stages of one document check, reporting each to the
// lifecycle handler and the progress display.
type stageRunner struct {
	display *progress.ProgressDisplay
	handler lifecycle.NotificationHandler
	stages  map[string]progress.StageInfo
}

func (s *session) stages(w io.Writer, subject string, names ...string) *stageRunner {
	r := &stageRunner{
		display: s.progress(w),
		handler: s.handler,
		stages:  make(map[string]progress.StageInfo, len(names)),
	}
	for _, stage := range progress.Stages(subject, names...) {
		r.stages[stage.Name] = stage
	}
	return r
}

// run executes the named stage. fn returns a short detail for the
// completion line.
func (r *stageRunner) run(name string, fn func() (string, error)) error {
	stage, ok := r.stages[name]
	if ok && r.display != nil {
		if err := r.display.StartStage(stage); err != nil {
			return err
		}
	}

	var detail string
	err := lifecycle.RunStage(r.handler, name, func() error {
		var err error
		detail, err = fn()
		return err
	})

	if ok && r.display != nil {
		if err != nil {
			r.display.FailStage(stage, err)
		} else {
			r.display.CompleteStage(stage, detail)
		}
	}
	return err
}
