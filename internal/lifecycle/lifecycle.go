package lifecycle

import (
	"context"
	"time"
)

// Run times fn and reports the result to handler. The error from fn is
// returned unchanged. A nil handler is allowed, and a panicking handler
// does not affect the result.
func Run(handler NotificationHandler, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	notifyCommandComplete(handler, name, err == nil, time.Since(start))
	return err
}

// RunWithContext is Run for context-aware commands. If ctx is already done,
// fn is not called and the context error is reported as a failure.
func RunWithContext(ctx context.Context, handler NotificationHandler, name string, fn func(context.Context) error) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		notifyCommandComplete(handler, name, false, time.Since(start))
		return err
	}

	err := fn(ctx)
	notifyCommandComplete(handler, name, err == nil, time.Since(start))
	return err
}

// RunStage runs one stage of a command and reports its outcome to handler.
func RunStage(handler NotificationHandler, name string, fn func() error) error {
	err := fn()
	notifyStageComplete(handler, name, err == nil)
	return err
}

func notifyCommandComplete(handler NotificationHandler, name string, success bool, duration time.Duration) {
	if handler == nil {
		return
	}
	defer func() { _ = recover() }()
	handler.OnCommandComplete(name, success, duration)
}

func notifyStageComplete(handler NotificationHandler, name string, success bool) {
	if handler == nil {
		return
	}
	defer func() { _ = recover() }()
	handler.OnStageComplete(name, success)
}
