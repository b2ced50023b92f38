package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHandler records notification calls for testing.
type mockHandler struct {
	mu           sync.Mutex
	commandCalls []commandCall
	stageCalls   []stageCall
	panics       bool
}

type commandCall struct {
	name     string
	success  bool
	duration time.Duration
}

type stageCall struct {
	name    string
	success bool
}

func (m *mockHandler) OnCommandComplete(name string, success bool, duration time.Duration) {
	if m.panics {
		panic("handler panic")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandCalls = append(m.commandCalls, commandCall{name, success, duration})
}

func (m *mockHandler) OnStageComplete(name string, success bool) {
	if m.panics {
		panic("handler panic")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stageCalls = append(m.stageCalls, stageCall{name, success})
}

func (m *mockHandler) commands() []commandCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]commandCall{}, m.commandCalls...)
}

func (m *mockHandler) stages() []stageCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stageCall{}, m.stageCalls...)
}

func TestRun(t *testing.T) {
	t.Parallel()

	errParse := errors.New("malformed document")

	tests := map[string]struct {
		fn          func() error
		wantErr     error
		wantSuccess bool
	}{
		"success": {
			fn:          func() error { return nil },
			wantSuccess: true,
		},
		"failure": {
			fn:      func() error { return errParse },
			wantErr: errParse,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			handler := &mockHandler{}

			err := Run(handler, "validate", tt.fn)
			assert.Equal(t, tt.wantErr, err)

			calls := handler.commands()
			require.Len(t, calls, 1)
			assert.Equal(t, "validate", calls[0].name)
			assert.Equal(t, tt.wantSuccess, calls[0].success)
			assert.GreaterOrEqual(t, calls[0].duration, time.Duration(0))
		})
	}
}

func TestRun_NilAndPanickingHandlers(t *testing.T) {
	t.Parallel()

	called := false
	require.NoError(t, Run(nil, "parse", func() error { called = true; return nil }))
	assert.True(t, called)

	errBoom := errors.New("boom")
	err := Run(&mockHandler{panics: true}, "parse", func() error { return errBoom })
	assert.Equal(t, errBoom, err, "a panicking handler must not change the result")
}

func TestRunWithContext(t *testing.T) {
	t.Parallel()

	t.Run("runs fn with live context", func(t *testing.T) {
		t.Parallel()
		handler := &mockHandler{}
		err := RunWithContext(context.Background(), handler, "watch", func(ctx context.Context) error {
			return ctx.Err()
		})
		require.NoError(t, err)
		calls := handler.commands()
		require.Len(t, calls, 1)
		assert.True(t, calls[0].success)
	})

	t.Run("skips fn with cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		handler := &mockHandler{}
		called := false
		err := RunWithContext(ctx, handler, "watch", func(context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
		calls := handler.commands()
		require.Len(t, calls, 1)
		assert.False(t, calls[0].success)
	})
}

func TestRunStage(t *testing.T) {
	t.Parallel()

	handler := &mockHandler{}
	errFindings := errors.New("2 findings")

	require.NoError(t, RunStage(handler, "parse", func() error { return nil }))
	assert.Equal(t, errFindings, RunStage(handler, "validate", func() error { return errFindings }))

	assert.Equal(t, []stageCall{{"parse", true}, {"validate", false}}, handler.stages())
	assert.Empty(t, handler.commands())

	assert.NoError(t, RunStage(&mockHandler{panics: true}, "parse", func() error { return nil }))
	assert.NoError(t, RunStage(nil, "parse", func() error { return nil }))
}

func TestRunDurationAccuracy(t *testing.T) {
	t.Parallel()

	handler := &mockHandler{}
	sleep := 20 * time.Millisecond
	require.NoError(t, Run(handler, "parse", func() error {
		time.Sleep(sleep)
		return nil
	}))

	calls := handler.commands()
	require.Len(t, calls, 1)
	assert.GreaterOrEqual(t, calls[0].duration, sleep)
}
