// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingWorker runs until its context is cancelled and counts calls.
type blockingWorker struct {
	runCount atomic.Int32
	stopped  atomic.Bool
}

func (b *blockingWorker) Run(ctx context.Context) error {
	b.runCount.Add(1)
	<-ctx.Done()
	b.stopped.Store(true)
	return nil
}

func runWithTimeout(t *testing.T, ws *Workers, ctx context.Context) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop")
		return nil
	}
}

func TestWorkers_Run_StopsAllWhenOneReturns(t *testing.T) {
	w1 := &blockingWorker{}
	w2 := &blockingWorker{}
	finisher := Func(func(context.Context) error { return nil })

	err := runWithTimeout(t, New(w1, finisher, w2), context.Background())
	require.NoError(t, err)

	for i, w := range []*blockingWorker{w1, w2} {
		assert.Equal(t, int32(1), w.runCount.Load(), "worker[%d]", i)
		assert.True(t, w.stopped.Load(), "worker[%d]", i)
	}
}

func TestWorkers_Run_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	w := &blockingWorker{}

	err := runWithTimeout(t, New(w, Func(func(context.Context) error { return boom })), context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, w.stopped.Load())
}

func TestWorkers_Run_LogsErrorWithContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	err := runWithTimeout(t, New(Func(func(context.Context) error { return errors.New("boom") })), ctx)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "worker stopped with error")
	assert.Contains(t, buf.String(), "boom")
}

func TestWorkers_Run_ParentCancel(t *testing.T) {
	w := &blockingWorker{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runWithTimeout(t, New(w), ctx)
	require.NoError(t, err)
	assert.True(t, w.stopped.Load())
}

func TestWorkers_Run_Empty(t *testing.T) {
	// Should return immediately on an empty group
	require.NoError(t, runWithTimeout(t, New(), context.Background()))
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	require.NoError(t, runWithTimeout(t, ws, context.Background()))
}

func TestNew_SkipsNilWorkers(t *testing.T) {
	ws := New(nil, &blockingWorker{}, nil)
	assert.Len(t, ws.workers, 1)
}
