package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	bgTasks := New(slog.Default(), 3, 10)
	bgTasks.Run()
	var done atomic.Bool
	bgTasks.Add(func() {
		done.Store(true)
	})
	assert.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.True(t, done.Load())
}

func TestShutdownDrainsQueue(t *testing.T) {
	bgTasks := New(slog.Default(), 2, 10)
	bgTasks.Run()
	var counter atomic.Int64
	for i := 0; i < 10; i++ {
		bgTasks.Add(func() {
			counter.Add(1)
		})
	}
	assert.NoError(t, bgTasks.Shutdown(context.Background()))
	assert.EqualValues(t, 10, counter.Load())
}

func TestRecoversFromPanic(t *testing.T) {
	bgTasks := New(slog.Default(), 1, 10)
	bgTasks.Run()
	bgTasks.Add(func() {
		panic("boom")
	})
	// worker exits after the panic, the queue still closes cleanly
	assert.NoError(t, bgTasks.Shutdown(context.Background()))
}
