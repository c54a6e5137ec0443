package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/map-annotation-service/internal/worker"
)

// loopWorker крутится до Stop, как настоящие воркеры
type loopWorker struct {
	*worker.BaseWorker
	started chan struct{}
}

func newLoopWorker(name string) *loopWorker {
	return &loopWorker{
		BaseWorker: worker.NewBaseWorker(name, "", zap.NewNop()),
		started:    make(chan struct{}),
	}
}

func (w *loopWorker) Start(ctx context.Context) error {
	close(w.started)
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stuckWorker игнорирует Stop
type stuckWorker struct {
	*worker.BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

func TestBaseWorker_StopIsIdempotent(t *testing.T) {
	w := worker.NewBaseWorker("map-workspace", "group", zap.NewNop())

	assert.Equal(t, "map-workspace", w.Name())
	assert.Equal(t, "group", w.ConsumerGroup())
	assert.False(t, w.IsStopped())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case <-w.StopChan():
	default:
		t.Fatal("stop channel must be closed")
	}
}

func TestWorkerManager_StartWithoutWorkers(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartAndStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	a, b := newLoopWorker("a"), newLoopWorker("b")
	m.Register(a)
	m.Register(b)
	assert.Equal(t, []string{"a", "b"}, m.Names())

	require.NoError(t, m.Start(context.Background()))
	<-a.started
	<-b.started

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_StopTimesOut(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop())
	m.SetShutdownTimeout(20 * time.Millisecond)

	stuck := &stuckWorker{
		BaseWorker: worker.NewBaseWorker("stuck", "", zap.NewNop()),
		release:    make(chan struct{}),
	}
	m.Register(stuck)
	require.NoError(t, m.Start(context.Background()))

	assert.Error(t, m.Stop())
	close(stuck.release)
}
