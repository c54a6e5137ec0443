package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout - сколько ждём завершения воркеров при остановке
const DefaultShutdownTimeout = 30 * time.Second

// WorkerManager запускает воркеры в отдельных горутинах и останавливает их вместе
type WorkerManager struct {
	workers         []Worker
	logger          *zap.Logger
	shutdownTimeout time.Duration
	wg              sync.WaitGroup
	mu              sync.Mutex
}

// NewWorkerManager создает новый WorkerManager
func NewWorkerManager(logger *zap.Logger) *WorkerManager {
	return &WorkerManager{
		workers:         make([]Worker, 0),
		logger:          logger,
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// SetShutdownTimeout меняет время ожидания в Stop
func (m *WorkerManager) SetShutdownTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdownTimeout = d
}

// Register регистрирует воркер
func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

// Names возвращает имена зарегистрированных воркеров
func (m *WorkerManager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.workers))
	for i, w := range m.workers {
		names[i] = w.Name()
	}
	return names
}

// Start запускает все зарегистрированные воркеры
func (m *WorkerManager) Start(ctx context.Context) error {
	workers := m.snapshot()
	if len(workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, worker := range workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()

			m.logger.Info("Starting worker", zap.String("name", w.Name()))
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				m.logger.Error("Worker failed",
					zap.String("name", w.Name()),
					zap.Error(err))
			}
		}(worker)
	}

	return nil
}

// Stop останавливает все воркеры и ждёт их не дольше shutdownTimeout
func (m *WorkerManager) Stop() error {
	workers := m.snapshot()
	m.mu.Lock()
	timeout := m.shutdownTimeout
	m.mu.Unlock()

	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, worker := range workers {
		if err := worker.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", worker.Name()),
				zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("All workers stopped gracefully")
	case <-time.After(timeout):
		m.logger.Warn("Workers shutdown timed out",
			zap.Duration("timeout", timeout))
		return fmt.Errorf("workers shutdown timed out after %v", timeout)
	}

	return nil
}

func (m *WorkerManager) snapshot() []Worker {
	m.mu.Lock()
	defer m.mu.Unlock()

	workers := make([]Worker, len(m.workers))
	copy(workers, m.workers)
	return workers
}
