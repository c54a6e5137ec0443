package worker

import (
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - общая часть воркеров: имя, consumer group, логгер и сигнал остановки.
// Встраивается в цикл рабочей области и в читателей стрима событий.
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewBaseWorker создает новый BaseWorker; consumerGroup пустой для воркеров без стрима
func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop закрывает канал остановки; повторный вызов ничего не делает
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopChan)
	})
	return nil
}

// IsStopped проверяет, остановлен ли воркер
func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
