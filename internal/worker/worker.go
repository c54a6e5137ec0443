package worker

import (
	"context"
)

// Worker - долгоживущий цикл под управлением WorkerManager
type Worker interface {
	// Start блокируется до Stop или отмены контекста
	Start(ctx context.Context) error

	// Stop сигнализирует циклу завершиться, не дожидаясь его
	Stop() error

	Name() string
}
