package markerlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/domain/repository"
	"github.com/map-annotation-service/internal/worker"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 20                     // максимум сообщений за раз
	defaultPoll      = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep       = time.Second
	journalSize      = 1000 // сколько последних событий держим в журнале
)

// ReadMode - способ чтения стрима
type ReadMode string

const (
	// ReadModeBatch - опрос ConsumeBatch с паузой на пустом стриме
	ReadModeBatch ReadMode = "batch"
	// ReadModeStream - блокирующее чтение через ConsumeStream
	ReadModeStream ReadMode = "stream"
)

// Stats - счётчики обработанных событий
type Stats struct {
	Confirmed int `json:"confirmed"`
	Discarded int `json:"discarded"`
	Skipped   int `json:"skipped"`
}

// MarkerLogWorker читает события маркеров из стрима и ведёт журнал
type MarkerLogWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	stream       string
	consumerName string
	batchSize    int64
	pollInterval time.Duration
	readMode     ReadMode

	mu      sync.RWMutex
	journal []domain.MarkerEvent
	stats   Stats
}

// Option - настройка MarkerLogWorker
type Option func(*MarkerLogWorker)

// WithReadMode выбирает способ чтения; неизвестный режим оставляет batch
func WithReadMode(mode ReadMode) Option {
	return func(w *MarkerLogWorker) {
		if mode == ReadModeStream {
			w.readMode = ReadModeStream
		}
	}
}

// NewMarkerLogWorker создает новый MarkerLogWorker
func NewMarkerLogWorker(
	streamRepo repository.StreamRepository,
	stream string,
	consumerGroup string,
	batchSize int,
	pollInterval time.Duration,
	logger *zap.Logger,
	opts ...Option,
) *MarkerLogWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d-%s", hostname, os.Getpid(), uuid.NewString()[:8])

	if stream == "" {
		stream = domain.StreamMarkerEvents
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if pollInterval <= 0 {
		pollInterval = defaultPoll
	}

	w := &MarkerLogWorker{
		BaseWorker:   worker.NewBaseWorker("marker-event-log", consumerGroup, logger),
		streamRepo:   streamRepo,
		stream:       stream,
		consumerName: consumerName,
		batchSize:    int64(batchSize),
		pollInterval: pollInterval,
		readMode:     ReadModeBatch,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ReadMode возвращает способ чтения стрима
func (w *MarkerLogWorker) ReadMode() ReadMode {
	return w.readMode
}

// Start запускает воркер
func (w *MarkerLogWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting MarkerLogWorker",
		zap.String("read_mode", string(w.readMode)),
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int64("max_batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	if w.readMode == ReadModeStream {
		return w.consumeStream(ctx)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.sleep(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.sleep(ctx, w.pollInterval)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает batch сообщений.
// Возвращает количество прочитанных сообщений
func (w *MarkerLogWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, w.stream, w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	messageIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		messageIDs = append(messageIDs, msg.ID)
		w.handle(msg)
	}

	// Битые сообщения тоже подтверждаем, чтобы не застревали
	if err := w.streamRepo.AckMessages(ctx, w.stream, w.ConsumerGroup(), messageIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages), nil
}

// consumeStream читает стрим блокирующим XREADGROUP до Stop или отмены ctx.
// Каждое сообщение подтверждается сразу после обработки.
func (w *MarkerLogWorker) consumeStream(ctx context.Context) error {
	logger := w.Logger()

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-streamCtx.Done():
		}
	}()

	messages, err := w.streamRepo.ConsumeStream(streamCtx, w.stream, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for msg := range messages {
		w.handle(msg)
		if err := w.streamRepo.AckMessage(ctx, w.stream, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	if w.IsStopped() {
		logger.Info("Worker stopped")
		return nil
	}
	return ctx.Err()
}

func (w *MarkerLogWorker) handle(msg domain.StreamMessage) {
	logger := w.Logger()

	event, err := parseMessage(msg)
	if err != nil {
		logger.Warn("Failed to parse message, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.record(nil)
		return
	}

	logger.Info("Marker event",
		zap.String("type", string(event.Type)),
		zap.Stringer("event_id", event.EventID),
		zap.Stringer("marker_id", event.Marker.ID),
		zap.Stringer("category", event.Marker.Category),
		zap.String("title", event.Marker.Title))
	w.record(event)
}

// Journal возвращает копию последних событий в порядке поступления
func (w *MarkerLogWorker) Journal() []domain.MarkerEvent {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]domain.MarkerEvent, len(w.journal))
	copy(out, w.journal)
	return out
}

// Stats возвращает счётчики
func (w *MarkerLogWorker) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *MarkerLogWorker) record(event *domain.MarkerEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if event == nil {
		w.stats.Skipped++
		return
	}

	switch event.Type {
	case domain.MarkerEventConfirmed:
		w.stats.Confirmed++
	case domain.MarkerEventDiscarded:
		w.stats.Discarded++
	}

	w.journal = append(w.journal, *event)
	if len(w.journal) > journalSize {
		w.journal = w.journal[len(w.journal)-journalSize:]
	}
}

func (w *MarkerLogWorker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-w.StopChan():
	case <-ctx.Done():
	}
}

// parseMessage парсит сообщение из стрима в MarkerEvent
func parseMessage(msg domain.StreamMessage) (*domain.MarkerEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("empty 'data' field")
	}

	var event domain.MarkerEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.Type != domain.MarkerEventConfirmed && event.Type != domain.MarkerEventDiscarded {
		return nil, fmt.Errorf("unknown event type %q", event.Type)
	}

	return &event, nil
}
