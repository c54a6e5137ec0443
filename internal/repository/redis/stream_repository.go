package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// payloadField - поле записи стрима с JSON события
const payloadField = "data"

const (
	defaultReadCount = 10
	defaultBlock     = time.Second
	readErrorBackoff = time.Second
)

type streamRepository struct {
	client *redis.Client
	logger *zap.Logger

	maxLen    int64
	readCount int64
	block     time.Duration
}

// StreamOption - настройка репозитория стримов
type StreamOption func(*streamRepository)

// WithMaxLen ограничивает длину стрима (приблизительно, MAXLEN ~)
func WithMaxLen(n int64) StreamOption {
	return func(r *streamRepository) { r.maxLen = n }
}

// WithBlock задаёт время ожидания XREADGROUP в ConsumeStream
func WithBlock(d time.Duration) StreamOption {
	return func(r *streamRepository) { r.block = d }
}

// NewStreamRepository создает репозиторий Redis Streams для событий маркеров
func NewStreamRepository(client *redis.Client, logger *zap.Logger, opts ...StreamOption) repository.StreamRepository {
	r := &streamRepository{
		client:    client,
		logger:    logger,
		readCount: defaultReadCount,
		block:     defaultBlock,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateConsumerGroup создаёт группу с позиции "$" и сам стрим, если его нет.
// Существующая группа не ошибка.
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает новые сообщения группы в канал до отмены контекста
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	out := make(chan domain.StreamMessage, r.readCount)

	go func() {
		defer close(out)

		for ctx.Err() == nil {
			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    r.readCount,
				Block:    r.block,
			}).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					break
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				sleepCtx(ctx, readErrorBackoff)
				continue
			}

			for _, msg := range r.decode(ctx, stream, group, result) {
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}

		r.logger.Info("Stream consumer stopped",
			zap.String("stream", stream),
			zap.String("consumer", consumer))
	}()

	return out, nil
}

// ConsumeBatch читает до count новых сообщений без ожидания
func (r *streamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    count,
		Block:    -1,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}

	return r.decode(ctx, stream, group, result), nil
}

// decode достаёт JSON из записей; записи без поля data сразу подтверждаются,
// чтобы не висели в PEL
func (r *streamRepository) decode(ctx context.Context, stream, group string, result []redis.XStream) []domain.StreamMessage {
	var messages []domain.StreamMessage
	for _, s := range result {
		for _, msg := range s.Messages {
			data, ok := msg.Values[payloadField].(string)
			if !ok {
				r.logger.Warn("Message has no payload, acking",
					zap.String("stream", stream),
					zap.String("message_id", msg.ID))
				_ = r.client.XAck(ctx, stream, group, msg.ID).Err()
				continue
			}
			messages = append(messages, domain.StreamMessage{ID: msg.ID, Data: data})
		}
	}
	return messages
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return r.AckMessages(ctx, stream, group, []string{messageID})
}

// AckMessages подтверждает обработку нескольких сообщений одной командой
func (r *streamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	if err := r.client.XAck(ctx, stream, group, messageIDs...).Err(); err != nil {
		r.logger.Error("Failed to acknowledge messages",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Strings("message_ids", messageIDs),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge messages: %w", err)
	}
	return nil
}

// PublishToStream сериализует data в JSON и добавляет запись в стрим
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{payloadField: string(payload)},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}

	id, err := r.client.XAdd(ctx, args).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id))
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
