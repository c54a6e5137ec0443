package repository

import (
	"context"

	"github.com/map-annotation-service/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// ConsumeStream читает сообщения из стрима
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// ConsumeBatch читает до count сообщений без ожидания
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// AckMessages подтверждает обработку нескольких сообщений
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
