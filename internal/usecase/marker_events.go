package usecase

import (
	"context"
	"fmt"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/domain/repository"
	"go.uber.org/zap"
)

// MarkerEventPublisher - получатель событий жизненного цикла маркеров
type MarkerEventPublisher interface {
	Publish(ctx context.Context, event *domain.MarkerEvent) error
}

// StreamEventPublisher публикует события маркеров в Redis Stream
type StreamEventPublisher struct {
	streamRepo repository.StreamRepository
	stream     string
	logger     *zap.Logger
}

func NewStreamEventPublisher(streamRepo repository.StreamRepository, stream string, logger *zap.Logger) *StreamEventPublisher {
	if stream == "" {
		stream = domain.StreamMarkerEvents
	}
	return &StreamEventPublisher{
		streamRepo: streamRepo,
		stream:     stream,
		logger:     logger,
	}
}

func (p *StreamEventPublisher) Publish(ctx context.Context, event *domain.MarkerEvent) error {
	if err := p.streamRepo.PublishToStream(ctx, p.stream, event); err != nil {
		return fmt.Errorf("publish %s for marker %d: %w", event.Type, event.Marker.ID, err)
	}

	p.logger.Debug("Marker event published",
		zap.String("stream", p.stream),
		zap.String("type", string(event.Type)),
		zap.Stringer("marker_id", event.Marker.ID))
	return nil
}
