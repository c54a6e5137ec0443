package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/usecase"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func TestStreamEventPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	streamRepo := &MockStreamRepository{}
	publisher := usecase.NewStreamEventPublisher(streamRepo, "", zap.NewNop())

	event := domain.NewMarkerEvent(domain.MarkerEventConfirmed, domain.Marker{ID: 7, Category: domain.CategoryChecked})

	t.Run("publishes to default stream", func(t *testing.T) {
		streamRepo.On("PublishToStream", ctx, domain.StreamMarkerEvents, event).Return(nil).Once()

		err := publisher.Publish(ctx, event)

		assert.NoError(t, err)
		streamRepo.AssertExpectations(t)
	})

	t.Run("wraps stream errors", func(t *testing.T) {
		streamErr := errors.New("connection refused")
		streamRepo.On("PublishToStream", ctx, domain.StreamMarkerEvents, event).Return(streamErr).Once()

		err := publisher.Publish(ctx, event)

		assert.ErrorIs(t, err, streamErr)
		streamRepo.AssertExpectations(t)
	})
}
