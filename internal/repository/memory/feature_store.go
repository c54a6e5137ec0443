package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/domain/repository"
	"github.com/map-annotation-service/internal/pkg/errors"
)

type featureStore struct {
	mu      sync.RWMutex
	markers []domain.Marker
	index   map[domain.FeatureID]int
}

// NewFeatureStore создаёт пустое хранилище подтверждённых маркеров
func NewFeatureStore() repository.FeatureStore {
	return &featureStore{
		index: make(map[domain.FeatureID]int),
	}
}

func (s *featureStore) Add(ctx context.Context, marker domain.Marker) error {
	if !marker.Category.Valid() {
		return fmt.Errorf("add marker %d: %w", marker.ID, errors.ErrInvalidCategory)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[marker.ID]; ok {
		return fmt.Errorf("add marker %d: %w", marker.ID, errors.ErrDuplicateMarkerID)
	}

	s.index[marker.ID] = len(s.markers)
	s.markers = append(s.markers, marker)
	return nil
}

func (s *featureStore) GetByID(ctx context.Context, category domain.Category, id domain.FeatureID) (*domain.Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok || s.markers[i].Category != category {
		return nil, fmt.Errorf("marker %d in %s: %w", id, category, errors.ErrMarkerNotFound)
	}

	m := s.markers[i]
	return &m, nil
}

func (s *featureStore) All(ctx context.Context) ([]domain.Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Marker, len(s.markers))
	copy(out, s.markers)
	return out, nil
}
