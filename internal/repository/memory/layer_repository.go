package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/domain/repository"
	"github.com/map-annotation-service/internal/pkg/errors"
)

// vectorLayer - векторный источник одного слоя
type vectorLayer struct {
	features []domain.Marker
	style    domain.StyleFunc
}

func (l *vectorLayer) find(id domain.FeatureID) int {
	for i := range l.features {
		if l.features[i].ID == id {
			return i
		}
	}
	return -1
}

type layerRepository struct {
	mu     sync.RWMutex
	layers map[domain.Category]*vectorLayer
	// lastID - счётчик идентификаторов, общий для всех слоёв
	lastID atomic.Int64
}

// NewLayerRepository создаёт по пустому слою на каждую категорию
func NewLayerRepository() repository.LayerRepository {
	r := &layerRepository{
		layers: make(map[domain.Category]*vectorLayer),
	}
	for _, c := range domain.Categories() {
		r.layers[c] = &vectorLayer{}
	}
	return r
}

func (r *layerRepository) layer(category domain.Category) (*vectorLayer, error) {
	l, ok := r.layers[category]
	if !ok {
		return nil, fmt.Errorf("layer for category %d: %w", int(category), errors.ErrInvalidCategory)
	}
	return l, nil
}

func (r *layerRepository) AddDraft(ctx context.Context, category domain.Category, coord domain.Coordinate) (domain.Marker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.layer(category)
	if err != nil {
		return domain.Marker{}, err
	}

	m := domain.Marker{
		ID:         domain.FeatureID(r.lastID.Add(1)),
		Category:   category,
		Coordinate: coord,
	}
	l.features = append(l.features, m)
	return m, nil
}

func (r *layerRepository) UpdateFeature(ctx context.Context, marker domain.Marker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.layer(marker.Category)
	if err != nil {
		return err
	}

	i := l.find(marker.ID)
	if i < 0 {
		return fmt.Errorf("feature %d on %s: %w", marker.ID, marker.Category.Layer(), errors.ErrMarkerNotFound)
	}
	l.features[i] = marker
	return nil
}

func (r *layerRepository) RemoveFeature(ctx context.Context, category domain.Category, id domain.FeatureID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.layer(category)
	if err != nil {
		return err
	}

	i := l.find(id)
	if i < 0 {
		return fmt.Errorf("feature %d on %s: %w", id, category.Layer(), errors.ErrMarkerNotFound)
	}
	l.features = append(l.features[:i], l.features[i+1:]...)
	return nil
}

func (r *layerRepository) GetFeatureByID(ctx context.Context, category domain.Category, id domain.FeatureID) (*domain.Marker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, err := r.layer(category)
	if err != nil {
		return nil, err
	}

	i := l.find(id)
	if i < 0 {
		return nil, fmt.Errorf("feature %d on %s: %w", id, category.Layer(), errors.ErrMarkerNotFound)
	}
	m := l.features[i]
	return &m, nil
}

func (r *layerRepository) Features(ctx context.Context, category domain.Category) ([]domain.Marker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, err := r.layer(category)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Marker, len(l.features))
	copy(out, l.features)
	return out, nil
}

func (r *layerRepository) SetStyle(category domain.Category, style domain.StyleFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, err := r.layer(category)
	if err != nil {
		return err
	}
	l.style = style
	return nil
}

func (r *layerRepository) Style(category domain.Category) (domain.StyleFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, err := r.layer(category)
	if err != nil {
		return nil, err
	}
	if l.style == nil {
		return nil, fmt.Errorf("no style set on %s: %w", category.Layer(), errors.ErrInternalServer)
	}
	return l.style, nil
}
