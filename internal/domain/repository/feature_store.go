package repository

import (
	"context"

	"github.com/map-annotation-service/internal/domain"
)

// FeatureStore - упорядоченное хранилище подтверждённых маркеров
type FeatureStore interface {
	// Add добавляет подтверждённый маркер в конец; повтор ID - ошибка
	Add(ctx context.Context, marker domain.Marker) error

	// GetByID возвращает маркер с данным ID в пределах категории
	GetByID(ctx context.Context, category domain.Category, id domain.FeatureID) (*domain.Marker, error)

	// All возвращает все маркеры в порядке добавления
	All(ctx context.Context) ([]domain.Marker, error)
}
