package repository

import (
	"context"

	"github.com/map-annotation-service/internal/domain"
)

// LayerRepository - векторные слои для рисования, по одному на категорию.
// Черновики и подтверждённые маркеры живут здесь, как на слоях карты.
type LayerRepository interface {
	// AddDraft кладёт новую точку на слой категории и выдаёт ей ID
	AddDraft(ctx context.Context, category domain.Category, coord domain.Coordinate) (domain.Marker, error)

	// UpdateFeature заменяет атрибуты существующей точки слоя
	UpdateFeature(ctx context.Context, marker domain.Marker) error

	// RemoveFeature удаляет точку со слоя
	RemoveFeature(ctx context.Context, category domain.Category, id domain.FeatureID) error

	// GetFeatureByID ищет точку на слое категории
	GetFeatureByID(ctx context.Context, category domain.Category, id domain.FeatureID) (*domain.Marker, error)

	// Features возвращает точки слоя в порядке добавления
	Features(ctx context.Context, category domain.Category) ([]domain.Marker, error)

	// SetStyle назначает слою функцию стиля
	SetStyle(category domain.Category, style domain.StyleFunc) error

	// Style возвращает текущую функцию стиля слоя
	Style(category domain.Category) (domain.StyleFunc, error)
}
