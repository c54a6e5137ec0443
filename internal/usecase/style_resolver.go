package usecase

import (
	"fmt"
	"math"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/errors"
)

// IconBasePath - путь, по которому фронтенд отдаёт SVG иконки маркеров
const IconBasePath = "/static/img/"

// AnchorIconFor возвращает иконку категории, привязанную к низу по центру
func AnchorIconFor(category domain.Category) domain.AnchorIcon {
	return domain.AnchorIcon{
		Src:    IconBasePath + category.Icon(),
		Anchor: domain.BottomCenterAnchor,
	}
}

// ResolveStyle строит функцию стиля слоя категории.
// Выключенное масштабирование даёт постоянный масштаб 1.
// Включенное - 1/resolution^(1/exponent): при отдалении иконка уменьшается,
// чем больше показатель, тем положе кривая.
func ResolveStyle(category domain.Category, setting domain.IconScaleSetting, icon domain.AnchorIcon) (domain.StyleFunc, error) {
	if !category.Valid() {
		return nil, errors.ErrInvalidCategory
	}
	if err := setting.Validate(); err != nil {
		return nil, fmt.Errorf("%s icon: %v: %w", category, err, errors.ErrInvalidIconScale)
	}

	return func(resolution float64) (domain.IconStyle, error) {
		if !(resolution > 0) || math.IsInf(resolution, 1) {
			return domain.IconStyle{}, errors.ErrInvalidResolution
		}

		scale := 1.0
		if setting.Enabled {
			scale = 1 / math.Pow(resolution, 1/setting.Exponent)
		}

		return domain.IconStyle{Icon: icon, Scale: scale}, nil
	}, nil
}
