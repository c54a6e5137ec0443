package dto

// StartDrawingRequest - выбор инструмента рисования категории
type StartDrawingRequest struct {
	Category string `json:"category" validate:"required,category"`
}

// DrawEndRequest - точка поставлена на карту (EPSG:3857)
type DrawEndRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ConfirmMarkerRequest - OK в окне подтверждения; пустые строки допустимы
type ConfirmMarkerRequest struct {
	Title       string `json:"title" validate:"max=256"`
	Description string `json:"description" validate:"max=4096"`
}

// FeatureRefRequest - ссылка на точку слоя (клик по карте или строке таблицы).
// Пустая категория в запросе выбора означает снятие выбора.
type FeatureRefRequest struct {
	Category string `json:"category" validate:"omitempty,category"`
	ID       int64  `json:"id" validate:"required_with=Category,gte=0"`
}

// IsEmpty - выбор пуст
func (r FeatureRefRequest) IsEmpty() bool {
	return r.Category == ""
}

// ModeRequest - переключение режима выбора
type ModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=grouped ungrouped"`
}

// IconScaleRequest - чекбокс и/или слайдер масштаба иконки.
// Отсутствующее поле не меняет текущую настройку.
type IconScaleRequest struct {
	Enabled  *bool    `json:"enabled,omitempty" validate:"required_without=Exponent"`
	Exponent *float64 `json:"exponent,omitempty" validate:"omitempty,min=0.5,max=10,halfstep"`
}

// GridQuery - параметры таблицы маркеров
type GridQuery struct {
	Search string `query:"search" validate:"max=256"`
	Order  string `query:"order" validate:"omitempty,oneof=ascend descend"`
}

// MeasureRequest - точки измерения в проекции карты (EPSG:3857)
type MeasureRequest struct {
	Points [][2]float64 `json:"points" validate:"required,min=2"`
}
