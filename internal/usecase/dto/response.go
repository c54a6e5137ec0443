package dto

import "github.com/map-annotation-service/internal/domain"

// GridRow - строка таблицы маркеров
type GridRow struct {
	Key         int64           `json:"key"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	Lon         float64         `json:"lon"`
	Lat         float64         `json:"lat"`
	// Highlights - найденные вхождения строки поиска в title (в рунах)
	Highlights []TextRange `json:"highlights,omitempty"`
}

// TextRange - полуинтервал [Start, End) в рунах
type TextRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// GridResponse - ответ таблицы
type GridResponse struct {
	Rows   []GridRow `json:"rows"`
	Total  int       `json:"total"`
	Search string    `json:"search,omitempty"`
	Order  string    `json:"order"`
}

// IconSettingView - настройка иконки категории для панели
type IconSettingView struct {
	Category domain.Category         `json:"category"`
	Layer    domain.LayerName        `json:"layer"`
	Icon     domain.AnchorIcon       `json:"icon"`
	Setting  domain.IconScaleSetting `json:"setting"`
}

// StyleResponse - стиль слоя при заданном разрешении
type StyleResponse struct {
	Category   domain.Category  `json:"category"`
	Resolution float64          `json:"resolution"`
	Style      domain.IconStyle `json:"style"`
}

// WorkspaceSnapshot - состояние рабочей области карты
type WorkspaceSnapshot struct {
	Selection    domain.Selection  `json:"selection"`
	Creation     domain.Creation   `json:"creation"`
	View         domain.MapView    `json:"view"`
	Overlay      domain.Overlay    `json:"overlay"`
	IconSettings []IconSettingView `json:"icon_settings"`
	MarkerCount  int               `json:"marker_count"`
}

// PositionResponse - координата курсора в EPSG:4326
type PositionResponse struct {
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
	Formatted string  `json:"formatted"`
}

// MeasureResponse - результат измерения
type MeasureResponse struct {
	// Length - длина в метрах (для линии и периметра полигона)
	Length float64 `json:"length"`
	// Area - площадь в квадратных метрах, только для полигона
	Area   float64 `json:"area,omitempty"`
	Points int     `json:"points"`
}
