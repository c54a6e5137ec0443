package domain

import (
	"fmt"
	"strconv"

	"github.com/peterstace/simplefeatures/geom"
)

// FeatureID - идентификатор маркера, выдаётся слоем при рисовании точки
type FeatureID int64

func (id FeatureID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Coordinate - точка в проекции карты (EPSG:3857, метры)
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point возвращает координату как геометрию; NaN и Inf дают ошибку
func (c Coordinate) Point() (geom.Point, error) {
	return geom.NewPoint(geom.Coordinates{XY: geom.XY{X: c.X, Y: c.Y}, Type: geom.DimXY})
}

// Marker - точка, поставленная пользователем на карту
type Marker struct {
	ID          FeatureID  `json:"id"`
	Category    Category   `json:"category"`
	Coordinate  Coordinate `json:"coordinate"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

// GeoJSONFeature представляет маркер как GeoJSON Feature
func (m Marker) GeoJSONFeature() (geom.GeoJSONFeature, error) {
	pt, err := m.Coordinate.Point()
	if err != nil {
		return geom.GeoJSONFeature{}, fmt.Errorf("marker %d geometry: %w", m.ID, err)
	}
	return geom.GeoJSONFeature{
		ID:       m.ID.String(),
		Geometry: pt.AsGeometry(),
		Properties: map[string]interface{}{
			"title":             m.Title,
			"description":       m.Description,
			"digitizeLayerName": string(m.Category.Layer()),
			"category":          m.Category.String(),
		},
	}, nil
}
