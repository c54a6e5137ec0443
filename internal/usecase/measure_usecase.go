package usecase

import (
	"fmt"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/errors"
	"github.com/map-annotation-service/internal/pkg/utils"
	"github.com/map-annotation-service/internal/usecase/dto"
	"github.com/peterstace/simplefeatures/geom"
)

// MeasureLine - геодезическая длина ломаной, заданной в EPSG:3857
func MeasureLine(points [][2]float64) (*dto.MeasureResponse, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("line needs at least 2 points: %w", errors.ErrInvalidGeometry)
	}

	ls, err := lineString(points)
	if err != nil {
		return nil, err
	}

	lonLats := toLonLats(ls.Coordinates())
	return &dto.MeasureResponse{
		Length: utils.GeodesicLength(lonLats),
		Points: len(points),
	}, nil
}

// MeasurePolygon - геодезические площадь и периметр кольца в EPSG:3857.
// Кольцо замыкается автоматически, самопересечения отклоняются.
func MeasurePolygon(points [][2]float64) (*dto.MeasureResponse, error) {
	ring := points
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(append([][2]float64{}, points...), points[0])
	}
	if len(ring) < 4 {
		return nil, fmt.Errorf("polygon needs at least 3 distinct points: %w", errors.ErrInvalidGeometry)
	}

	ls, err := lineString(ring)
	if err != nil {
		return nil, err
	}
	poly, err := geom.NewPolygon([]geom.LineString{ls})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, errors.ErrInvalidGeometry)
	}

	lonLats := toLonLats(poly.ExteriorRing().Coordinates())
	return &dto.MeasureResponse{
		Length: utils.GeodesicLength(lonLats),
		// Последняя точка кольца совпадает с первой
		Area:   utils.GeodesicArea(lonLats[:len(lonLats)-1]),
		Points: len(ring) - 1,
	}, nil
}

// lineString строит ломаную; NaN, Inf и вырожденные линии отклоняет geom
func lineString(points [][2]float64) (geom.LineString, error) {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p[0], p[1])
	}
	ls, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return geom.LineString{}, fmt.Errorf("%v: %w", err, errors.ErrInvalidGeometry)
	}
	return ls, nil
}

func toLonLats(seq geom.Sequence) [][2]float64 {
	out := make([][2]float64, seq.Length())
	for i := range out {
		xy := seq.GetXY(i)
		lon, lat := utils.ToLonLat(xy.X, xy.Y)
		out[i] = [2]float64{lon, lat}
	}
	return out
}

// positionDigits - точность вывода координаты курсора
const positionDigits = 4

// MousePosition переводит координату курсора в EPSG:4326 для вывода "x, y"
func MousePosition(x, y float64) (*dto.PositionResponse, error) {
	pt, err := domain.Coordinate{X: x, Y: y}.Point()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, errors.ErrInvalidGeometry)
	}

	xy, _ := pt.XY()
	lon, lat := utils.ToLonLat(xy.X, xy.Y)
	return &dto.PositionResponse{
		Lon:       lon,
		Lat:       lat,
		Formatted: utils.FormatXY(lon, lat, positionDigits),
	}, nil
}
