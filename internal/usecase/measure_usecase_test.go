package usecase_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/map-annotation-service/internal/pkg/errors"
	"github.com/map-annotation-service/internal/pkg/utils"
	"github.com/map-annotation-service/internal/usecase"
)

func TestMeasureLine(t *testing.T) {
	// Один градус долготы на экваторе ~ 111.2 км
	x0, y0 := utils.FromLonLat(0, 0)
	x1, y1 := utils.FromLonLat(1, 0)

	res, err := usecase.MeasureLine([][2]float64{{x0, y0}, {x1, y1}})
	require.NoError(t, err)
	assert.InDelta(t, 111195, res.Length, 50)
	assert.Equal(t, 2, res.Points)
	assert.Zero(t, res.Area)

	_, err = usecase.MeasureLine([][2]float64{{x0, y0}})
	assert.ErrorIs(t, err, errors.ErrInvalidGeometry)

	_, err = usecase.MeasureLine([][2]float64{{x0, y0}, {x0, y0}})
	assert.ErrorIs(t, err, errors.ErrInvalidGeometry)

	_, err = usecase.MeasureLine([][2]float64{{x0, y0}, {math.Inf(1), y1}})
	assert.ErrorIs(t, err, errors.ErrInvalidGeometry)
}

func TestMeasurePolygon(t *testing.T) {
	corners := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	points := make([][2]float64, 0, len(corners))
	for _, c := range corners {
		x, y := utils.FromLonLat(c[0], c[1])
		points = append(points, [2]float64{x, y})
	}

	res, err := usecase.MeasurePolygon(points)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Points)
	// Квадрат 1x1 градус у экватора ~ 12 364 км²
	assert.InDelta(t, 1.2364e10, res.Area, 1e8)
	assert.InDelta(t, 4*111195, res.Length, 500)

	// Замкнутое кольцо даёт тот же результат
	closed := append(append([][2]float64{}, points...), points[0])
	again, err := usecase.MeasurePolygon(closed)
	require.NoError(t, err)
	assert.InDelta(t, res.Area, again.Area, 1)

	_, err = usecase.MeasurePolygon(points[:2])
	assert.ErrorIs(t, err, errors.ErrInvalidGeometry)

	// Самопересекающаяся "бабочка"
	bowtie := [][2]float64{points[0], points[2], points[1], points[3]}
	_, err = usecase.MeasurePolygon(bowtie)
	assert.ErrorIs(t, err, errors.ErrInvalidGeometry)
}

func TestMousePosition(t *testing.T) {
	x, y := utils.FromLonLat(39.71, 47.23)

	res, err := usecase.MousePosition(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 39.71, res.Lon, 1e-6)
	assert.InDelta(t, 47.23, res.Lat, 1e-6)
	assert.Equal(t, "39.7100, 47.2300", res.Formatted)

	_, err = usecase.MousePosition(math.NaN(), 0)
	assert.ErrorIs(t, err, errors.ErrInvalidGeometry)

	_, err = usecase.MousePosition(0, math.Inf(-1))
	assert.ErrorIs(t, err, errors.ErrInvalidGeometry)
}
