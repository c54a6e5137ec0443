package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testView() MapView {
	return MapView{
		Center:  Coordinate{X: 4420570.33, Y: 5981353.34},
		Zoom:    16,
		MinZoom: 1,
		MaxZoom: 17,
		Width:   1280,
		Height:  800,
	}
}

func TestResolutionForZoom(t *testing.T) {
	assert.InDelta(t, 156543.03392804097, ResolutionForZoom(0), 1e-9)
	assert.InDelta(t, 156543.03392804097/65536, ResolutionForZoom(16), 1e-9)
	assert.InDelta(t, ResolutionForZoom(16), testView().Resolution(), 1e-12)
}

func TestMapView_ZoomToSinglePoint(t *testing.T) {
	v := testView()
	target := Coordinate{X: 100, Y: 200}

	v.ZoomToFeatures(target)
	assert.Equal(t, target, v.Center)
	assert.Equal(t, 17.0, v.Zoom)
}

func TestMapView_ZoomToExtent(t *testing.T) {
	v := testView()

	// 128 км по горизонтали в окне 1280px: 100 м/px, зум floor(log2(1565.43)) = 10
	v.ZoomToFeatures(Coordinate{X: 0, Y: 0}, Coordinate{X: 128000, Y: 1000})
	assert.Equal(t, Coordinate{X: 64000, Y: 500}, v.Center)
	assert.Equal(t, 10.0, v.Zoom)

	// Экстент больше мира - ограничиваемся минимальным зумом
	v.ZoomToFeatures(Coordinate{X: -1e9, Y: 0}, Coordinate{X: 1e9, Y: 0})
	assert.Equal(t, 1.0, v.Zoom)
}

func TestMapView_ZoomToNothing(t *testing.T) {
	v := testView()
	v.ZoomToFeatures()
	assert.Equal(t, testView(), v)
}

func TestOverlay_SetPosition(t *testing.T) {
	var o Overlay
	c := Coordinate{X: 1, Y: 2}

	o.SetPosition(&c)
	require.NotNil(t, o.Position)
	c.X = 99
	assert.Equal(t, 1.0, o.Position.X)

	o.SetPosition(nil)
	assert.Nil(t, o.Position)
}
