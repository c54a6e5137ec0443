package domain

import "math"

// webMercatorMaxResolution - разрешение EPSG:3857 на нулевом зуме для тайла 256px
const webMercatorMaxResolution = 156543.03392804097

// MapView - видимая область карты
type MapView struct {
	Center  Coordinate `json:"center"`
	Zoom    float64    `json:"zoom"`
	MinZoom float64    `json:"min_zoom"`
	MaxZoom float64    `json:"max_zoom"`
	// Размер окна карты в пикселях, нужен для вписывания экстента
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Resolution возвращает текущее разрешение (метров на пиксель)
func (v MapView) Resolution() float64 {
	return ResolutionForZoom(v.Zoom)
}

// ResolutionForZoom - разрешение EPSG:3857 на заданном зуме
func ResolutionForZoom(zoom float64) float64 {
	return webMercatorMaxResolution / math.Pow(2, zoom)
}

// ZoomToFeatures центрирует карту на экстенте координат и подбирает
// максимальный зум, при котором экстент помещается в окно.
// Для одной точки это maxZoom.
func (v *MapView) ZoomToFeatures(coords ...Coordinate) {
	if len(coords) == 0 {
		return
	}

	minX, minY := coords[0].X, coords[0].Y
	maxX, maxY := minX, minY
	for _, c := range coords[1:] {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}

	v.Center = Coordinate{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}

	width, height := maxX-minX, maxY-minY
	if (width == 0 && height == 0) || v.Width <= 0 || v.Height <= 0 {
		v.Zoom = v.MaxZoom
		return
	}

	resolution := math.Max(width/float64(v.Width), height/float64(v.Height))
	zoom := math.Floor(math.Log2(webMercatorMaxResolution / resolution))
	v.Zoom = math.Max(v.MinZoom, math.Min(v.MaxZoom, zoom))
}

// Overlay - попап, привязанный к координате карты
type Overlay struct {
	Position *Coordinate `json:"position,omitempty"`
	AutoPan  bool        `json:"auto_pan"`
	// AutoPanDurationMs - длительность анимации автопанорамирования
	AutoPanDurationMs int `json:"auto_pan_duration_ms"`
}

// SetPosition привязывает попап к координате; nil скрывает привязку
func (o *Overlay) SetPosition(c *Coordinate) {
	if c == nil {
		o.Position = nil
		return
	}
	pos := *c
	o.Position = &pos
}
