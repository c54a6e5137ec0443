package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wroge/wgs84"
)

// earthRadiusM - радиус сферы для геодезических измерений (как в ol/sphere)
const earthRadiusM = 6371008.8

const (
	SRIDWebMercator = 3857
	SRIDWGS84       = 4326
)

// HaversineDistance вычисляет расстояние между двумя точками в метрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// ToLonLat переводит точку из EPSG:3857 в EPSG:4326
func ToLonLat(x, y float64) (lon, lat float64) {
	transform := wgs84.EPSG().Transform(SRIDWebMercator, SRIDWGS84)
	lon, lat, _ = transform(x, y, 0)
	return lon, lat
}

// FromLonLat переводит точку из EPSG:4326 в EPSG:3857
func FromLonLat(lon, lat float64) (x, y float64) {
	transform := wgs84.EPSG().Transform(SRIDWGS84, SRIDWebMercator)
	x, y, _ = transform(lon, lat, 0)
	return x, y
}

// FormatXY форматирует пару координат как "x, y" с заданной точностью
func FormatXY(x, y float64, digits int) string {
	return fmt.Sprintf("%s, %s",
		strconv.FormatFloat(x, 'f', digits, 64),
		strconv.FormatFloat(y, 'f', digits, 64),
	)
}

// GeodesicLength - длина ломаной (lon/lat) по сфере в метрах
func GeodesicLength(lonLats [][2]float64) float64 {
	var total float64
	for i := 1; i < len(lonLats); i++ {
		prev, cur := lonLats[i-1], lonLats[i]
		total += HaversineDistance(prev[1], prev[0], cur[1], cur[0])
	}
	return total
}

// GeodesicArea - площадь кольца (lon/lat) по сфере в квадратных метрах
func GeodesicArea(ring [][2]float64) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}

	var area float64
	x1, y1 := ring[n-1][0], ring[n-1][1]
	for i := 0; i < n; i++ {
		x2, y2 := ring[i][0], ring[i][1]
		area += toRadians(x2-x1) *
			(2 + math.Sin(toRadians(y1)) + math.Sin(toRadians(y2)))
		x1, y1 = x2, y2
	}

	return math.Abs(area * earthRadiusM * earthRadiusM / 2)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
