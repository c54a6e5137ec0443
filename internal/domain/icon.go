package domain

import (
	"fmt"
	"math"
)

const (
	IconScaleExponentMin  = 0.5
	IconScaleExponentMax  = 10.0
	IconScaleExponentStep = 0.5

	// DefaultIconScaleExponent - начальное положение слайдера
	DefaultIconScaleExponent = 1.0
)

// IconScaleSetting - настройка масштабирования иконки категории от зума
type IconScaleSetting struct {
	Enabled  bool    `json:"enabled"`
	Exponent float64 `json:"exponent"`
}

// DefaultIconScaleSetting - масштабирование выключено, слайдер на 1
func DefaultIconScaleSetting() IconScaleSetting {
	return IconScaleSetting{Enabled: false, Exponent: DefaultIconScaleExponent}
}

// IconScalePatch - частичное изменение настройки, nil поле остаётся прежним
type IconScalePatch struct {
	Enabled  *bool
	Exponent *float64
}

// Apply накладывает изменение на текущую настройку
func (p IconScalePatch) Apply(s IconScaleSetting) IconScaleSetting {
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.Exponent != nil {
		s.Exponent = *p.Exponent
	}
	return s
}

// Validate проверяет, что показатель лежит в [0.5, 10] с шагом 0.5
func (s IconScaleSetting) Validate() error {
	if math.IsNaN(s.Exponent) || s.Exponent < IconScaleExponentMin || s.Exponent > IconScaleExponentMax {
		return fmt.Errorf("exponent %v out of range [%v, %v]", s.Exponent, IconScaleExponentMin, IconScaleExponentMax)
	}
	steps := s.Exponent / IconScaleExponentStep
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("exponent %v is not a multiple of %v", s.Exponent, IconScaleExponentStep)
	}
	return nil
}

// AnchorUnits - единицы якоря иконки
type AnchorUnits string

const (
	AnchorUnitsFraction AnchorUnits = "fraction"
	AnchorUnitsPixels   AnchorUnits = "pixels"
)

// IconAnchor - точка привязки иконки к координате маркера
type IconAnchor struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	XUnits AnchorUnits `json:"x_units"`
	YUnits AnchorUnits `json:"y_units"`
}

// BottomCenterAnchor - середина по горизонтали, 24px по вертикали (низ иконки)
var BottomCenterAnchor = IconAnchor{X: 0.5, Y: 24, XUnits: AnchorUnitsFraction, YUnits: AnchorUnitsPixels}

// AnchorIcon - иконка без масштаба
type AnchorIcon struct {
	Src    string     `json:"src"`
	Anchor IconAnchor `json:"anchor"`
}

// IconStyle - визуальный стиль маркера при заданном разрешении
type IconStyle struct {
	Icon  AnchorIcon `json:"icon"`
	Scale float64    `json:"scale"`
}

// StyleFunc - функция стиля слоя: разрешение карты (единиц на пиксель) -> стиль
type StyleFunc func(resolution float64) (IconStyle, error)
