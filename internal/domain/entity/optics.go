package entity

import (
	"errors"
	"fmt"
	"math"
)

// Значения по умолчанию для камеры смартфона без калибровки.
const (
	DefaultPixelSize      = 1.12e-6 // м/пиксель
	DefaultObjectDistance = 0.13    // м
	DefaultFocalLength    = 0.003   // м
)

// OpticalConstants описывает оптику съёмки. Все величины в метрах.
type OpticalConstants struct {
	PixelSize      float64 `json:"pixel_size"`
	ObjectDistance float64 `json:"object_distance"`
	FocalLength    float64 `json:"focal_length"`
}

// DefaultOpticalConstants возвращает оптику по умолчанию.
func DefaultOpticalConstants() OpticalConstants {
	return OpticalConstants{
		PixelSize:      DefaultPixelSize,
		ObjectDistance: DefaultObjectDistance,
		FocalLength:    DefaultFocalLength,
	}
}

// ScaleFactor возвращает коэффициент увеличения ζ = L / f.
func (o OpticalConstants) ScaleFactor() float64 {
	return o.ObjectDistance / o.FocalLength
}

// Validate проверяет, что модель ширины (ζ − 1) имеет смысл.
func (o OpticalConstants) Validate() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%s must be a positive number (got %g)", name, v)
		}
		return nil
	}
	if err := errors.Join(
		check("pixel size", o.PixelSize),
		check("object distance", o.ObjectDistance),
		check("focal length", o.FocalLength),
	); err != nil {
		return err
	}
	if o.ObjectDistance <= o.FocalLength {
		return fmt.Errorf("object distance %g must exceed focal length %g", o.ObjectDistance, o.FocalLength)
	}
	return nil
}
