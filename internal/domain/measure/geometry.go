// Package measure переводит контуры и маску трещины в физические величины.
package measure

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"crack-meter/internal/domain/entity"
)

// metersToMillimeters — единственное преобразование единиц в модели.
const metersToMillimeters = 1000

// GeometryEstimator считает длину и ширину трещины по контурам.
type GeometryEstimator struct{}

// NewGeometryEstimator создаёт оценщик геометрии.
func NewGeometryEstimator() *GeometryEstimator {
	return &GeometryEstimator{}
}

// Measure суммирует длины контуров и собирает статистику ширины.
// Длина масштабируется на ζ, ширина на ζ − 1.
func (g *GeometryEstimator) Measure(contours []entity.Contour, optics entity.OpticalConstants) (entity.Geometry, error) {
	if len(contours) == 0 {
		return entity.Geometry{}, &entity.NoCrackDetectedError{}
	}

	zeta := optics.ScaleFactor()
	var total float64
	widths := make([]float64, 0, len(contours))
	for _, c := range contours {
		total += ArcLength(c) * optics.PixelSize * zeta
		widths = append(widths, MinAreaRect(c).ShortSide()*optics.PixelSize*(zeta-1))
	}

	return entity.Geometry{
		TotalLengthMM: total * metersToMillimeters,
		MaxWidthMM:    floats.Max(widths) * metersToMillimeters,
		MeanWidthMM:   stat.Mean(widths, nil) * metersToMillimeters,
	}, nil
}
