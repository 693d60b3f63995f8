package measure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"crack-meter/internal/domain/entity"
)

// DefaultDepthExponent — показатель спада освещённости точечного источника.
const DefaultDepthExponent = 0.25

// DepthEstimator оценивает глубину по отношению яркостей трещины и фона.
type DepthEstimator struct {
	Exponent float64
}

// NewDepthEstimator создаёт оценщик с показателем 0.25.
func NewDepthEstimator() *DepthEstimator {
	return &DepthEstimator{Exponent: DefaultDepthExponent}
}

// Estimate возвращает глубину в миллиметрах: L·(ξ^(−exp) − 1)·1000,
// где ξ — средняя яркость под маской, делённая на среднюю яркость фона.
// Глубина одна на весь снимок.
func (d *DepthEstimator) Estimate(m *entity.IntensityMap, mask *entity.Mask, objectDistance float64) (float64, error) {
	if m.Width != mask.Width || m.Height != mask.Height {
		return 0, fmt.Errorf("mask %dx%d does not match intensity map %dx%d",
			mask.Width, mask.Height, m.Width, m.Height)
	}

	crack := make([]float64, 0, mask.Count())
	surface := make([]float64, 0, len(m.Pix)-cap(crack))
	for i, v := range m.Pix {
		if mask.Pix[i] {
			crack = append(crack, float64(v))
		} else {
			surface = append(surface, float64(v))
		}
	}

	// Фон проверяется первым: на полностью чёрном снимке модель не определена
	// независимо от того, нашлась ли трещина.
	if len(surface) == 0 {
		return 0, &entity.DegenerateModelError{Reason: "mask covers the whole image"}
	}
	surfaceIntensity := stat.Mean(surface, nil)
	if surfaceIntensity == 0 {
		return 0, &entity.DegenerateModelError{Reason: "surface intensity is zero"}
	}
	if len(crack) == 0 {
		return 0, &entity.NoCrackDetectedError{}
	}
	crackIntensity := stat.Mean(crack, nil)

	xi := crackIntensity / surfaceIntensity
	if xi == 0 {
		return 0, &entity.DegenerateModelError{
			Reason:  "reflectance ratio is zero",
			Crack:   crackIntensity,
			Surface: surfaceIntensity,
		}
	}

	depth := objectDistance * (math.Pow(xi, -d.Exponent) - 1) * metersToMillimeters
	if math.IsNaN(depth) || math.IsInf(depth, 0) {
		return 0, &entity.DegenerateModelError{
			Reason:  "depth is not finite",
			Crack:   crackIntensity,
			Surface: surfaceIntensity,
		}
	}
	return depth, nil
}
