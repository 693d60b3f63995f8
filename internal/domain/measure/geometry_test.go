package measure

import (
	"testing"

	"github.com/stretchr/testify/require"

	"crack-meter/internal/domain/entity"
)

func band(x0, y0, length, width int) entity.Contour {
	x1, y1 := x0+length-1, y0+width-1
	return entity.Contour{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
}

func TestGeometryEstimator_StraightBand(t *testing.T) {
	optics := entity.OpticalConstants{PixelSize: 1, ObjectDistance: 2, FocalLength: 1}
	g, err := NewGeometryEstimator().Measure([]entity.Contour{band(10, 10, 100, 4)}, optics)
	require.NoError(t, err)

	// 99 вдоль + 2·3 по краям, ζ = 2
	require.InDelta(t, (99+6)*2*1000, g.TotalLengthMM, 1e-6)
	require.InDelta(t, 4*1*1000, g.MaxWidthMM, 1e-6)
	require.InDelta(t, 4*1*1000, g.MeanWidthMM, 1e-6)
}

func TestGeometryEstimator_AggregatesContours(t *testing.T) {
	optics := entity.OpticalConstants{PixelSize: 1e-3, ObjectDistance: 3, FocalLength: 1}
	contours := []entity.Contour{band(0, 0, 50, 2), band(0, 20, 30, 6)}

	g, err := NewGeometryEstimator().Measure(contours, optics)
	require.NoError(t, err)

	wantLength := (ArcLength(contours[0]) + ArcLength(contours[1])) * 1e-3 * 3 * 1000
	require.InDelta(t, wantLength, g.TotalLengthMM, 1e-9)
	require.InDelta(t, 6*1e-3*2*1000, g.MaxWidthMM, 1e-9)
	require.InDelta(t, 4*1e-3*2*1000, g.MeanWidthMM, 1e-9)
}

func TestGeometryEstimator_PixelSizeIsLinear(t *testing.T) {
	contours := []entity.Contour{band(3, 3, 40, 3), band(10, 30, 12, 5)}
	base := entity.OpticalConstants{PixelSize: 1.12e-6, ObjectDistance: 0.13, FocalLength: 0.003}
	scaled := base
	scaled.PixelSize *= 3.5

	a, err := NewGeometryEstimator().Measure(contours, base)
	require.NoError(t, err)
	b, err := NewGeometryEstimator().Measure(contours, scaled)
	require.NoError(t, err)

	require.InEpsilon(t, 3.5*a.TotalLengthMM, b.TotalLengthMM, 1e-12)
	require.InEpsilon(t, 3.5*a.MaxWidthMM, b.MaxWidthMM, 1e-12)
	require.InEpsilon(t, 3.5*a.MeanWidthMM, b.MeanWidthMM, 1e-12)
}

func TestGeometryEstimator_EmptyContoursRejected(t *testing.T) {
	_, err := NewGeometryEstimator().Measure(nil, entity.DefaultOpticalConstants())
	var noCrack *entity.NoCrackDetectedError
	require.ErrorAs(t, err, &noCrack)
}
