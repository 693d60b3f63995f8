package measure

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"crack-meter/internal/domain/entity"
)

func TestArcLength_OpenPolyline(t *testing.T) {
	// Прямоугольник 10x3 в вершинах: левое ребро, низ, правое ребро.
	c := entity.Contour{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 9, Y: 2}, {X: 9, Y: 0}}
	require.InDelta(t, 2+9+2, ArcLength(c), 1e-12)

	diag := entity.Contour{{X: 0, Y: 0}, {X: 3, Y: 4}}
	require.InDelta(t, 5, ArcLength(diag), 1e-12)

	require.Zero(t, ArcLength(entity.Contour{{X: 4, Y: 4}}))
}

func TestMinAreaRect_AxisAlignedBand(t *testing.T) {
	c := entity.Contour{{X: 5, Y: 7}, {X: 5, Y: 9}, {X: 44, Y: 9}, {X: 44, Y: 7}}
	r := MinAreaRect(c)
	require.InDelta(t, 3, r.ShortSide(), 1e-9)
	require.InDelta(t, 40, math.Max(r.Width, r.Height), 1e-9)
}

func TestMinAreaRect_SinglePixel(t *testing.T) {
	r := MinAreaRect(entity.Contour{{X: 3, Y: 3}})
	require.InDelta(t, 1, r.Width, 1e-9)
	require.InDelta(t, 1, r.Height, 1e-9)
}

func TestMinAreaRect_DiagonalLine(t *testing.T) {
	var c entity.Contour
	for i := 0; i < 20; i++ {
		c = append(c, image.Point{X: i, Y: i})
	}
	r := MinAreaRect(c)
	require.InDelta(t, math.Sqrt2, r.ShortSide(), 1e-9)
	require.InDelta(t, 20*math.Sqrt2, math.Max(r.Width, r.Height), 1e-9)
}
