package measure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"crack-meter/internal/domain/entity"
)

// twoLevel строит карту 20x20, где квадрат 5x5 в центре — трещина.
func twoLevel(crack, surface uint16) (*entity.IntensityMap, *entity.Mask) {
	m := entity.NewIntensityMap(20, 20)
	mask := entity.NewMask(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x >= 8 && x < 13 && y >= 8 && y < 13 {
				m.Set(x, y, crack)
				mask.Set(x, y, true)
			} else {
				m.Set(x, y, surface)
			}
		}
	}
	return m, mask
}

func TestDepthEstimator_Formula(t *testing.T) {
	m, mask := twoLevel(1000, 16000)
	depth, err := NewDepthEstimator().Estimate(m, mask, 0.13)
	require.NoError(t, err)

	xi := 1000.0 / 16000.0
	require.InDelta(t, 0.13*(math.Pow(xi, -0.25)-1)*1000, depth, 1e-9)
	require.InDelta(t, 130, depth, 1e-9) // (1/16)^(-1/4) = 2
}

func TestDepthEstimator_DarkerCrackIsDeeper(t *testing.T) {
	est := NewDepthEstimator()
	prev := -1.0
	for _, crack := range []uint16{40000, 20000, 8000, 1000, 10} {
		m, mask := twoLevel(crack, 50000)
		depth, err := est.Estimate(m, mask, 0.13)
		require.NoError(t, err)
		require.Greater(t, depth, prev)
		prev = depth
	}
}

func TestDepthEstimator_Degenerate(t *testing.T) {
	est := NewDepthEstimator()
	var degenerate *entity.DegenerateModelError

	m, mask := twoLevel(0, 0)
	_, err := est.Estimate(m, mask, 0.13)
	require.ErrorAs(t, err, &degenerate)

	m, mask = twoLevel(0, 30000)
	_, err = est.Estimate(m, mask, 0.13)
	require.ErrorAs(t, err, &degenerate)

	full := entity.NewMask(20, 20)
	for i := range full.Pix {
		full.Pix[i] = true
	}
	_, err = est.Estimate(m, full, 0.13)
	require.ErrorAs(t, err, &degenerate)
}

func TestDepthEstimator_EmptyMask(t *testing.T) {
	m, _ := twoLevel(100, 30000)
	_, err := NewDepthEstimator().Estimate(m, entity.NewMask(20, 20), 0.13)
	var noCrack *entity.NoCrackDetectedError
	require.ErrorAs(t, err, &noCrack)
}

func TestDepthEstimator_SizeMismatch(t *testing.T) {
	m, _ := twoLevel(100, 30000)
	_, err := NewDepthEstimator().Estimate(m, entity.NewMask(10, 20), 0.13)
	require.Error(t, err)
}
