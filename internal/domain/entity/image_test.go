package entity

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRawImage_RejectsEmpty(t *testing.T) {
	_, err := NewRawImage(nil)
	var invalid *InvalidImageError
	require.ErrorAs(t, err, &invalid)

	_, err = NewRawImage(image.NewRGBA(image.Rect(0, 0, 0, 5)))
	require.ErrorAs(t, err, &invalid)
}

func TestNewRawImage_NormalizesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	src.Set(10, 20, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	raw, err := NewRawImage(src)
	require.NoError(t, err)
	require.Equal(t, 4, raw.Width())
	require.Equal(t, 3, raw.Height())
	require.Equal(t, color.NRGBA{R: 9, G: 8, B: 7, A: 255}, raw.Image().NRGBAAt(0, 0))
}

func TestIntensityMap_Bounds(t *testing.T) {
	m := NewIntensityMap(3, 1)
	m.Set(0, 0, 7)
	m.Set(1, 0, 3)
	m.Set(2, 0, 9)
	lo, hi := m.Bounds()
	require.Equal(t, uint16(3), lo)
	require.Equal(t, uint16(9), hi)

	c := m.Clone()
	c.Set(0, 0, 1)
	require.Equal(t, uint16(7), m.At(0, 0))
}

func TestMask_OutsideIsBackground(t *testing.T) {
	m := NewMask(2, 2)
	m.Set(1, 1, true)
	require.True(t, m.At(1, 1))
	require.False(t, m.At(-1, 0))
	require.False(t, m.At(2, 1))
	require.Equal(t, 1, m.Count())
}
