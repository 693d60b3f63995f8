package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"crack-meter/internal/domain/entity"
)

// lineImage рисует тёмную горизонтальную полосу на светлом фоне.
func lineImage(t *testing.T, w, h int, line image.Rectangle, bg, fg uint8) *entity.RawImage {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := bg
			if image.Pt(x, y).In(line) {
				v = fg
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	raw, err := entity.NewRawImage(img)
	require.NoError(t, err)
	return raw
}

func maskFromRects(w, h int, rects ...image.Rectangle) *entity.Mask {
	m := entity.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for _, r := range rects {
				if image.Pt(x, y).In(r) {
					m.Set(x, y, true)
				}
			}
		}
	}
	return m
}

func constantMap(w, h int, v uint16) *entity.IntensityMap {
	m := entity.NewIntensityMap(w, h)
	for i := range m.Pix {
		m.Pix[i] = v
	}
	return m
}

func solidImage(t *testing.T, w, h int, c color.NRGBA) *entity.RawImage {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	raw, err := entity.NewRawImage(img)
	require.NoError(t, err)
	return raw
}
