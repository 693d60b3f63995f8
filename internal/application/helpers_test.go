package app

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/infrastructure/imagefile"
	"crack-meter/internal/infrastructure/vision"
)

// unitOptics: пиксель 1 м, ζ = 2.
var unitOptics = entity.OpticalConstants{PixelSize: 1, ObjectDistance: 2, FocalLength: 1}

func newTestAnalysis(workers int) *AnalysisService {
	return NewAnalysisService(imagefile.NewDecoder(), vision.NewNormalizer(), vision.NewSegmenter(), workers)
}

// syntheticImage — однотонный фон с тёмной полосой line (может быть пустой).
func syntheticImage(w, h int, line image.Rectangle, bg, fg uint8) *image.NRGBA {
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
	return img
}

func syntheticRaw(t *testing.T, w, h int, line image.Rectangle, bg, fg uint8) *entity.RawImage {
	t.Helper()
	raw, err := entity.NewRawImage(syntheticImage(w, h, line, bg, fg))
	require.NoError(t, err)
	return raw
}

func syntheticPNG(t *testing.T, w, h int, line image.Rectangle, bg, fg uint8) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, syntheticImage(w, h, line, bg, fg)))
	return buf.Bytes()
}
