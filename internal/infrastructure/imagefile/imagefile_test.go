package imagefile

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"crack-meter/internal/domain/entity"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecoder_Decode(t *testing.T) {
	raw, err := NewDecoder().Decode(pngBytes(t, 12, 7))
	require.NoError(t, err)
	require.Equal(t, 12, raw.Width())
	require.Equal(t, 7, raw.Height())
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	var invalid *entity.InvalidImageError

	_, err := NewDecoder().Decode(nil)
	require.ErrorAs(t, err, &invalid)

	_, err = NewDecoder().Decode([]byte("definitely not an image"))
	require.ErrorAs(t, err, &invalid)
}

func TestDecoder_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crack.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 5, 5), 0o600))

	raw, err := NewDecoder().Open(path)
	require.NoError(t, err)
	require.Equal(t, 5, raw.Width())

	_, err = NewDecoder().Open(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestHighlighter_DrawsContour(t *testing.T) {
	raw, err := NewDecoder().Decode(pngBytes(t, 30, 20))
	require.NoError(t, err)

	h := NewHighlighter()
	contour := entity.Contour{{X: 5, Y: 10}, {X: 25, Y: 10}}
	out := h.Render(raw, []entity.Contour{contour})
	require.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(15, 10))
	require.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, out.NRGBAAt(15, 2))
	// исходный снимок не меняется
	require.NotEqual(t, color.NRGBA{R: 255, A: 255}, raw.Image().NRGBAAt(15, 10))

	jpg, err := h.Highlight(raw, []entity.Contour{contour})
	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(jpg))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
}

func TestHighlighter_MatchesTracedBoundary(t *testing.T) {
	raw, err := NewDecoder().Decode(pngBytes(t, 20, 20))
	require.NoError(t, err)

	h := NewHighlighter()
	h.Thickness = 1
	contour := entity.Contour{{X: 2, Y: 2}, {X: 12, Y: 7}, {X: 4, Y: 15}}
	out := h.Render(raw, []entity.Contour{contour})

	traced := map[image.Point]bool{}
	contour.Trace(func(p image.Point) { traced[p] = true })

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			red := out.NRGBAAt(x, y) == h.Color
			require.Equal(t, traced[image.Pt(x, y)], red, "pixel %d,%d", x, y)
		}
	}
}
