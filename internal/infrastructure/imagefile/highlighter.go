package imagefile

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/domain/port"
)

// Highlighter обводит контуры трещины красным.
type Highlighter struct {
	Color     color.NRGBA
	Thickness int
	Quality   int
}

// NewHighlighter создаёт подсветку с красной линией толщиной 2 пикселя.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		Color:     color.NRGBA{R: 255, A: 255},
		Thickness: 2,
		Quality:   90,
	}
}

// Render рисует контуры на копии снимка теми же пикселями,
// по которым строится маска.
func (h *Highlighter) Render(img *entity.RawImage, contours []entity.Contour) *image.NRGBA {
	dst := imaging.Clone(img.Image())
	for _, c := range contours {
		c.Trace(func(p image.Point) { h.dot(dst, p.X, p.Y) })
	}
	return dst
}

// Highlight возвращает JPEG с подсвеченной трещиной.
func (h *Highlighter) Highlight(img *entity.RawImage, contours []entity.Contour) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, h.Render(img, contours), imaging.JPEG, imaging.JPEGQuality(h.Quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Highlighter) dot(dst *image.NRGBA, x, y int) {
	r := h.Thickness / 2
	for oy := -r; oy <= h.Thickness-1-r; oy++ {
		for ox := -r; ox <= h.Thickness-1-r; ox++ {
			p := image.Pt(x+ox, y+oy)
			if p.In(dst.Bounds()) {
				dst.SetNRGBA(p.X, p.Y, h.Color)
			}
		}
	}
}

var _ port.CrackHighlighter = (*Highlighter)(nil)
