package vision

import (
	"image"

	"crack-meter/internal/domain/entity"
)

// fillContours заливает каждый контур целиком: рёбра между вершинами
// растеризуются, затем всё, что не достижимо снаружи, попадает в маску.
func fillContours(contours []entity.Contour, w, h int) *entity.Mask {
	edges := make([]bool, w*h)
	bounds := image.Rect(0, 0, w, h)
	for _, c := range contours {
		c.Trace(func(p image.Point) {
			if p.In(bounds) {
				edges[p.Y*w+p.X] = true
			}
		})
	}

	outside := floodOutside(w, h, edges)
	mask := entity.NewMask(w, h)
	for i := range mask.Pix {
		mask.Pix[i] = !outside[i]
	}
	return mask
}
