package vision

import (
	"math"

	"crack-meter/internal/domain/entity"
)

// Веса с показателем больше этого порога меньше 1e-15 и не учитываются.
const maxWeightExponent = 35

// nonLocalMeans усредняет каждый пиксель с пикселями окна поиска,
// взвешивая их по сходству окрестностей (патчей):
// w = exp(-среднеквадратичная разница патчей / h²).
//
// Для каждого сдвига окна поиска строится интегральное изображение
// квадратов разностей, поэтому сумма по патчу считается за O(1).
func nonLocalMeans(src *entity.IntensityMap, h float64, templateWindow, searchWindow int) *entity.IntensityMap {
	w, ht := src.Width, src.Height
	tr, sr := templateWindow/2, searchWindow/2
	pad := tr + sr

	pw, ph := w+2*pad, ht+2*pad
	padded := make([]float64, pw*ph)
	for y := 0; y < ph; y++ {
		row := reflect101(y-pad, ht) * w
		for x := 0; x < pw; x++ {
			padded[y*pw+x] = float64(src.Pix[row+reflect101(x-pad, w)])
		}
	}

	// Область патчей: изображение плюс радиус шаблона с каждой стороны.
	rw, rh := w+2*tr, ht+2*tr
	stride := rw + 1
	integral := make([]float64, stride*(rh+1))
	sumW := make([]float64, w*ht)
	sumV := make([]float64, w*ht)
	norm := float64(templateWindow*templateWindow) * h * h

	for dy := -sr; dy <= sr; dy++ {
		for dx := -sr; dx <= sr; dx++ {
			for y := 0; y < rh; y++ {
				base := (y + sr) * pw
				shifted := (y + sr + dy) * pw
				var acc float64
				for x := 0; x < rw; x++ {
					d := padded[base+x+sr] - padded[shifted+x+sr+dx]
					acc += d * d
					integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + acc
				}
			}

			for y := 0; y < ht; y++ {
				top, bottom := y*stride, (y+templateWindow)*stride
				neighbour := (y + pad + dy) * pw
				for x := 0; x < w; x++ {
					ssd := integral[bottom+x+templateWindow] - integral[top+x+templateWindow] -
						integral[bottom+x] + integral[top+x]
					if ssd < 0 {
						ssd = 0
					}
					e := ssd / norm
					if e > maxWeightExponent {
						continue
					}
					weight := math.Exp(-e)
					i := y*w + x
					sumW[i] += weight
					sumV[i] += weight * padded[neighbour+x+pad+dx]
				}
			}
		}
	}

	dst := entity.NewIntensityMap(w, ht)
	for i := range dst.Pix {
		dst.Pix[i] = clamp16(sumV[i] / sumW[i])
	}
	return dst
}
