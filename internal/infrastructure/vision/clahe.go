package vision

import (
	"math"

	"crack-meter/internal/domain/entity"
)

const histBins = entity.MaxIntensity + 1

// equalizeAdaptive — выравнивание гистограммы по плиткам с ограничением
// контраста. Таблица каждой плитки отображает значения в диапазон
// [min, max] всей карты, поэтому постоянная карта остаётся постоянной.
func equalizeAdaptive(src *entity.IntensityMap, clipLimit float64, tilesX, tilesY int) *entity.IntensityMap {
	lo, hi := src.Bounds()
	if lo == hi {
		return src.Clone()
	}

	w, h := src.Width, src.Height
	tileW := (w + tilesX - 1) / tilesX
	tileH := (h + tilesY - 1) / tilesY
	area := tileW * tileH

	clip := int(clipLimit * float64(area) / histBins)
	if clip < 1 {
		clip = 1
	}
	scale := float64(hi-lo) / float64(area)

	hist := make([]int, histBins)
	luts := make([][]uint16, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			clear(hist)
			// Плитки за краем изображения достраиваются отражением.
			for y := ty * tileH; y < (ty+1)*tileH; y++ {
				row := reflect101(y, h) * w
				for x := tx * tileW; x < (tx+1)*tileW; x++ {
					hist[src.Pix[row+reflect101(x, w)]]++
				}
			}
			clipHistogram(hist, clip)

			lut := make([]uint16, histBins)
			cdf := 0
			for i, n := range hist {
				cdf += n
				lut[i] = clamp16(float64(lo) + float64(cdf)*scale)
			}
			luts[ty*tilesX+tx] = lut
		}
	}

	dst := entity.NewIntensityMap(w, h)
	for y := 0; y < h; y++ {
		ty1, ty2, ya := tileNeighbours(y, tileH, tilesY)
		for x := 0; x < w; x++ {
			tx1, tx2, xa := tileNeighbours(x, tileW, tilesX)
			v := src.Pix[y*w+x]

			top := float64(luts[ty1*tilesX+tx1][v])*(1-xa) + float64(luts[ty1*tilesX+tx2][v])*xa
			bottom := float64(luts[ty2*tilesX+tx1][v])*(1-xa) + float64(luts[ty2*tilesX+tx2][v])*xa
			dst.Pix[y*w+x] = clamp16(top*(1-ya) + bottom*ya)
		}
	}
	return dst
}

// clipHistogram срезает столбцы выше clip и раздаёт излишек равномерно,
// остаток — через равный шаг, начиная с нулевого столбца.
func clipHistogram(hist []int, clip int) {
	excess := 0
	for i, n := range hist {
		if n > clip {
			excess += n - clip
			hist[i] = clip
		}
	}
	batch := excess / len(hist)
	residual := excess - batch*len(hist)
	for i := range hist {
		hist[i] += batch
	}
	if residual == 0 {
		return
	}
	step := len(hist) / residual
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(hist) && residual > 0; i += step {
		hist[i]++
		residual--
	}
}

// tileNeighbours возвращает две соседние плитки по оси и вес второй.
func tileNeighbours(pos, tileSize, tiles int) (first, second int, weight float64) {
	f := float64(pos)/float64(tileSize) - 0.5
	first = int(math.Floor(f))
	second = first + 1
	weight = f - float64(first)
	if first < 0 {
		first = 0
	}
	if second > tiles-1 {
		second = tiles - 1
	}
	return first, second, weight
}
