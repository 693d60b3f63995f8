package vision

import (
	"math"

	"crack-meter/internal/domain/entity"
)

// gaussianKernel строит нормированное ядро; при sigma <= 0 sigma
// выводится из размера так же, как в OpenCV.
func gaussianKernel(size int, sigma float64) []float64 {
	if sigma <= 0 {
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}
	k := make([]float64, size)
	c := float64(size-1) / 2
	var sum float64
	for i := range k {
		d := float64(i) - c
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// gaussianMean — гауссово среднее по окрестности block×block,
// края повторяются.
func gaussianMean(src *entity.IntensityMap, block int) []float64 {
	w, h := src.Width, src.Height
	k := gaussianKernel(block, 0)
	r := block / 2

	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var acc float64
			for i, kv := range k {
				acc += kv * float64(src.Pix[row+clampIndex(x+i-r, w)])
			}
			tmp[row+x] = acc
		}
	}

	mean := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for i, kv := range k {
				acc += kv * tmp[clampIndex(y+i-r, h)*w+x]
			}
			mean[y*w+x] = acc
		}
	}
	return mean
}

// adaptiveThresholdInv помечает пиксели, которые темнее гауссова
// среднего окрестности хотя бы на offset.
func adaptiveThresholdInv(src *entity.IntensityMap, block int, offset float64) *entity.Mask {
	mean := gaussianMean(src, block)
	bin := entity.NewMask(src.Width, src.Height)
	for i, v := range src.Pix {
		bin.Pix[i] = float64(v) <= mean[i]-offset
	}
	return bin
}
