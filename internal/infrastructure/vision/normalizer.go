package vision

import (
	"errors"

	"github.com/disintegration/imaging"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/domain/port"
)

// NormalizerParams — постоянные шумоподавления и выравнивания контраста.
// Сила DenoiseStrength задаётся в уровнях 8-битной яркости.
type NormalizerParams struct {
	DenoiseStrength float64
	TemplateWindow  int
	SearchWindow    int
	ClipLimit       float64
	TileGridX       int
	TileGridY       int
}

// DefaultNormalizerParams возвращает параметры по умолчанию.
func DefaultNormalizerParams() NormalizerParams {
	return NormalizerParams{
		DenoiseStrength: 20,
		TemplateWindow:  7,
		SearchWindow:    21,
		ClipLimit:       3.0,
		TileGridX:       8,
		TileGridY:       8,
	}
}

// Normalizer — реализация на чистом Go.
type Normalizer struct {
	Params NormalizerParams
}

// NewNormalizer создаёт нормализатор с параметрами по умолчанию.
func NewNormalizer() *Normalizer {
	return &Normalizer{Params: DefaultNormalizerParams()}
}

// Normalize переводит снимок в яркость, растягивает её до 16 бит,
// подавляет шум и выравнивает контраст по плиткам.
func (n *Normalizer) Normalize(img *entity.RawImage) (*entity.IntensityMap, error) {
	if img == nil || img.Width() == 0 || img.Height() == 0 {
		return nil, &entity.InvalidImageError{Reason: "empty image"}
	}
	if n.Params.TemplateWindow < 1 || n.Params.SearchWindow < 1 || n.Params.TileGridX < 1 || n.Params.TileGridY < 1 {
		return nil, errors.New("normalizer windows and tile grid must be positive")
	}

	intensity := luminance16(img)
	denoised := nonLocalMeans(intensity,
		n.Params.DenoiseStrength*entity.IntensityScale,
		n.Params.TemplateWindow, n.Params.SearchWindow)
	return equalizeAdaptive(denoised, n.Params.ClipLimit, n.Params.TileGridX, n.Params.TileGridY), nil
}

// luminance16 — яркость по весам ITU-R 601, умноженная на 257.
func luminance16(img *entity.RawImage) *entity.IntensityMap {
	gray := imaging.Grayscale(img.Image())
	m := entity.NewIntensityMap(img.Width(), img.Height())
	for y := 0; y < m.Height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < m.Width; x++ {
			m.Pix[y*m.Width+x] = uint16(row[x*4]) * entity.IntensityScale
		}
	}
	return m
}

var _ port.Normalizer = (*Normalizer)(nil)
