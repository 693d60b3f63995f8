package vision

import (
	"errors"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/domain/port"
)

// SegmenterParams — параметры адаптивного порога.
// Offset задаётся в уровнях 8-битной яркости.
type SegmenterParams struct {
	BlockSize int
	Offset    float64
}

// DefaultSegmenterParams возвращает окно 15×15 и смещение 2.
func DefaultSegmenterParams() SegmenterParams {
	return SegmenterParams{
		BlockSize: 15,
		Offset:    2,
	}
}

// Segmenter — реализация на чистом Go.
type Segmenter struct {
	Params SegmenterParams
}

// NewSegmenter создаёт сегментатор с параметрами по умолчанию.
func NewSegmenter() *Segmenter {
	return &Segmenter{Params: DefaultSegmenterParams()}
}

// Segment выделяет пиксели темнее окрестности, находит внешние контуры
// и заливает их в маску. Пустой набор контуров ошибкой не считается.
func (s *Segmenter) Segment(m *entity.IntensityMap) (*entity.Segmentation, error) {
	if m == nil || m.Width == 0 || m.Height == 0 {
		return nil, &entity.InvalidImageError{Reason: "empty intensity map"}
	}
	if s.Params.BlockSize < 3 || s.Params.BlockSize%2 == 0 {
		return nil, errors.New("threshold block size must be odd and at least 3")
	}

	bin := adaptiveThresholdInv(m, s.Params.BlockSize, s.Params.Offset*entity.IntensityScale)
	contours := findOuterContours(bin)
	return &entity.Segmentation{
		Mask:     fillContours(contours, m.Width, m.Height),
		Contours: contours,
	}, nil
}

var _ port.Segmenter = (*Segmenter)(nil)
