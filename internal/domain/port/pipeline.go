package port

import (
	"crack-meter/internal/domain/entity"
)

// Normalizer превращает цветной снимок в 16-битную карту яркости
type Normalizer interface {
	// Normalize выполняет яркость, шумоподавление и выравнивание контраста
	Normalize(img *entity.RawImage) (*entity.IntensityMap, error)
}

// Segmenter отделяет трещину от фона
type Segmenter interface {
	// Segment возвращает маску и внешние контуры трещины
	Segment(m *entity.IntensityMap) (*entity.Segmentation, error)
}
