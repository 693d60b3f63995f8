//go:build gocv
// +build gocv

package vision

import "crack-meter/internal/domain/port"

// BackendName — имя выбранной реализации (для логов).
const BackendName = "opencv"

// NewBackend возвращает нормализатор и сегментатор на OpenCV.
func NewBackend() (port.Normalizer, port.Segmenter) {
	return NewCVNormalizer(), NewCVSegmenter()
}
