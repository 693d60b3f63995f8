//go:build !gocv
// +build !gocv

package vision

import "crack-meter/internal/domain/port"

// BackendName — имя выбранной реализации (для логов).
const BackendName = "native"

// NewBackend возвращает реализацию на чистом Go (сборка без тега gocv).
func NewBackend() (port.Normalizer, port.Segmenter) {
	return NewNormalizer(), NewSegmenter()
}
