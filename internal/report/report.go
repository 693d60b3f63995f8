// Package report форматирует результаты измерений для консоли и бота.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"crack-meter/internal/domain/entity"
)

// Text возвращает отчёт в миллиметрах с двумя знаками после запятой.
func Text(r entity.MeasurementResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crack Length: %.2f mm\n", r.TotalLengthMM)
	fmt.Fprintf(&b, "Maximum Width: %.2f mm\n", r.MaxWidthMM)
	fmt.Fprintf(&b, "Average Width: %.2f mm\n", r.MeanWidthMM)
	fmt.Fprintf(&b, "Estimated Depth: %.2f mm\n", r.DepthMM)
	return b.String()
}

// Optics описывает оптику одной строкой.
func Optics(o entity.OpticalConstants) string {
	return fmt.Sprintf("pixel size %g m, distance %g m, focal length %g m (ζ = %.2f)",
		o.PixelSize, o.ObjectDistance, o.FocalLength, o.ScaleFactor())
}

// Entry — запись JSON-отчёта по одному файлу.
type Entry struct {
	Source   string                    `json:"source"`
	Contours int                       `json:"contours,omitempty"`
	Result   *entity.MeasurementResult `json:"result,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

// JSON кодирует записи с отступами.
func JSON(entries []Entry) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}
