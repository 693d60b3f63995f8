package entity

// Geometry — длина и ширина трещины в миллиметрах.
type Geometry struct {
	TotalLengthMM float64
	MaxWidthMM    float64
	MeanWidthMM   float64
}

// MeasurementResult — итог измерения одного снимка.
type MeasurementResult struct {
	TotalLengthMM float64 `json:"total_length_mm"`
	MaxWidthMM    float64 `json:"max_width_mm"`
	MeanWidthMM   float64 `json:"mean_width_mm"`
	DepthMM       float64 `json:"depth_mm"`
}

// NewMeasurementResult собирает итог из геометрии и глубины.
func NewMeasurementResult(g Geometry, depthMM float64) MeasurementResult {
	return MeasurementResult{
		TotalLengthMM: g.TotalLengthMM,
		MaxWidthMM:    g.MaxWidthMM,
		MeanWidthMM:   g.MeanWidthMM,
		DepthMM:       depthMM,
	}
}

// Analysis хранит итог анализа и найденные контуры (для подсветки).
type Analysis struct {
	ImageWidth  int
	ImageHeight int
	Optics      OpticalConstants
	Contours    []Contour
	Result      MeasurementResult
}
