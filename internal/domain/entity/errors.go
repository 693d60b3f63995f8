package entity

import "fmt"

// InvalidImageError — изображение не декодируется или имеет нулевой размер.
type InvalidImageError struct {
	Reason string
	Cause  error
}

func (e *InvalidImageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid image: %s: %v", e.Reason, e.Cause)
	}
	return "invalid image: " + e.Reason
}

func (e *InvalidImageError) Unwrap() error {
	return e.Cause
}

// NoCrackDetectedError — сегментация не нашла ни одного контура.
type NoCrackDetectedError struct{}

func (e *NoCrackDetectedError) Error() string {
	return "no crack detected"
}

// DegenerateModelError — отношение яркостей ξ не определено.
type DegenerateModelError struct {
	Reason  string
	Crack   float64 // средняя яркость под маской
	Surface float64 // средняя яркость фона
}

func (e *DegenerateModelError) Error() string {
	return fmt.Sprintf("degenerate depth model: %s (crack=%.2f, surface=%.2f)", e.Reason, e.Crack, e.Surface)
}
