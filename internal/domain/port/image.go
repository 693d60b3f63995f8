package port

import (
	"crack-meter/internal/domain/entity"
)

// ImageDecoder декодирует байты файла в изображение
type ImageDecoder interface {
	Decode(data []byte) (*entity.RawImage, error)
}

// CrackHighlighter рисует найденные контуры поверх снимка
type CrackHighlighter interface {
	// Highlight возвращает JPEG с подсвеченной трещиной
	Highlight(img *entity.RawImage, contours []entity.Contour) ([]byte, error)
}
