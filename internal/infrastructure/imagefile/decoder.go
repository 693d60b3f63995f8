// Package imagefile читает снимки трещин и кодирует снимки с подсветкой.
package imagefile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/domain/port"
)

// Decoder декодирует JPEG, PNG, GIF, BMP, TIFF и WebP с учётом EXIF-ориентации.
type Decoder struct{}

// NewDecoder создаёт декодер.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode превращает байты файла в изображение.
func (d *Decoder) Decode(data []byte) (*entity.RawImage, error) {
	if len(data) == 0 {
		return nil, &entity.InvalidImageError{Reason: "empty input"}
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &entity.InvalidImageError{Reason: "failed to decode image", Cause: err}
	}
	return entity.NewRawImage(img)
}

// Open читает и декодирует файл.
func (d *Decoder) Open(path string) (*entity.RawImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return d.Decode(data)
}

var _ port.ImageDecoder = (*Decoder)(nil)
