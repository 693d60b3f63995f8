package entity

import (
	"image"

	"github.com/disintegration/imaging"
)

// MaxIntensity — верхняя граница 16-битной карты яркости.
const MaxIntensity = 65535

// IntensityScale переводит 8-битную яркость в 16-битную (65535/255).
const IntensityScale = MaxIntensity / 255

// RawImage — исходное цветное изображение, только для чтения.
type RawImage struct {
	img *image.NRGBA
}

// NewRawImage оборачивает декодированное изображение.
// Пустое изображение или изображение нулевого размера отклоняется.
func NewRawImage(img image.Image) (*RawImage, error) {
	if img == nil {
		return nil, &InvalidImageError{Reason: "image is nil"}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &InvalidImageError{Reason: "image has zero size"}
	}
	return &RawImage{img: imaging.Clone(img)}, nil
}

// Image возвращает пиксели изображения (начало координат в 0,0).
func (r *RawImage) Image() *image.NRGBA { return r.img }

// Width ширина изображения в пикселях.
func (r *RawImage) Width() int { return r.img.Bounds().Dx() }

// Height высота изображения в пикселях.
func (r *RawImage) Height() int { return r.img.Bounds().Dy() }

// IntensityMap — одноканальная карта яркости с 16-битным диапазоном.
type IntensityMap struct {
	Width  int
	Height int
	Pix    []uint16 // построчно, Pix[y*Width+x]
}

// NewIntensityMap создаёт карту заданного размера, заполненную нулями.
func NewIntensityMap(width, height int) *IntensityMap {
	return &IntensityMap{
		Width:  width,
		Height: height,
		Pix:    make([]uint16, width*height),
	}
}

// At возвращает яркость пикселя.
func (m *IntensityMap) At(x, y int) uint16 {
	return m.Pix[y*m.Width+x]
}

// Set записывает яркость пикселя.
func (m *IntensityMap) Set(x, y int, v uint16) {
	m.Pix[y*m.Width+x] = v
}

// Clone возвращает независимую копию карты.
func (m *IntensityMap) Clone() *IntensityMap {
	c := NewIntensityMap(m.Width, m.Height)
	copy(c.Pix, m.Pix)
	return c
}

// Bounds возвращает минимальное и максимальное значение карты.
func (m *IntensityMap) Bounds() (lo, hi uint16) {
	if len(m.Pix) == 0 {
		return 0, 0
	}
	lo, hi = m.Pix[0], m.Pix[0]
	for _, v := range m.Pix[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Mask — бинарная маска трещины: true внутри залитых контуров.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewMask создаёт пустую маску.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// At сообщает, принадлежит ли пиксель маске. Точки вне изображения — фон.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set помечает пиксель.
func (m *Mask) Set(x, y int, v bool) {
	m.Pix[y*m.Width+x] = v
}

// Count возвращает число пикселей маски.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}
