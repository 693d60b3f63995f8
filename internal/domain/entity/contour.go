package entity

import "image"

// Contour — замкнутая граница одной связной области трещины.
// Хранятся только вершины, нужные для восстановления границы.
type Contour []image.Point

// Segmentation — результат сегментации: маска и внешние контуры.
type Segmentation struct {
	Mask     *Mask
	Contours []Contour
}

// Empty сообщает, что трещина не найдена.
func (s *Segmentation) Empty() bool {
	return s == nil || len(s.Contours) == 0
}

// Trace обходит пиксели замкнутой границы контура: каждое ребро между
// соседними вершинами растеризуется алгоритмом Брезенхема. Маска и
// подсветка строятся одним и тем же обходом.
func (c Contour) Trace(visit func(p image.Point)) {
	for i := range c {
		traceSegment(c[i], c[(i+1)%len(c)], visit)
	}
}

func traceSegment(a, b image.Point, visit func(p image.Point)) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy
	p := a
	for {
		visit(p)
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
