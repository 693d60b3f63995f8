package measure

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"crack-meter/internal/domain/entity"
)

// RotatedRect — прямоугольник минимальной площади вокруг контура.
type RotatedRect struct {
	Width  float64 // вдоль опорного ребра оболочки
	Height float64 // поперёк опорного ребра
	Angle  float64 // угол опорного ребра, радианы
}

// ShortSide возвращает меньшую сторону прямоугольника.
func (r RotatedRect) ShortSide() float64 {
	return math.Min(r.Width, r.Height)
}

// ArcLength считает длину контура как незамкнутой ломаной:
// отрезок от последней вершины к первой не учитывается.
func ArcLength(c entity.Contour) float64 {
	var total float64
	for i := 1; i < len(c); i++ {
		total += r2.Norm(r2.Sub(vec(c[i]), vec(c[i-1])))
	}
	return total
}

// MinAreaRect строит прямоугольник минимальной площади, накрывающий
// пиксели контура целиком (каждый пиксель — единичный квадрат).
func MinAreaRect(c entity.Contour) RotatedRect {
	if len(c) == 0 {
		return RotatedRect{}
	}
	corners := make([]r2.Vec, 0, len(c)*4)
	for _, p := range c {
		x, y := float64(p.X), float64(p.Y)
		corners = append(corners,
			r2.Vec{X: x, Y: y},
			r2.Vec{X: x + 1, Y: y},
			r2.Vec{X: x, Y: y + 1},
			r2.Vec{X: x + 1, Y: y + 1},
		)
	}
	hull := convexHull(corners)

	best := RotatedRect{Width: math.Inf(1), Height: math.Inf(1)}
	bestArea := math.Inf(1)
	for i := range hull {
		edge := r2.Sub(hull[(i+1)%len(hull)], hull[i])
		if r2.Norm(edge) == 0 {
			continue
		}
		u := r2.Unit(edge)
		n := r2.Vec{X: -u.Y, Y: u.X}

		minU, maxU := math.Inf(1), math.Inf(-1)
		minN, maxN := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			pu, pn := r2.Dot(p, u), r2.Dot(p, n)
			minU, maxU = math.Min(minU, pu), math.Max(maxU, pu)
			minN, maxN = math.Min(minN, pn), math.Max(maxN, pn)
		}
		w, h := maxU-minU, maxN-minN
		if area := w * h; area < bestArea {
			bestArea = area
			best = RotatedRect{Width: w, Height: h, Angle: math.Atan2(u.Y, u.X)}
		}
	}
	return best
}

// convexHull — монотонная цепь Эндрю, коллинеарные точки отбрасываются.
func convexHull(points []r2.Vec) []r2.Vec {
	pts := append([]r2.Vec(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	uniq := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			uniq = append(uniq, p)
		}
	}
	pts = uniq
	if len(pts) < 3 {
		return pts
	}

	hull := make([]r2.Vec, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func turn(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

func vec(p image.Point) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}
