package vision

import (
	"image"

	"crack-meter/internal/domain/entity"
)

// Соседи по 8 направлениям против часовой стрелки на экране:
// восток, северо-восток, север, … , юго-восток.
var directions = [8]image.Point{
	{X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: -1}, {X: -1, Y: -1},
	{X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

const west = 4

// findOuterContours возвращает внешние границы 8-связных областей маски.
// Области, лежащие в дырах других областей, пропускаются.
func findOuterContours(bin *entity.Mask) []entity.Contour {
	w, h := bin.Width, bin.Height
	outside := floodOutside(w, h, bin.Pix)

	seen := make([]bool, w*h)
	var contours []entity.Contour
	var stack []int
	for start := range bin.Pix {
		if !bin.Pix[start] || seen[start] {
			continue
		}

		// Обходим область целиком и проверяем, касается ли она внешнего фона.
		outer := false
		seen[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			if x == 0 || y == 0 || x == w-1 || y == h-1 ||
				outside[i-1] || outside[i+1] || outside[i-w] || outside[i+w] {
				outer = true
			}
			for _, d := range directions {
				nx, ny := x+d.X, y+d.Y
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if bin.Pix[j] && !seen[j] {
					seen[j] = true
					stack = append(stack, j)
				}
			}
		}
		if outer {
			contours = append(contours, traceBoundary(bin, image.Pt(start%w, start/w)))
		}
	}
	return contours
}

// traceBoundary обходит внешнюю границу области соседями Мура, начиная
// с её первого в порядке развёртки пикселя, и оставляет только вершины,
// в которых меняется направление.
func traceBoundary(bin *entity.Mask, start image.Point) entity.Contour {
	first := nextDirection(bin, start, west)
	if first < 0 {
		return entity.Contour{start}
	}

	path := []image.Point{start}
	moves := []int{}
	limit := 4*len(bin.Pix) + 8
	p, d := start, first
	for len(path) < limit {
		moves = append(moves, d)
		p = p.Add(directions[d])
		next := nextDirection(bin, p, (d+4)%8)
		if p == start && next == first {
			break
		}
		path = append(path, p)
		d = next
	}

	contour := make(entity.Contour, 0, 8)
	for i, pt := range path {
		prev := moves[(i+len(moves)-1)%len(moves)]
		if moves[i] != prev {
			contour = append(contour, pt)
		}
	}
	return contour
}

// nextDirection ищет первого соседа области, перебирая направления
// после back против часовой стрелки; back проверяется последним.
func nextDirection(bin *entity.Mask, p image.Point, back int) int {
	for i := 1; i <= 8; i++ {
		d := (back + i) % 8
		if bin.At(p.X+directions[d].X, p.Y+directions[d].Y) {
			return d
		}
	}
	return -1
}

// floodOutside отмечает пиксели фона, 4-связно достижимые с края
// изображения; за краем изображения считается фон.
func floodOutside(w, h int, blocked []bool) []bool {
	outside := make([]bool, w*h)
	var queue []int
	push := func(i int) {
		if !blocked[i] && !outside[i] {
			outside[i] = true
			queue = append(queue, i)
		}
	}
	for x := 0; x < w; x++ {
		push(x)
		push((h-1)*w + x)
	}
	for y := 0; y < h; y++ {
		push(y * w)
		push(y*w + w - 1)
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		x, y := i%w, i/w
		if x > 0 {
			push(i - 1)
		}
		if x < w-1 {
			push(i + 1)
		}
		if y > 0 {
			push(i - w)
		}
		if y < h-1 {
			push(i + w)
		}
	}
	return outside
}
