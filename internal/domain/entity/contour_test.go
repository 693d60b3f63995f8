package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContour_TraceDiagonalSegment(t *testing.T) {
	var visited []image.Point
	Contour{{X: 0, Y: 0}, {X: 4, Y: 2}}.Trace(func(p image.Point) {
		visited = append(visited, p)
	})

	require.Equal(t, []image.Point{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 2}, {X: 4, Y: 2},
		{X: 4, Y: 2}, {X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0},
	}, visited)
}

func TestContour_TraceSinglePoint(t *testing.T) {
	var visited []image.Point
	Contour{{X: 3, Y: 5}}.Trace(func(p image.Point) {
		visited = append(visited, p)
	})
	require.Equal(t, []image.Point{{X: 3, Y: 5}}, visited)
}
