package render

import (
	"fmt"
	"strings"

	"github.com/midbel/svg"
)

// Shape draws a mark centered on pos whose size is given by radius.
type Shape func(pos svg.Pos, radius float64, fill svg.Fill, stroke svg.Stroke) svg.Element

func ParseShape(str string) (Shape, error) {
	switch strings.ToLower(str) {
	case "", "circle":
		return Circle, nil
	case "square":
		return Square, nil
	case "diamond":
		return Diamond, nil
	default:
		return nil, fmt.Errorf("%s: unknown shape", str)
	}
}

func Circle(pos svg.Pos, radius float64, fill svg.Fill, stroke svg.Stroke) svg.Element {
	var el svg.Circle
	el.Pos = pos
	el.Radius = radius
	el.Fill = fill
	el.Stroke = stroke
	return el.AsElement()
}

func Square(pos svg.Pos, radius float64, fill svg.Fill, stroke svg.Stroke) svg.Element {
	pos.X -= radius
	pos.Y -= radius

	var el svg.Rect
	el.Pos = pos
	el.Dim = svg.NewDim(radius*2, radius*2)
	el.Fill = fill
	el.Stroke = stroke
	return el.AsElement()
}

func Diamond(pos svg.Pos, radius float64, fill svg.Fill, stroke svg.Stroke) svg.Element {
	var (
		x = pos.X
		y = pos.Y
	)
	pos.X -= radius
	pos.Y -= radius

	var el svg.Rect
	el.Pos = pos
	el.Dim = svg.NewDim(radius*2, radius*2)
	el.Fill = fill
	el.Stroke = stroke
	el.Transform.Rotate(45, x, y)
	return el.AsElement()
}
