package render

import (
	"github.com/midbel/svg"
)

type Style struct {
	Line struct {
		Color   string
		Width   float64
		Opacity float64
		Dash    []int
	}
	Fill struct {
		Opacity float64
		Stroke  string
	}
	Text struct {
		Size     float64
		Color    string
		Families []string
	}
	Shape Shape
}

var DefaultStyle = defaultStyle()

func defaultStyle() Style {
	var s Style
	s.Line.Color = "black"
	s.Line.Width = 1
	s.Line.Opacity = 0.1
	s.Line.Dash = []int{4, 4}
	s.Fill.Opacity = 0.8
	s.Fill.Stroke = "black"
	s.Text.Size = FontSize
	s.Text.Color = "black"
	s.Text.Families = []string{"sans-serif"}
	s.Shape = Circle
	return s
}

func (s Style) font(scale float64) svg.Font {
	f := svg.NewFont(s.Text.Size*scale, s.Text.Families...)
	if s.Text.Color != "" {
		f.Fill = s.Text.Color
	}
	return f
}

func (s Style) stroke() svg.Stroke {
	return svg.NewStroke(s.Line.Color, int(s.Line.Width))
}

func (s Style) grid() svg.Stroke {
	sk := s.stroke()
	sk.Opacity = s.Line.Opacity
	return sk
}

func (s Style) dashed() svg.Stroke {
	sk := s.stroke()
	sk.Dash.Array = append(sk.Dash.Array, s.Line.Dash...)
	return sk
}

func (s Style) fill(color string) svg.Fill {
	f := svg.NewFill(color)
	if s.Fill.Opacity > 0 {
		f.Opacity = s.Fill.Opacity
	}
	return f
}
