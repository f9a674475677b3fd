package render

import (
	"bufio"
	"io"
	"math"

	"github.com/midbel/motion"
	"github.com/midbel/svg"
)

const (
	DefaultRadius = 4
	labelSize     = 8
)

// Render writes the frame as a standalone SVG document with the default
// style.
func Render(w io.Writer, f motion.Frame) error {
	return DefaultStyle.Render(w, f)
}

// Render writes the frame as a standalone SVG document. Each mark is a group
// whose id is the key of its entity so that successive frames can be matched.
func (s Style) Render(w io.Writer, f motion.Frame) error {
	if f.Empty() {
		return motion.ErrEmptyDataset
	}
	if s.Shape == nil {
		s.Shape = Circle
	}
	el := svg.NewSVG(svg.WithDimension(f.Width, f.Height), svg.WithID(f.ID))
	if f.Title != "" {
		title := svg.NewText(f.Title, svg.WithPosition(f.Padding.Left, s.Text.Size*1.5), svg.WithFont(s.font(1.2)))
		title.Class = append(title.Class, "title")
		el.Append(title.AsElement())
	}

	var (
		width  = f.Width - f.Padding.Horizontal()
		height = f.Height - f.Padding.Vertical()
	)
	el.Append(s.drawAxis(f, width, height))

	area := svg.NewGroup(svg.WithTranslate(f.Padding.Left, f.Padding.Top), svg.WithClass("area"))
	area.Append(s.drawLabel(f, width, height))
	area.Append(s.drawAggregates(f, width, height))
	area.Append(s.drawMarks(f))
	area.Append(s.drawLegend(f, width))
	el.Append(area.AsElement())

	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

func (s Style) drawAxis(f motion.Frame, width, height float64) svg.Element {
	var (
		grp = svg.NewGroup(svg.WithClass("axes"))
		x   = f.Channel(motion.X)
		y   = f.Channel(motion.Y)
	)
	list := []struct {
		axis
		Length float64
		Size   float64
		Left   float64
		Top    float64
	}{
		{
			axis:   axis{Label: x.Label, Orientation: motion.OrientBottom, Ticks: x.Ticks, WithLabels: true, WithGrid: true},
			Length: width,
			Size:   height,
			Left:   f.Padding.Left,
			Top:    f.Height - f.Padding.Bottom,
		},
		{
			axis:   axis{Label: y.Label, Orientation: motion.OrientLeft, Ticks: y.Ticks, WithLabels: true, WithGrid: true},
			Length: height,
			Size:   width,
			Left:   f.Padding.Left,
			Top:    f.Padding.Top,
		},
		{
			axis:   axis{Orientation: motion.OrientTop, Ticks: x.IQR},
			Length: width,
			Size:   height,
			Left:   f.Padding.Left,
			Top:    f.Padding.Top,
		},
		{
			axis:   axis{Orientation: motion.OrientRight, Ticks: y.IQR},
			Length: height,
			Size:   width,
			Left:   f.Width - f.Padding.Right,
			Top:    f.Padding.Top,
		},
	}
	for _, a := range list {
		grp.Append(a.Render(s, a.Length, a.Size, a.Left, a.Top))
	}
	return grp.AsElement()
}

func (s Style) drawLabel(f motion.Frame, width, height float64) svg.Element {
	text := svg.NewText(f.Label, svg.WithPosition(width, height-s.Text.Size), svg.WithAnchor("end"))
	text.Font = s.font(labelSize)
	text.Fill = svg.NewFill("#ddd")
	text.Class = append(text.Class, "time")
	return text.AsElement()
}

func (s Style) drawAggregates(f motion.Frame, width, height float64) svg.Element {
	var (
		grp    = svg.NewGroup(svg.WithClass("aggregate", string(f.Aggregate)))
		stroke = s.dashed()
	)
	if x := f.Channel(motion.X); !math.IsNaN(x.Line) {
		line := svg.NewLine(svg.NewPos(x.Line, 0), svg.NewPos(x.Line, height), svg.WithStroke(stroke))
		line.Title = motion.FormatTick(x.Aggregate)
		grp.Append(line.AsElement())
	}
	if y := f.Channel(motion.Y); !math.IsNaN(y.Line) {
		line := svg.NewLine(svg.NewPos(0, y.Line), svg.NewPos(width, y.Line), svg.WithStroke(stroke))
		line.Title = motion.FormatTick(y.Aggregate)
		grp.Append(line.AsElement())
	}
	return grp.AsElement()
}

func (s Style) drawMarks(f motion.Frame) svg.Element {
	var (
		grp    = svg.NewGroup(svg.WithClass("dots"))
		stroke = svg.NewStroke(s.Fill.Stroke, 1)
	)
	for _, m := range f.Marks {
		if !m.Visible() {
			continue
		}
		radius := m.R
		if math.IsNaN(radius) {
			radius = DefaultRadius
		}
		dot := svg.NewGroup(svg.WithID(m.Key), svg.WithClass("dot"))
		dot.Title = m.Label
		dot.Append(s.Shape(svg.NewPos(m.X, m.Y), radius, s.fill(m.Fill), stroke))
		grp.Append(dot.AsElement())
	}
	return grp.AsElement()
}

func (s Style) drawLegend(f motion.Frame, width float64) svg.Element {
	grp := svg.NewGroup(svg.WithClass("legend"), svg.WithTranslate(width, 0))
	var top float64
	for _, t := range f.Legend {
		top = math.Max(top, t.Pos*2)
	}
	for _, t := range f.Legend {
		ci := svg.NewCircle(svg.WithPosition(-top/2, top-t.Pos), svg.WithRadius(t.Pos))
		ci.Stroke = s.stroke()
		ci.Fill = svg.NewFill("none")
		grp.Append(ci.AsElement())

		text := svg.NewText(t.Label, svg.WithPosition(-top/2, top-2*t.Pos), svg.WithAnchor("middle"))
		text.Font = s.font(0.8)
		grp.Append(text.AsElement())
	}
	for i, sw := range f.Swatches {
		var (
			size = s.Text.Size
			y    = top + size*1.5*float64(i+1)
		)
		rec := svg.NewRect(svg.WithPosition(-size, y-size), svg.WithDimension(size, size), svg.WithFill(s.fill(sw.Fill)))
		grp.Append(rec.AsElement())

		text := svg.NewText(sw.Label, svg.WithPosition(-size*1.5, y), svg.WithAnchor("end"))
		text.Font = s.font(1)
		grp.Append(text.AsElement())
	}
	return grp.AsElement()
}
