package render

import (
	"github.com/midbel/motion"
	"github.com/midbel/svg"
)

const FontSize = 12.0

type axis struct {
	Label string
	motion.Orientation
	Ticks      []motion.Tick
	WithLabels bool
	WithGrid   bool
}

func (a axis) Render(st Style, length, size, left, top float64) svg.Element {
	g := svg.NewGroup(svg.WithTranslate(left, top), svg.WithClass("axis", a.Orientation.String()))
	d := domainLine(a.Orientation, length, st.stroke())
	g.Append(d.AsElement())

	font := st.font(1)
	for i, t := range a.Ticks {
		grp := svg.NewGroup(svg.WithTranslate(t.Pos, 0))
		if a.Vertical() {
			grp.Transform.TX = 0
			grp.Transform.TY = t.Pos
		}
		tick := lineTick(a.Orientation, 0, FontSize*0.5, d.Stroke)
		grp.Append(tick.AsElement())
		if a.WithLabels {
			text := tickText(a.Orientation, t.Label, 0, font)
			grp.Append(text.AsElement())
		}
		if a.WithGrid && i > 0 {
			grid := lineTick(a.Orientation, 0, -size, st.grid())
			grp.Append(grid.AsElement())
		}
		g.Append(grp.AsElement())
	}
	if a.Label != "" {
		g.Append(axisLabel(a.Orientation, a.Label, length, font))
	}
	return g.AsElement()
}

func domainLine(orient motion.Orientation, length float64, stroke svg.Stroke) svg.Line {
	x, y := length, 0.0
	if orient.Vertical() {
		x, y = y, x
	}
	return svg.NewLine(svg.NewPos(0, 0), svg.NewPos(x, y), svg.WithStroke(stroke))
}

func lineTick(orient motion.Orientation, offset, size float64, stroke svg.Stroke) svg.Line {
	var (
		pos1 = svg.NewPos(offset, 0)
		pos2 = svg.NewPos(offset, size)
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		pos2.X, pos2.Y = -pos2.Y, pos2.X
		pos1.X, pos1.Y = 0, offset
	case orient.Vertical() && orient.Reverse():
		pos2.X, pos2.Y = pos2.Y, pos2.X
		pos1.X, pos1.Y = 0, offset
	case !orient.Vertical() && orient.Reverse():
		pos2.Y = -pos2.Y
	default:
	}
	return svg.NewLine(pos1, pos2, svg.WithStroke(stroke))
}

func tickText(orient motion.Orientation, str string, offset float64, font svg.Font) svg.Text {
	var (
		anchor = "middle"
		x, y   = offset, FontSize * 1.8
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		anchor = "end"
		x, y = -FontSize, offset+FontSize*0.3
	case orient.Vertical() && orient.Reverse():
		anchor = "start"
		x, y = FontSize, offset+FontSize*0.3
	case !orient.Vertical() && orient.Reverse():
		y = -FontSize
	default:
	}
	text := svg.NewText(str, svg.WithPosition(x, y), svg.WithFont(font), svg.WithAnchor(anchor))
	return text
}

func axisLabel(orient motion.Orientation, str string, length float64, font svg.Font) svg.Element {
	var text svg.Text
	switch orient {
	case motion.OrientBottom:
		text = svg.NewText(str, svg.WithPosition(length, -FontSize*0.5), svg.WithAnchor("end"))
	case motion.OrientLeft:
		text = svg.NewText(str, svg.WithPosition(0, FontSize*1.5), svg.WithAnchor("end"))
		text.Transform.Rotate(-90, 0, 0)
	default:
		return svg.NewLiteral("")
	}
	text.Font = font
	text.Class = append(text.Class, "label")
	return text.AsElement()
}
