package motion

import (
	"fmt"
	"time"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// PaddingFromList follows the CSS shorthand: one value for all sides, two for
// vertical and horizontal, four for top, right, bottom and left.
func PaddingFromList(list []float64) (Padding, error) {
	var p Padding
	switch len(list) {
	case 1:
		p.Top, p.Right, p.Bottom, p.Left = list[0], list[0], list[0], list[0]
	case 2:
		p.Top, p.Bottom = list[0], list[0]
		p.Right, p.Left = list[1], list[1]
	case 4:
		p.Top, p.Right, p.Bottom, p.Left = list[0], list[1], list[2], list[3]
	default:
		return p, fmt.Errorf("invalid number of values given for padding (%d)", len(list))
	}
	return p, nil
}

const (
	DefaultWidth     = 960
	DefaultHeight    = 500
	DefaultMaxRadius = 40
	DefaultXTicks    = 12
	DefaultYTicks    = 10
)

var DefaultPadding = Padding{
	Top:    40,
	Right:  30,
	Bottom: 41,
	Left:   40,
}

// Config describes a chart: its geometry, the field bound to each channel,
// the scale family of each channel and the animation settings.
type Config struct {
	Title  string
	Width  float64
	Height float64
	Padding

	Bindings map[Channel]string
	Families map[Channel]Family
	Labels   map[string]string

	Aggregate Aggregate
	Duration  time.Duration
	Easing    string
	Whisker   float64
	XTicks    int
	YTicks    int
	MaxRadius float64

	Source string
	Output string
}

func DefaultConfig() Config {
	return Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Padding: DefaultPadding,
		Bindings: map[Channel]string{
			X:      "x",
			Y:      "y",
			Radius: "radius",
			Color:  "color",
			Key:    "name",
		},
		Families: map[Channel]Family{
			X:      Log,
			Y:      Linear,
			Radius: Sqrt,
			Color:  Ordinal,
		},
		Labels:    make(map[string]string),
		Aggregate: AggrMedian,
		Duration:  DefaultDuration,
		Easing:    "linear",
		Whisker:   DefaultWhisker,
		XTicks:    DefaultXTicks,
		YTicks:    DefaultYTicks,
		MaxRadius: DefaultMaxRadius,
	}
}

func (c Config) DrawingWidth() float64 {
	return c.Width - c.Padding.Horizontal()
}

func (c Config) DrawingHeight() float64 {
	return c.Height - c.Padding.Vertical()
}

func (c Config) family(ch Channel) Family {
	if f, ok := c.Families[ch]; ok && f != "" {
		return f
	}
	if ch == Color {
		return Ordinal
	}
	return Linear
}
