package motion

import (
	"math"
)

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

func (o Orientation) String() string {
	switch o {
	case OrientTop:
		return "top"
	case OrientRight:
		return "right"
	case OrientBottom:
		return "bottom"
	case OrientLeft:
		return "left"
	default:
		return "unknown"
	}
}

type Tick struct {
	Value float64
	Pos   float64
	Label string
}

type Axis struct {
	Label  string
	Ticks  int
	Scaler Scaler
	Values []float64
	Format func(float64) string
}

// Compute places the ticks of the axis. Explicit Values take precedence over
// the ticks suggested by the scaler; values that can not be placed are
// dropped.
func (a Axis) Compute() []Tick {
	if a.Scaler == nil {
		return nil
	}
	var (
		data   = a.Values
		format = a.Format
	)
	if len(data) == 0 {
		data = a.Scaler.Ticks(a.Ticks)
	}
	if format == nil {
		format = FormatTick
	}
	cat, _ := a.Scaler.(Categorical)
	list := make([]Tick, 0, len(data))
	for _, v := range data {
		pos := a.Scaler.Scale(v)
		if math.IsNaN(pos) || math.IsInf(pos, 0) {
			continue
		}
		t := Tick{
			Value: v,
			Pos:   pos,
			Label: format(v),
		}
		if cat != nil && len(a.Values) == 0 && len(cat.Categories()) > 0 {
			if i := int(v); i >= 0 && i < len(cat.Categories()) && float64(i) == v {
				t.Label = cat.Categories()[i]
			}
		}
		list = append(list, t)
	}
	return list
}

// FormatTick prints integers with thousands grouping and other values with
// two decimals.
func FormatTick(v float64) string {
	if v == math.Trunc(v) {
		return FormatNumber(v, 0, 3)
	}
	return FormatNumber(v, 2, 3)
}
