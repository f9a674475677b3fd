package motion

import (
	"math"
	"strconv"
)

// Mark is a record placed in render coordinates.
type Mark struct {
	Record
	X    float64
	Y    float64
	R    float64
	Fill string
}

// Visible reports whether the mark has a position on both axes.
func (m Mark) Visible() bool {
	return !math.IsNaN(m.X) && !math.IsNaN(m.Y)
}

type ChannelState struct {
	Channel Channel
	Field   string
	Label   string
	Family  Family
	Domain  Domain
	Range   Range
	Zoomed  bool

	Ticks   []Tick
	IQR     []Tick
	Summary Summary

	Aggregate float64
	Line      float64
}

type Swatch struct {
	Label string
	Fill  string
}

// Frame is everything a renderer needs to draw the chart at one instant.
// Marks are sorted by decreasing radius.
type Frame struct {
	ID     string
	Title  string
	Time   float64
	Label  string
	State  State
	Width  float64
	Height float64
	Padding

	Marks     []Mark
	Channels  [numChannels]ChannelState
	Aggregate Aggregate
	Legend    []Tick
	Swatches  []Swatch
}

func (f Frame) Channel(ch Channel) ChannelState {
	if !ch.valid() {
		return ChannelState{Channel: ch}
	}
	return f.Channels[ch]
}

func (f Frame) Empty() bool {
	return len(f.Marks) == 0
}

func (f Frame) Keys() []string {
	keys := make([]string, len(f.Marks))
	for i := range f.Marks {
		keys[i] = f.Marks[i].Key
	}
	return keys
}

func (s *Scatter) Frame() Frame {
	f := Frame{
		ID:        s.ID,
		Title:     s.Title,
		Time:      s.snapshot.Time,
		Label:     TimeLabel(s.snapshot.Time),
		State:     s.driver.State(),
		Width:     s.Width,
		Height:    s.Height,
		Padding:   s.Padding,
		Aggregate: s.aggr,
	}
	for _, r := range s.snapshot.Ordered(Radius) {
		m := Mark{
			Record: r,
			X:      s.position(X, r),
			Y:      s.position(Y, r),
			R:      s.position(Radius, r),
			Fill:   s.fill(r),
		}
		f.Marks = append(f.Marks, m)
	}
	for _, ch := range Channels() {
		f.Channels[ch] = s.channelState(ch)
	}
	f.Legend = s.radiusLegend()
	f.Swatches = s.swatches()
	return f
}

func (s *Scatter) channelState(ch Channel) ChannelState {
	b := s.bindings[ch]
	cs := ChannelState{
		Channel:   ch,
		Field:     b.Accessor.Field,
		Label:     s.registry.Label(ch),
		Family:    b.Family,
		Domain:    b.Domain(),
		Zoomed:    b.Zoomed,
		Summary:   s.summaries[ch],
		Aggregate: math.NaN(),
		Line:      math.NaN(),
	}
	if b.Scaler == nil {
		return cs
	}
	cs.Range = b.Scaler.Range()
	if !ch.Positional() {
		return cs
	}
	ax := Axis{
		Label:  cs.Label,
		Ticks:  s.ticks(ch),
		Scaler: b.Scaler,
	}
	cs.Ticks = ax.Compute()
	if cs.Summary.Defined() {
		iqr := Axis{
			Scaler: b.Scaler,
			Values: cs.Summary.Ticks(),
		}
		cs.IQR = iqr.Compute()
	}
	cs.Aggregate = s.aggr.Apply(s.snapshot.Values(ch))
	if !math.IsNaN(cs.Aggregate) {
		cs.Line = b.Scaler.Scale(cs.Aggregate)
	}
	return cs
}

// radiusLegend gives the circles of the size legend: half the largest value
// and the largest value.
func (s *Scatter) radiusLegend() []Tick {
	b := s.bindings[Radius]
	if b.Scaler == nil || b.Domain().Undefined() {
		return nil
	}
	hi := b.Domain().Hi
	ax := Axis{
		Scaler: b.Scaler,
		Values: []float64{hi * 0.5, hi},
	}
	return ax.Compute()
}

func (s *Scatter) swatches() []Swatch {
	b := s.bindings[Color]
	c, ok := b.Scaler.(Categorical)
	if !ok {
		return nil
	}
	var list []Swatch
	for i, str := range c.Categories() {
		list = append(list, Swatch{
			Label: str,
			Fill:  s.palette.Pick(i),
		})
	}
	return list
}

// TimeLabel prints t rounded to the nearest unit.
func TimeLabel(t float64) string {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return ""
	}
	return strconv.FormatFloat(math.Round(t), 'f', 0, 64)
}

// Diff tells which marks appear, stay and disappear between two frames.
type Diff struct {
	Enter  []string
	Update []string
	Exit   []string
}

// Join matches the marks of two frames by entity key.
func Join(prev, next Frame) Diff {
	var (
		diff Diff
		seen = make(map[string]struct{}, len(prev.Marks))
		kept = make(map[string]struct{}, len(next.Marks))
	)
	for _, m := range prev.Marks {
		seen[m.Key] = struct{}{}
	}
	for _, m := range next.Marks {
		kept[m.Key] = struct{}{}
		if _, ok := seen[m.Key]; ok {
			diff.Update = append(diff.Update, m.Key)
		} else {
			diff.Enter = append(diff.Enter, m.Key)
		}
	}
	for _, m := range prev.Marks {
		if _, ok := kept[m.Key]; !ok {
			diff.Exit = append(diff.Exit, m.Key)
		}
	}
	return diff
}
