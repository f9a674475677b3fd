package motion

import (
	"math"
	"reflect"
	"testing"
)

func TestScatter_Frame(t *testing.T) {
	s := sampleChart(t)
	s.Display(2000)
	f := s.Frame()

	if f.Label != "2000" {
		t.Errorf("label: want 2000, got %s", f.Label)
	}
	if got := f.Keys(); !reflect.DeepEqual(got, []string{"AGO", "NOR", "TON"}) {
		t.Errorf("marks should be sorted by decreasing radius, got %v", got)
	}
	for _, m := range f.Marks {
		if !m.Visible() {
			t.Errorf("%s: mark should be visible", m.Key)
		}
		if m.Fill == "" {
			t.Errorf("%s: mark should be filled", m.Key)
		}
	}
	if r := f.Marks[0].R; r != DefaultMaxRadius {
		t.Errorf("largest mark: want radius %g, got %g", float64(DefaultMaxRadius), r)
	}
	if r := f.Marks[2].R; !math.IsNaN(r) {
		t.Errorf("mark without population should have no radius, got %g", r)
	}
	x := f.Channel(X)
	if x.Field != "income" || x.Family != Log {
		t.Errorf("x channel: unexpected %s/%s", x.Field, x.Family)
	}
	if len(x.Ticks) == 0 {
		t.Errorf("x channel should have ticks")
	}
	if len(x.IQR) != 5 {
		t.Errorf("x channel should have 5 interquartile ticks, got %d", len(x.IQR))
	}
	if x.Aggregate != 3500 {
		t.Errorf("median income: want 3500, got %g", x.Aggregate)
	}
	if math.IsNaN(x.Line) || x.Line < 0 || x.Line > s.DrawingWidth() {
		t.Errorf("aggregate line should be drawn inside the chart, got %g", x.Line)
	}
	if y := f.Channel(Y); y.Label != "life expectancy" {
		t.Errorf("y label: want %q, got %q", "life expectancy", y.Label)
	}
	if r := f.Channel(Radius); len(r.Ticks) != 0 || !math.IsNaN(r.Aggregate) {
		t.Errorf("radius channel should have neither ticks nor aggregate")
	}
	if len(f.Legend) != 2 {
		t.Errorf("legend: want 2 circles, got %d", len(f.Legend))
	}
	want := []string{"Europe", "Africa", "Oceania"}
	if len(f.Swatches) != len(want) {
		t.Fatalf("swatches: want %d, got %d", len(want), len(f.Swatches))
	}
	for i := range want {
		if f.Swatches[i].Label != want[i] {
			t.Errorf("swatch %d: want %s, got %s", i, want[i], f.Swatches[i].Label)
		}
	}
	for _, m := range f.Marks {
		if m.Key == "NOR" && m.Fill != f.Swatches[0].Fill {
			t.Errorf("NOR should be filled with the colour of Europe")
		}
	}
}

func TestJoin(t *testing.T) {
	frame := func(keys ...string) Frame {
		var f Frame
		for _, k := range keys {
			f.Marks = append(f.Marks, Mark{Record: Record{Key: k}})
		}
		return f
	}
	diff := Join(frame("a", "b"), frame("b", "c"))
	if !reflect.DeepEqual(diff.Enter, []string{"c"}) {
		t.Errorf("enter: want [c], got %v", diff.Enter)
	}
	if !reflect.DeepEqual(diff.Update, []string{"b"}) {
		t.Errorf("update: want [b], got %v", diff.Update)
	}
	if !reflect.DeepEqual(diff.Exit, []string{"a"}) {
		t.Errorf("exit: want [a], got %v", diff.Exit)
	}
}

func TestTimeLabel(t *testing.T) {
	tests := []struct {
		Time float64
		Want string
	}{
		{Time: 1994.6, Want: "1995"},
		{Time: 1800, Want: "1800"},
		{Time: math.NaN(), Want: ""},
	}
	for _, tt := range tests {
		if got := TimeLabel(tt.Time); got != tt.Want {
			t.Errorf("time %g: want %q, got %q", tt.Time, tt.Want, got)
		}
	}
}
