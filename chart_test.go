package motion

import (
	"errors"
	"math"
	"testing"
	"time"
)

func makeSerie(values ...float64) TimeSeries {
	var ts TimeSeries
	for i := 0; i+1 < len(values); i += 2 {
		ts = append(ts, MakeSample(values[i], values[i+1]))
	}
	return ts
}

func sampleDataset(t *testing.T) *Dataset {
	t.Helper()
	entities := []Entity{
		{
			Key:   "NOR",
			Label: "Norway",
			Attrs: map[string]string{"name": "Norway", "region": "Europe"},
			Series: map[string]TimeSeries{
				"income":         makeSerie(1990, 20000, 2000, 40000),
				"lifeExpectancy": makeSerie(1990, 76, 2000, 79),
				"population":     makeSerie(1990, 4.2, 2000, 4.5),
			},
		},
		{
			Key:   "AGO",
			Label: "Angola",
			Attrs: map[string]string{"name": "Angola", "region": "Africa"},
			Series: map[string]TimeSeries{
				"income":         makeSerie(1990, 1500, 2000, 2000),
				"lifeExpectancy": makeSerie(1990, 40, 2000, 45),
				"population":     makeSerie(1990, 10, 2000, 14),
			},
		},
		{
			Key:   "TON",
			Label: "Tonga",
			Attrs: map[string]string{"name": "Tonga", "region": "Oceania"},
			Series: map[string]TimeSeries{
				"income":         makeSerie(1995, 3000, 2000, 3500),
				"lifeExpectancy": makeSerie(1990, 68, 2000, 70),
			},
		},
	}
	meta := Metadata{
		Title:  "nations",
		Labels: map[string]string{"lifeExpectancy": "life expectancy"},
	}
	data, err := NewDataset(meta, entities)
	if err != nil {
		t.Fatalf("unexpected error building dataset: %s", err)
	}
	return data
}

func sampleConfig() Config {
	cfg := DefaultConfig()
	cfg.Bindings = map[Channel]string{
		X:      "income",
		Y:      "lifeExpectancy",
		Radius: "population",
		Color:  "region",
		Key:    "name",
	}
	return cfg
}

func sampleChart(t *testing.T) *Scatter {
	t.Helper()
	s, err := New(sampleDataset(t), sampleConfig())
	if err != nil {
		t.Fatalf("unexpected error building chart: %s", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := sampleChart(t)
	if s.State() != Idle {
		t.Errorf("state: want %s, got %s", Idle, s.State())
	}
	if s.Time() != 1990 {
		t.Errorf("time: want 1990, got %g", s.Time())
	}
	if s.Title != "nations" {
		t.Errorf("title: want nations, got %s", s.Title)
	}
	x := s.Binding(X)
	if x.Family != Log {
		t.Errorf("x family: want %s, got %s", Log, x.Family)
	}
	if dom := x.Domain(); dom.Lo != 1 || dom.Hi < 40000 {
		t.Errorf("x domain: unexpected %s", dom)
	}
	if dom := s.Binding(Y).Domain(); dom.Lo != 0 || dom.Hi < 79 {
		t.Errorf("y domain: unexpected %s", dom)
	}
	if dom := s.Binding(Radius).Domain(); dom.Lo != 4.2 || dom.Hi != 14 {
		t.Errorf("radius domain: unexpected %s", dom)
	}
	if !s.Binding(Radius).Bound() {
		t.Errorf("radius should stay bound when some entities lack the field")
	}
	if s.Binding(Color).Family != Ordinal {
		t.Errorf("color bound to categories should use an ordinal scale")
	}
	if s.Binding(Key).Scaler != nil {
		t.Errorf("key channel should not have a scale")
	}
	if got := s.Registry().Label(Y); got != "life expectancy" {
		t.Errorf("y label: want %q, got %q", "life expectancy", got)
	}
	rec, ok := s.Snapshot().Get("TON")
	if !ok {
		t.Fatalf("TON not found in snapshot")
	}
	if x := rec.Value(X); x != 3000 {
		t.Errorf("TON income before its first sample: want 3000, got %g", x)
	}
	if !math.IsNaN(rec.Value(Radius)) {
		t.Errorf("TON population should be undefined, got %g", rec.Value(Radius))
	}
	if sum := s.Summary(Radius); sum.Defined() {
		t.Errorf("radius should not be summarized")
	}
	if sum := s.Summary(Y); sum.Count != 3 {
		t.Errorf("y summary: want 3 values, got %d", sum.Count)
	}
}

func TestNew_Errors(t *testing.T) {
	data := sampleDataset(t)
	if _, err := New(nil, sampleConfig()); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("nil dataset: want %s, got %v", ErrEmptyDataset, err)
	}
	cfg := sampleConfig()
	cfg.Bindings[X] = "gdp"
	if _, err := New(data, cfg); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown field: want %s, got %v", ErrUnknownField, err)
	}
	cfg = sampleConfig()
	cfg.Bindings[Y] = "region"
	if _, err := New(data, cfg); !errors.Is(err, ErrFieldKind) {
		t.Errorf("attribute on y: want %s, got %v", ErrFieldKind, err)
	}
	cfg = sampleConfig()
	cfg.Width = 50
	if _, err := New(data, cfg); !errors.Is(err, ErrGeometry) {
		t.Errorf("small chart: want %s, got %v", ErrGeometry, err)
	}
	cfg = sampleConfig()
	cfg.Easing = "bounce"
	if _, err := New(data, cfg); err == nil {
		t.Errorf("unknown easing: expected error")
	}
	cfg = sampleConfig()
	cfg.Families[X] = Linear
	cfg.Bindings[X] = "population"
	s, err := New(data, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if dom := s.Binding(X).Domain(); dom.Lo != 0 {
		t.Errorf("linear x domain should start at 0, got %s", dom)
	}
}

func TestScatter_Empty(t *testing.T) {
	data, err := NewDataset(Metadata{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	s, err := New(data, sampleConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, ch := range []Channel{X, Y, Radius, Color} {
		b := s.Binding(ch)
		if !b.Bound() {
			t.Errorf("%s: binding should be recorded", ch)
		}
		if !b.Domain().Undefined() {
			t.Errorf("%s: domain of empty dataset should be undefined, got %s", ch, b.Domain())
		}
	}
	if err := s.Play(); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("play: want %s, got %v", ErrEmptyDataset, err)
	}
	if !s.Frame().Empty() {
		t.Errorf("frame of empty dataset should be empty")
	}
	if s.Summary(X).Defined() {
		t.Errorf("summary of empty dataset should be undefined")
	}
	if err := s.Rebind(Y, "population"); err != nil {
		t.Errorf("rebind: unexpected error: %s", err)
	}
	if err := s.SetFamily(X, "linear"); err != nil {
		t.Errorf("set family: unexpected error: %s", err)
	}
	if !s.Binding(X).Domain().Undefined() || s.Summary(Y).Defined() {
		t.Errorf("empty dataset should stay undefined after changes")
	}
}

func TestScatter_SharedDataset(t *testing.T) {
	data := sampleDataset(t)
	fst, err := New(data, sampleConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	snd, err := New(data, sampleConfig())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if fst.ID == snd.ID || fst.Registry() == snd.Registry() {
		t.Fatalf("charts should not share their state")
	}
	scaled := []Channel{X, Y, Radius, Color}
	var domains [numChannels]Domain
	for _, ch := range scaled {
		domains[ch] = snd.Binding(ch).Domain()
	}
	median := snd.Summary(Y).Median

	if err := fst.Play(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	fst.Tick(15 * time.Second)
	if err := fst.Rebind(Radius, "income"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := fst.SetFamily(X, "linear"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := fst.SetFamily(Y, "log"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	fst.Tick(time.Second)
	if fst.Time() != 1995 {
		t.Errorf("first chart time: want 1995, got %g", fst.Time())
	}

	if snd.State() != Idle || snd.Time() != 1990 {
		t.Errorf("second chart: want %s at 1990, got %s at %g", Idle, snd.State(), snd.Time())
	}
	if got := snd.Registry().Accessor(Radius).Field; got != "population" {
		t.Errorf("second chart radius: want population, got %s", got)
	}
	if snd.Binding(X).Family != Log || snd.Binding(Y).Family != Linear {
		t.Errorf("second chart families changed: x=%s y=%s", snd.Binding(X).Family, snd.Binding(Y).Family)
	}
	for _, ch := range scaled {
		if got := snd.Binding(ch).Domain(); got != domains[ch] {
			t.Errorf("second chart %s domain: want %s, got %s", ch, domains[ch], got)
		}
	}
	if got := snd.Summary(Y).Median; got != median {
		t.Errorf("second chart median: want %g, got %g", median, got)
	}
	rec, _ := snd.Snapshot().Get("NOR")
	if got := rec.Value(Radius); got != 4.2 {
		t.Errorf("second chart NOR radius: want 4.2, got %g", got)
	}
}

func TestScatter_Play(t *testing.T) {
	s := sampleChart(t)
	if err := s.Play(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := s.Play(); !errors.Is(err, ErrRunning) {
		t.Errorf("play while running: want %s, got %v", ErrRunning, err)
	}
	if !s.Tick(15 * time.Second) {
		t.Errorf("tick should change the time shown")
	}
	if s.Time() != 1995 {
		t.Errorf("time: want 1995, got %g", s.Time())
	}
	if s.State() != Running {
		t.Errorf("state: want %s, got %s", Running, s.State())
	}
	s.Tick(20 * time.Second)
	if s.Time() != 2000 {
		t.Errorf("time: want 2000, got %g", s.Time())
	}
	if s.State() != Interactive {
		t.Errorf("state: want %s, got %s", Interactive, s.State())
	}
	if s.Tick(time.Second) {
		t.Errorf("tick without input should not change the time")
	}
}

func TestScatter_Pointer(t *testing.T) {
	s := sampleChart(t)
	if err := s.Play(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if s.Pointer(0) {
		t.Errorf("pointer should be ignored while running")
	}
	if !s.Hover() {
		t.Errorf("hover should cancel the animation")
	}
	if s.State() != Interactive {
		t.Fatalf("state: want %s, got %s", Interactive, s.State())
	}
	if !s.Pointer(s.DrawingWidth()) {
		t.Fatalf("pointer should be accepted once interactive")
	}
	s.Tick(0)
	if s.Time() != 2000 {
		t.Errorf("time: want 2000, got %g", s.Time())
	}
	s.Pointer(s.DrawingWidth() * 2)
	s.Tick(0)
	if s.Time() != 2000 {
		t.Errorf("time beyond the axis: want 2000, got %g", s.Time())
	}
	s.Pointer(s.DrawingWidth() / 2)
	s.Tick(0)
	if s.Time() != 1995 {
		t.Errorf("time: want 1995, got %g", s.Time())
	}
}

func TestScatter_Hover(t *testing.T) {
	s := sampleChart(t)
	if !s.Hover() {
		t.Errorf("hover on idle chart should make it interactive")
	}
	if s.State() != Interactive {
		t.Errorf("state: want %s, got %s", Interactive, s.State())
	}
	if s.Hover() {
		t.Errorf("hover on interactive chart should do nothing")
	}
}

func TestScatter_Display(t *testing.T) {
	s := sampleChart(t)
	s.Display(1995)
	rec, _ := s.Snapshot().Get("NOR")
	if got := rec.Value(X); got != 30000 {
		t.Errorf("NOR income at 1995: want 30000, got %g", got)
	}
	if got := rec.Attr(Color); got != "Europe" {
		t.Errorf("NOR region: want Europe, got %s", got)
	}
	if rec.Label != "Norway" {
		t.Errorf("NOR label: want Norway, got %s", rec.Label)
	}
	sum := s.Summary(Y)
	if sum.Median != 69 {
		t.Errorf("median life expectancy at 1995: want 69, got %g", sum.Median)
	}
}
