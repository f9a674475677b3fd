package motion

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
)

// Binding is the state of one channel: the field driving it, its scale family
// and the scaler built from the data of that field. Base is the domain the
// scaler was built from, before nice rounding.
type Binding struct {
	Channel  Channel
	Accessor Accessor
	Family   Family
	Scaler   Scaler
	Base     Domain
	Zoomed   bool
}

func (b Binding) Bound() bool {
	return b.Accessor.Bound()
}

func (b Binding) Domain() Domain {
	if b.Scaler == nil {
		return UndefinedDomain()
	}
	return b.Scaler.Domain()
}

type Option func(*Scatter)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scatter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithPalette(p Palette) Option {
	return func(s *Scatter) {
		if p.Len() > 0 {
			s.palette = p
		}
	}
}

var tracked = []Channel{X, Y}

// Scatter is one animated scatter chart over a dataset. The dataset can be
// shared between charts; everything else belongs to the chart.
//
// A Scatter is not safe for concurrent use: input, rebinds and ticks are
// expected to come from the same loop.
type Scatter struct {
	ID     string
	Title  string
	Width  float64
	Height float64
	Padding

	XTicks    int
	YTicks    int
	MaxRadius float64

	data      *Dataset
	registry  *Registry
	bindings  [numChannels]Binding
	timeScale Scaler
	driver    *Driver
	duration  time.Duration
	aggr      Aggregate
	whisker   float64
	palette   Palette
	families  [numChannels]Family

	snapshot  Snapshot
	summaries [numChannels]Summary

	logger *slog.Logger
}

func New(data *Dataset, cfg Config, options ...Option) (*Scatter, error) {
	if data == nil {
		return nil, ErrEmptyDataset
	}
	ease, err := ParseEasing(cfg.Easing)
	if err != nil {
		return nil, err
	}
	aggr := AggrMedian
	if cfg.Aggregate != "" {
		if aggr, err = ParseAggregate(string(cfg.Aggregate)); err != nil {
			return nil, err
		}
	}
	s := Scatter{
		ID:        uuid.NewString(),
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Padding:   cfg.Padding,
		XTicks:    cfg.XTicks,
		YTicks:    cfg.YTicks,
		MaxRadius: cfg.MaxRadius,
		data:      data,
		registry:  NewRegistry(data),
		driver:    NewDriver(ease),
		duration:  cfg.Duration,
		aggr:      aggr,
		whisker:   cfg.Whisker,
		palette:   Category10.Reverse(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.setDefaults()
	if s.DrawingWidth() <= 0 || s.DrawingHeight() <= 0 {
		return nil, ErrGeometry
	}
	for _, o := range options {
		o(&s)
	}
	s.logger = s.logger.With("chart", s.ID)

	for field, label := range cfg.Labels {
		s.registry.SetLabel(field, label)
	}
	from, to := data.TimeRange()
	s.timeScale = TimeScaler(NewDomain(from, to), s.rangeOf(X))

	for _, ch := range Channels() {
		s.families[ch] = cfg.family(ch)
		s.bindings[ch] = Binding{
			Channel: ch,
			Family:  s.families[ch],
			Base:    UndefinedDomain(),
		}
		field := cfg.Bindings[ch]
		if field == "" {
			continue
		}
		if err := s.bind(ch, field); err != nil {
			return nil, err
		}
		if err := s.rescale(ch); err != nil {
			return nil, err
		}
	}
	s.display(from)
	s.logger.Debug("chart ready", "entities", data.Len(), "from", from, "to", to)
	return &s, nil
}

func (s *Scatter) setDefaults() {
	if s.Title == "" {
		s.Title = s.data.Title
	}
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	if s.XTicks <= 0 {
		s.XTicks = DefaultXTicks
	}
	if s.YTicks <= 0 {
		s.YTicks = DefaultYTicks
	}
	if s.MaxRadius <= 0 {
		s.MaxRadius = DefaultMaxRadius
	}
	if s.duration <= 0 {
		s.duration = DefaultDuration
	}
	if s.whisker <= 0 {
		s.whisker = DefaultWhisker
	}
}

func (s *Scatter) DrawingWidth() float64 {
	return s.Width - s.Padding.Horizontal()
}

func (s *Scatter) DrawingHeight() float64 {
	return s.Height - s.Padding.Vertical()
}

// Play starts the animation over the whole time range of the dataset.
func (s *Scatter) Play() error {
	if s.data.Empty() {
		return ErrEmptyDataset
	}
	from, to := s.data.TimeRange()
	if err := s.driver.Start(from, to, s.duration); err != nil {
		return err
	}
	s.display(from)
	s.logger.Info("animation started", "from", from, "to", to, "duration", s.duration)
	return nil
}

// Tick advances the animation by delta and reports whether the time shown
// changed.
func (s *Scatter) Tick(delta time.Duration) bool {
	prev := s.driver.State()
	t, changed := s.driver.Tick(delta)
	if changed {
		s.display(t)
	}
	if curr := s.driver.State(); curr != prev {
		s.logger.Info("animation state changed", "from", prev, "to", curr, "time", t)
	}
	return changed
}

// Hover puts the chart in interactive mode. A running animation is cancelled
// where it is.
func (s *Scatter) Hover() bool {
	switch s.driver.State() {
	case Running:
		s.interrupt("hover")
		return true
	case Idle:
		s.driver.Seek(s.Time())
		return true
	default:
		return false
	}
}

// Pointer maps a position along the horizontal axis to a time. The time is
// shown at the next Tick. Input is ignored while the animation runs.
func (s *Scatter) Pointer(pos float64) bool {
	if s.driver.State() != Interactive {
		return false
	}
	return s.driver.Point(s.timeScale.Invert(pos))
}

// Display shows the time t right away.
func (s *Scatter) Display(t float64) {
	s.driver.Seek(t)
	s.display(t)
}

func (s *Scatter) Time() float64 {
	return s.snapshot.Time
}

func (s *Scatter) State() State {
	return s.driver.State()
}

func (s *Scatter) Progress() float64 {
	return s.driver.Progress()
}

func (s *Scatter) Duration() time.Duration {
	return s.duration
}

func (s *Scatter) Dataset() *Dataset {
	return s.data
}

func (s *Scatter) Fields() []string {
	return s.registry.Fields()
}

func (s *Scatter) Registry() *Registry {
	return s.registry
}

func (s *Scatter) Binding(ch Channel) Binding {
	if !ch.valid() {
		return Binding{Channel: ch}
	}
	return s.bindings[ch]
}

func (s *Scatter) Snapshot() Snapshot {
	return s.snapshot
}

func (s *Scatter) Summary(ch Channel) Summary {
	if !ch.valid() {
		return UndefinedSummary()
	}
	return s.summaries[ch]
}

func (s *Scatter) Aggregate() Aggregate {
	return s.aggr
}

func (s *Scatter) display(t float64) {
	s.snapshot = Interpolate(s.data, s.registry, t)
	for i := range s.summaries {
		s.summaries[i] = UndefinedSummary()
	}
	for _, ch := range tracked {
		if !s.bindings[ch].Bound() {
			continue
		}
		s.summaries[ch], _ = Summarize(s.snapshot.Values(ch), s.whisker)
	}
}

func (s *Scatter) interrupt(reason string) {
	if s.driver.Cancel() {
		s.logger.Info("animation cancelled", "reason", reason, "time", s.driver.Current())
	}
}

func (s *Scatter) bind(ch Channel, field string) error {
	if s.data.Empty() {
		return s.bindEmpty(ch, field)
	}
	err := s.registry.Bind(ch, field)
	if err != nil && !IsWarning(err) {
		return err
	}
	if err != nil {
		var mf *MissingFieldError
		errors.As(err, &mf)
		s.logger.Warn("field missing on some entities", "channel", ch, "field", field, "count", len(mf.Keys))
	}
	s.setAccessor(ch, s.registry.Accessor(ch))
	return nil
}

// bindEmpty records field for ch without checking it: an empty dataset has
// no field at all.
func (s *Scatter) bindEmpty(ch Channel, field string) error {
	if !ch.valid() {
		return fmt.Errorf("%w: %d", ErrChannel, int(ch))
	}
	acc := FieldSeries(field)
	if ch == Key {
		acc = FieldAttr(field)
	}
	s.registry.restore(ch, acc)
	s.setAccessor(ch, acc)
	s.logger.Warn("field missing on some entities", "channel", ch, "field", field, "count", 0)
	return nil
}

// setAccessor installs acc on ch. Categories force an ordinal scale; going
// back to a numeric series restores the family chosen for the channel.
func (s *Scatter) setAccessor(ch Channel, acc Accessor) {
	b := &s.bindings[ch]
	prev := b.Accessor
	b.Accessor = acc
	switch {
	case ch == Key:
	case acc.Kind == KindAttr:
		b.Family = Ordinal
	case prev.Kind == KindAttr && prev.Bound():
		b.Family = s.families[ch]
	}
}

func (s *Scatter) rescale(ch Channel) error {
	b := &s.bindings[ch]
	if ch == Key || !b.Bound() {
		b.Scaler = nil
		b.Base = UndefinedDomain()
		return nil
	}
	next, err := s.buildScaler(*b)
	if err != nil {
		return err
	}
	*b = next
	return nil
}

// buildScaler computes the domain of a binding over the whole time range.
// Positional channels start at the default minimum of their family unless
// zoomed on the data. Without entities the binding stays without scaler.
func (s *Scatter) buildScaler(b Binding) (Binding, error) {
	b.Scaler, b.Base = nil, UndefinedDomain()
	if s.data.Empty() {
		return b, nil
	}
	rg := s.rangeOf(b.Channel)
	if b.Accessor.Kind == KindAttr {
		cats := s.categories(b.Accessor)
		if b.Channel == Color {
			rg = NewRange(0, float64(len(cats)))
		}
		b.Scaler = CategoryScaler(cats, rg)
		b.Base = b.Scaler.Domain()
		return b, nil
	}
	if b.Family == Ordinal {
		sc := OrdinalScaler(s.distinct(b.Accessor), rg)
		if c, ok := sc.(Categorical); ok && b.Channel == Color {
			sc = WithRange(sc, NewRange(0, float64(len(c.Categories()))))
		}
		b.Scaler = sc
		b.Base = sc.Domain()
		return b, nil
	}
	dom := s.extent(b.Accessor)
	if b.Channel.Positional() && !dom.Undefined() && !b.Zoomed {
		dom.Lo = DefaultMin(b.Family)
	}
	return s.scaleFrom(b, dom, rg)
}

// scaleFrom builds the scaler of b over dom. Positional scales are niced,
// dom is kept as the base domain.
func (s *Scatter) scaleFrom(b Binding, dom Domain, rg Range) (Binding, error) {
	sc, err := NewScaler(b.Family, dom, rg)
	if err != nil {
		return b, err
	}
	if b.Channel.Positional() {
		sc = sc.Nice(s.ticks(b.Channel))
	}
	b.Scaler, b.Base = sc, dom
	return b, nil
}

func (s *Scatter) rangeOf(ch Channel) Range {
	switch ch {
	case X:
		return NewRange(0, s.DrawingWidth())
	case Y:
		return NewRange(s.DrawingHeight(), 0)
	case Radius:
		return NewRange(0, s.MaxRadius)
	case Color:
		return NewRange(0, float64(s.palette.Len()-1))
	default:
		return Range{}
	}
}

func (s *Scatter) ticks(ch Channel) int {
	if ch == X {
		return s.XTicks
	}
	return s.YTicks
}

// extent returns the bounds of the values taken by acc over the whole time
// range. Entities without the field are skipped.
func (s *Scatter) extent(acc Accessor) Domain {
	dom := UndefinedDomain()
	for _, e := range s.data.Entities {
		ts, ok := acc.Series(e)
		if !ok {
			continue
		}
		lo, hi := ts.Bounds()
		dom = dom.Include(lo).Include(hi)
	}
	return dom
}

func (s *Scatter) distinct(acc Accessor) []float64 {
	var list []float64
	for _, e := range s.data.Entities {
		ts, ok := acc.Series(e)
		if !ok {
			continue
		}
		for _, x := range ts {
			list = append(list, x.Value)
		}
	}
	return list
}

func (s *Scatter) categories(acc Accessor) []string {
	var list []string
	for _, e := range s.data.Entities {
		if str, ok := acc.Attr(e); ok && str != "" {
			list = append(list, str)
		}
	}
	return Uniques(list)
}

func (s *Scatter) position(ch Channel, r Record) float64 {
	b := s.bindings[ch]
	if b.Scaler == nil {
		return math.NaN()
	}
	if b.Accessor.Kind == KindAttr {
		if c, ok := b.Scaler.(Categorical); ok {
			return c.ScaleString(r.Attr(ch))
		}
		return math.NaN()
	}
	return b.Scaler.Scale(r.Value(ch))
}

func (s *Scatter) fill(r Record) string {
	if !s.bindings[Color].Bound() {
		return s.palette.Pick(0)
	}
	pos := s.position(Color, r)
	if math.IsNaN(pos) {
		return ""
	}
	return s.palette.Pick(int(math.Round(pos)))
}
