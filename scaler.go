package motion

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"
)

type Family string

const (
	Linear    Family = "linear"
	Log       Family = "log"
	Sqrt      Family = "sqrt"
	Quantize  Family = "quantize"
	Threshold Family = "threshold"
	Ordinal   Family = "ordinal"
)

// QuantizeLevels is the number of output levels of quantize scales.
var QuantizeLevels = 10

func Families() []Family {
	return []Family{Linear, Log, Sqrt, Quantize, Threshold, Ordinal}
}

func ParseFamily(str string) (Family, error) {
	switch f := Family(strings.ToLower(strings.TrimSpace(str))); f {
	case Linear, Log, Sqrt, Quantize, Threshold, Ordinal:
		return f, nil
	case "logarithmic":
		return Log, nil
	case "square-root", "squareroot":
		return Sqrt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrScaleFamily, str)
	}
}

// DefaultMin is the lower bound a family uses when a domain is anchored at its
// origin: 1 for logarithmic scales, 0 for the others.
func DefaultMin(f Family) float64 {
	if f == Log {
		return 1
	}
	return 0
}

type Domain struct {
	Lo float64
	Hi float64
}

func NewDomain(lo, hi float64) Domain {
	return Domain{
		Lo: lo,
		Hi: hi,
	}
}

func UndefinedDomain() Domain {
	return NewDomain(math.NaN(), math.NaN())
}

// DomainOf returns the extent of values, NaN excluded.
func DomainOf(values []float64) Domain {
	d := UndefinedDomain()
	for _, v := range values {
		d = d.Include(v)
	}
	return d
}

func (d Domain) Include(v float64) Domain {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return d
	}
	if d.Undefined() {
		return NewDomain(v, v)
	}
	d.Lo = math.Min(d.Lo, v)
	d.Hi = math.Max(d.Hi, v)
	return d
}

func (d Domain) Undefined() bool {
	return math.IsNaN(d.Lo) || math.IsNaN(d.Hi)
}

func (d Domain) Extent() float64 {
	return d.Hi - d.Lo
}

func (d Domain) Contains(v float64) bool {
	return !d.Undefined() && v >= d.Lo && v <= d.Hi
}

func (d Domain) String() string {
	if d.Undefined() {
		return "[undefined]"
	}
	return fmt.Sprintf("[%g, %g]", d.Lo, d.Hi)
}

// Reframe carries a domain over from one family to another. A lower bound
// equal to the default minimum of the previous family is replaced by the
// default minimum of the next one, so that a linear domain starting at 0 starts
// at 1 once logarithmic and the other way round. A value chosen by the user
// that happens to equal the default minimum is swapped as well.
func Reframe(d Domain, from, to Family) Domain {
	if from == to || d.Undefined() {
		return d
	}
	if d.Lo == DefaultMin(from) {
		d.Lo = DefaultMin(to)
	}
	return d
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return math.Max(r.F, r.T)
}

func (r Range) Min() float64 {
	return math.Min(r.F, r.T)
}

func (r Range) project(norm float64) float64 {
	return r.F + norm*r.Len()
}

func (r Range) unproject(y float64) float64 {
	if r.Len() == 0 {
		return 0
	}
	return (y - r.F) / r.Len()
}

// Scaler maps values of a domain to render coordinates of a range.
type Scaler interface {
	Family() Family
	Domain() Domain
	Range() Range
	Scale(float64) float64
	Invert(float64) float64
	Ticks(int) []float64
	Nice(int) Scaler

	replace(Range) Scaler
}

// Categorical is implemented by scalers that place labels.
type Categorical interface {
	ScaleString(string) float64
	Categories() []string
}

func NewScaler(f Family, dom Domain, rg Range) (Scaler, error) {
	switch f {
	case Linear:
		return LinearScaler(dom, rg), nil
	case Log:
		return LogScaler(dom, rg)
	case Sqrt:
		return SqrtScaler(dom, rg), nil
	case Quantize:
		return QuantizeScaler(dom, rg, QuantizeLevels), nil
	case Threshold:
		return ThresholdScaler(dom, rg, nil), nil
	case Ordinal:
		var values []float64
		if !dom.Undefined() {
			values = LinearScaler(dom, rg).Ticks(defaultTicks)
		}
		return OrdinalScaler(values, rg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrScaleFamily, f)
	}
}

// WithRange returns a copy of s drawing to rg.
func WithRange(s Scaler, rg Range) Scaler {
	return s.replace(rg)
}

const defaultTicks = 10

type linearScaler struct {
	rg    Range
	inner scale.Linear
}

func LinearScaler(dom Domain, rg Range) Scaler {
	return linearScaler{
		rg:    rg,
		inner: scale.Linear{Min: dom.Lo, Max: dom.Hi},
	}
}

// TimeScaler is a linear scaler whose output never leaves rg and whose inverse
// never leaves dom.
func TimeScaler(dom Domain, rg Range) Scaler {
	s := linearScaler{
		rg:    rg,
		inner: scale.Linear{Min: dom.Lo, Max: dom.Hi},
	}
	s.inner.SetClamp(true)
	return s
}

func (s linearScaler) Family() Family {
	return Linear
}

func (s linearScaler) Domain() Domain {
	return NewDomain(s.inner.Min, s.inner.Max)
}

func (s linearScaler) Range() Range {
	return s.rg
}

func (s linearScaler) Scale(v float64) float64 {
	return s.rg.project(s.inner.Map(v))
}

func (s linearScaler) Invert(y float64) float64 {
	n := s.rg.unproject(y)
	if s.inner.Clamp {
		n = clamp(n)
	}
	return s.inner.Unmap(n)
}

func (s linearScaler) Ticks(n int) []float64 {
	if s.Domain().Undefined() {
		return nil
	}
	major, _ := s.inner.Ticks(scale.TickOptions{Max: n})
	return major
}

func (s linearScaler) Nice(n int) Scaler {
	if s.Domain().Undefined() {
		return s
	}
	x := s
	x.inner.Nice(scale.TickOptions{Max: n})
	return x
}

func (s linearScaler) replace(rg Range) Scaler {
	x := s
	x.rg = rg
	return x
}

type logScaler struct {
	rg    Range
	inner scale.Log
}

func LogScaler(dom Domain, rg Range) (Scaler, error) {
	if dom.Undefined() {
		return logScaler{rg: rg, inner: scale.Log{Min: dom.Lo, Max: dom.Hi, Base: 10}}, nil
	}
	inner, err := scale.NewLog(dom.Lo, dom.Hi, 10)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %s", ErrDomain, dom, err)
	}
	s := logScaler{
		rg:    rg,
		inner: inner,
	}
	return s, nil
}

func (s logScaler) Family() Family {
	return Log
}

func (s logScaler) Domain() Domain {
	return NewDomain(s.inner.Min, s.inner.Max)
}

func (s logScaler) Range() Range {
	return s.rg
}

func (s logScaler) Scale(v float64) float64 {
	return s.rg.project(s.inner.Map(v))
}

func (s logScaler) Invert(y float64) float64 {
	return s.inner.Unmap(s.rg.unproject(y))
}

func (s logScaler) Ticks(n int) []float64 {
	if s.Domain().Undefined() {
		return nil
	}
	major, _ := s.inner.Ticks(scale.TickOptions{Max: n})
	return major
}

func (s logScaler) Nice(n int) Scaler {
	if s.Domain().Undefined() {
		return s
	}
	x := s
	x.inner.Nice(scale.TickOptions{Max: n})
	return x
}

func (s logScaler) replace(rg Range) Scaler {
	x := s
	x.rg = rg
	return x
}

type sqrtScaler struct {
	rg    Range
	dom   Domain
	inner scale.Linear
}

func SqrtScaler(dom Domain, rg Range) Scaler {
	return sqrtScaler{
		rg:    rg,
		dom:   dom,
		inner: scale.Linear{Min: signedSqrt(dom.Lo), Max: signedSqrt(dom.Hi)},
	}
}

func (s sqrtScaler) Family() Family {
	return Sqrt
}

func (s sqrtScaler) Domain() Domain {
	return s.dom
}

func (s sqrtScaler) Range() Range {
	return s.rg
}

func (s sqrtScaler) Scale(v float64) float64 {
	return s.rg.project(s.inner.Map(signedSqrt(v)))
}

func (s sqrtScaler) Invert(y float64) float64 {
	r := s.inner.Unmap(s.rg.unproject(y))
	return math.Copysign(r*r, r)
}

func (s sqrtScaler) Ticks(n int) []float64 {
	return LinearScaler(s.dom, s.rg).Ticks(n)
}

func (s sqrtScaler) Nice(n int) Scaler {
	if s.dom.Undefined() {
		return s
	}
	return SqrtScaler(LinearScaler(s.dom, s.rg).Nice(n).Domain(), s.rg)
}

func (s sqrtScaler) replace(rg Range) Scaler {
	x := s
	x.rg = rg
	return x
}

type quantizeScaler struct {
	rg     Range
	dom    Domain
	levels []float64
}

func QuantizeScaler(dom Domain, rg Range, n int) Scaler {
	if n < 1 {
		n = 1
	}
	s := quantizeScaler{
		rg:     rg,
		dom:    dom,
		levels: []float64{rg.F},
	}
	if n > 1 {
		s.levels = vec.Linspace(rg.F, rg.T, n)
	}
	return s
}

func (s quantizeScaler) Family() Family {
	return Quantize
}

func (s quantizeScaler) Domain() Domain {
	return s.dom
}

func (s quantizeScaler) Range() Range {
	return s.rg
}

func (s quantizeScaler) bucket(v float64) int {
	n := len(s.levels)
	if s.dom.Extent() == 0 {
		return 0
	}
	i := int(math.Floor((v - s.dom.Lo) / s.dom.Extent() * float64(n)))
	if i < 0 {
		i = 0
	} else if i >= n {
		i = n - 1
	}
	return i
}

func (s quantizeScaler) Scale(v float64) float64 {
	if math.IsNaN(v) || s.dom.Undefined() {
		return math.NaN()
	}
	return s.levels[s.bucket(v)]
}

// Invert returns the lower bound of the bucket drawn nearest to y.
func (s quantizeScaler) Invert(y float64) float64 {
	i := nearest(s.levels, y)
	return s.dom.Lo + float64(i)*s.dom.Extent()/float64(len(s.levels))
}

// Ticks returns the bounds of the buckets, or linear ticks when there are more
// than n of them.
func (s quantizeScaler) Ticks(n int) []float64 {
	if s.dom.Undefined() {
		return nil
	}
	if len(s.levels)+1 > n {
		return LinearScaler(s.dom, s.rg).Ticks(n)
	}
	return vec.Linspace(s.dom.Lo, s.dom.Hi, len(s.levels)+1)
}

func (s quantizeScaler) Nice(n int) Scaler {
	if s.dom.Undefined() {
		return s
	}
	x := s
	x.dom = LinearScaler(s.dom, s.rg).Nice(n).Domain()
	return x
}

func (s quantizeScaler) replace(rg Range) Scaler {
	return QuantizeScaler(s.dom, rg, len(s.levels))
}

type thresholdScaler struct {
	rg         Range
	dom        Domain
	thresholds []float64
	levels     []float64
	auto       bool
}

// ThresholdScaler splits dom at thresholds. Without thresholds, the inner
// linear ticks of dom are used.
func ThresholdScaler(dom Domain, rg Range, thresholds []float64) Scaler {
	s := thresholdScaler{
		rg:   rg,
		dom:  dom,
		auto: len(thresholds) == 0,
	}
	if s.auto && !dom.Undefined() {
		for _, t := range LinearScaler(dom, rg).Ticks(defaultTicks) {
			if t > dom.Lo && t < dom.Hi {
				thresholds = append(thresholds, t)
			}
		}
	}
	s.thresholds = append(s.thresholds, thresholds...)
	sort.Float64s(s.thresholds)
	if n := len(s.thresholds) + 1; n > 1 {
		s.levels = vec.Linspace(rg.F, rg.T, n)
	} else {
		s.levels = []float64{rg.F}
	}
	return s
}

func (s thresholdScaler) Family() Family {
	return Threshold
}

func (s thresholdScaler) Domain() Domain {
	return s.dom
}

func (s thresholdScaler) Range() Range {
	return s.rg
}

func (s thresholdScaler) Scale(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	i := sort.Search(len(s.thresholds), func(i int) bool {
		return s.thresholds[i] > v
	})
	return s.levels[i]
}

// Invert returns the lower threshold of the level drawn nearest to y.
func (s thresholdScaler) Invert(y float64) float64 {
	i := nearest(s.levels, y)
	if i == 0 {
		return s.dom.Lo
	}
	return s.thresholds[i-1]
}

func (s thresholdScaler) Ticks(n int) []float64 {
	if len(s.thresholds) > n {
		return LinearScaler(s.dom, s.rg).Ticks(n)
	}
	return s.thresholds
}

func (s thresholdScaler) Nice(n int) Scaler {
	if s.dom.Undefined() {
		return s
	}
	dom := LinearScaler(s.dom, s.rg).Nice(n).Domain()
	if s.auto {
		return ThresholdScaler(dom, s.rg, nil)
	}
	x := s
	x.dom = dom
	return x
}

func (s thresholdScaler) replace(rg Range) Scaler {
	if s.auto {
		return ThresholdScaler(s.dom, rg, nil)
	}
	return ThresholdScaler(s.dom, rg, s.thresholds)
}

// ordinalScaler places each distinct value, or each category, in its own band.
type ordinalScaler struct {
	rg      Range
	Strings []string
	values  []float64
}

func OrdinalScaler(values []float64, rg Range) Scaler {
	list := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			list = append(list, v)
		}
	}
	sort.Float64s(list)
	list = uniqFloats(list)

	s := ordinalScaler{
		rg:      rg,
		values:  list,
		Strings: make([]string, len(list)),
	}
	for i := range list {
		s.Strings[i] = strconv.FormatFloat(list[i], 'g', -1, 64)
	}
	return s
}

// CategoryScaler places categories in the order given, duplicates removed.
func CategoryScaler(str []string, rg Range) Scaler {
	return ordinalScaler{
		rg:      rg,
		Strings: Uniques(str),
	}
}

func (s ordinalScaler) Family() Family {
	return Ordinal
}

func (s ordinalScaler) Domain() Domain {
	if len(s.values) == 0 {
		if len(s.Strings) == 0 {
			return UndefinedDomain()
		}
		return NewDomain(0, float64(len(s.Strings)-1))
	}
	return NewDomain(s.values[0], s.values[len(s.values)-1])
}

func (s ordinalScaler) Range() Range {
	return s.rg
}

func (s ordinalScaler) Space() float64 {
	if len(s.Strings) == 0 {
		return 0
	}
	return s.rg.Len() / float64(len(s.Strings))
}

// Scale returns the start of the band of v. For categories, v is the index
// of the category.
func (s ordinalScaler) Scale(v float64) float64 {
	if math.IsNaN(v) || len(s.Strings) == 0 {
		return math.NaN()
	}
	x := int(v)
	if len(s.values) > 0 {
		x = nearest(s.values, v)
	}
	return s.rg.F + float64(x)*s.Space()
}

func (s ordinalScaler) ScaleString(str string) float64 {
	for i := range s.Strings {
		if s.Strings[i] == str {
			return s.rg.F + float64(i)*s.Space()
		}
	}
	return math.NaN()
}

func (s ordinalScaler) Categories() []string {
	return s.Strings
}

func (s ordinalScaler) Invert(y float64) float64 {
	if len(s.Strings) == 0 || s.Space() == 0 {
		return math.NaN()
	}
	i := int(math.Floor((y - s.rg.F) / s.Space()))
	if i < 0 {
		i = 0
	} else if i >= len(s.Strings) {
		i = len(s.Strings) - 1
	}
	if len(s.values) > 0 {
		return s.values[i]
	}
	return float64(i)
}

func (s ordinalScaler) Ticks(n int) []float64 {
	list := s.values
	if len(list) == 0 {
		list = make([]float64, len(s.Strings))
		for i := range list {
			list[i] = float64(i)
		}
	}
	if n > 0 && n < len(list) {
		return list[:n]
	}
	return list
}

func (s ordinalScaler) Nice(int) Scaler {
	return s
}

func (s ordinalScaler) replace(rg Range) Scaler {
	x := s
	x.rg = rg
	x.Strings = make([]string, len(s.Strings))
	copy(x.Strings, s.Strings)
	return x
}

func signedSqrt(v float64) float64 {
	return math.Copysign(math.Sqrt(math.Abs(v)), v)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func nearest(list []float64, v float64) int {
	var (
		best = 0
		dist = math.Inf(1)
	)
	for i := range list {
		if d := math.Abs(list[i] - v); d < dist {
			best, dist = i, d
		}
	}
	return best
}

func uniqFloats(list []float64) []float64 {
	if len(list) == 0 {
		return list
	}
	out := list[:1]
	for _, v := range list[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
