package motion

import (
	"fmt"
)

type FieldKind int

const (
	KindSeries FieldKind = iota
	KindAttr
)

func (k FieldKind) String() string {
	switch k {
	case KindSeries:
		return "series"
	case KindAttr:
		return "attribute"
	default:
		return "unknown"
	}
}

type (
	SeriesFunc func(Entity) (TimeSeries, bool)
	AttrFunc   func(Entity) (string, bool)
)

// Accessor extracts the value driving a channel from an entity. The zero
// Accessor is unbound.
type Accessor struct {
	Field string
	Kind  FieldKind

	series SeriesFunc
	attr   AttrFunc
}

func FieldSeries(field string) Accessor {
	return Accessor{
		Field: field,
		Kind:  KindSeries,
		series: func(e Entity) (TimeSeries, bool) {
			return e.Serie(field)
		},
	}
}

func FieldAttr(field string) Accessor {
	return Accessor{
		Field: field,
		Kind:  KindAttr,
		attr: func(e Entity) (string, bool) {
			return e.Attr(field)
		},
	}
}

func (a Accessor) Bound() bool {
	return a.series != nil || a.attr != nil
}

func (a Accessor) Series(e Entity) (TimeSeries, bool) {
	if a.series == nil {
		return nil, false
	}
	return a.series(e)
}

func (a Accessor) Attr(e Entity) (string, bool) {
	if a.attr == nil {
		return "", false
	}
	return a.attr(e)
}

// Registry holds the extraction functions known for a dataset and the
// accessor currently bound to each channel. Every chart owns its registry;
// the dataset behind it is shared.
type Registry struct {
	data     *Dataset
	fields   map[string]Accessor
	labels   map[string]string
	bindings [numChannels]Accessor
}

func NewRegistry(data *Dataset) *Registry {
	r := Registry{
		data:   data,
		fields: make(map[string]Accessor),
		labels: make(map[string]string),
	}
	for _, f := range data.Fields() {
		k, _ := data.Kind(f)
		if k == KindSeries {
			r.fields[f] = FieldSeries(f)
		} else {
			r.fields[f] = FieldAttr(f)
		}
	}
	return &r
}

// RegisterSeries adds a derived numeric field computed by fn.
func (r *Registry) RegisterSeries(field, label string, fn SeriesFunc) {
	r.fields[field] = Accessor{
		Field:  field,
		Kind:   KindSeries,
		series: fn,
	}
	if label != "" {
		r.labels[field] = label
	}
}

// RegisterAttr adds a derived categorical field computed by fn.
func (r *Registry) RegisterAttr(field, label string, fn AttrFunc) {
	r.fields[field] = Accessor{
		Field: field,
		Kind:  KindAttr,
		attr:  fn,
	}
	if label != "" {
		r.labels[field] = label
	}
}

// SetLabel overrides the label shown for field.
func (r *Registry) SetLabel(field, label string) {
	if label == "" {
		delete(r.labels, field)
		return
	}
	r.labels[field] = label
}

func (r *Registry) Fields() []string {
	var list []string
	for f := range r.fields {
		list = append(list, f)
	}
	return sortStrings(list)
}

// Bind makes field drive ch. Other channels are left untouched. Entities
// lacking the field are reported by a *MissingFieldError; in that case the
// binding is still in place.
func (r *Registry) Bind(ch Channel, field string) error {
	if !ch.valid() {
		return fmt.Errorf("%w: %d", ErrChannel, int(ch))
	}
	acc, ok := r.fields[field]
	if !ok {
		return fmt.Errorf("%s: %w %q", ch, ErrUnknownField, field)
	}
	if err := checkKind(ch, acc.Kind); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	r.bindings[ch] = acc

	var missing []string
	for _, e := range r.data.Entities {
		var ok bool
		if acc.Kind == KindSeries {
			_, ok = acc.Series(e)
		} else {
			_, ok = acc.Attr(e)
		}
		if !ok {
			missing = append(missing, e.Key)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldError{
			Channel: ch,
			Field:   field,
			Keys:    missing,
		}
	}
	return nil
}

func (r *Registry) restore(ch Channel, acc Accessor) {
	if ch.valid() {
		r.bindings[ch] = acc
	}
}

func (r *Registry) Unbind(ch Channel) {
	if ch.valid() {
		r.bindings[ch] = Accessor{}
	}
}

func (r *Registry) Accessor(ch Channel) Accessor {
	if !ch.valid() {
		return Accessor{}
	}
	return r.bindings[ch]
}

func (r *Registry) Series(e Entity, ch Channel) (TimeSeries, bool) {
	return r.Accessor(ch).Series(e)
}

func (r *Registry) Attr(e Entity, ch Channel) (string, bool) {
	return r.Accessor(ch).Attr(e)
}

// Label returns the human readable label of the field bound to ch.
func (r *Registry) Label(ch Channel) string {
	acc := r.Accessor(ch)
	if !acc.Bound() {
		return ch.String()
	}
	if str, ok := r.labels[acc.Field]; ok {
		return str
	}
	return r.data.Label(acc.Field)
}

func checkKind(ch Channel, kind FieldKind) error {
	switch {
	case !ch.valid():
		return ErrChannel
	case ch.Interpolated():
		if kind != KindSeries {
			return fmt.Errorf("%w %s: numeric series expected", ErrFieldKind, ch)
		}
	case ch == Key:
		if kind != KindAttr {
			return fmt.Errorf("%w %s: attribute expected", ErrFieldKind, ch)
		}
	}
	return nil
}
