package motion

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

type Entity struct {
	Key    string
	Label  string
	Attrs  map[string]string
	Series map[string]TimeSeries
}

func (e Entity) Attr(field string) (string, bool) {
	str, ok := e.Attrs[field]
	return str, ok
}

func (e Entity) Serie(field string) (TimeSeries, bool) {
	ts, ok := e.Series[field]
	return ts, ok && len(ts) > 0
}

type Metadata struct {
	Title       string
	Description string
	Labels      map[string]string
}

// Dataset is the immutable set of entities shared by every chart drawing it.
type Dataset struct {
	Metadata
	Entities []Entity

	fields map[string]FieldKind
	names  []string
	index  map[string]int
	first  float64
	last   float64
}

func NewDataset(meta Metadata, entities []Entity) (*Dataset, error) {
	d := Dataset{
		Metadata: meta,
		Entities: entities,
		fields:   make(map[string]FieldKind),
		index:    make(map[string]int),
		first:    math.NaN(),
		last:     math.NaN(),
	}
	labels := make(map[string]string)
	for k, v := range meta.Labels {
		labels[k] = v
	}
	d.Labels = labels
	for i, e := range entities {
		if e.Key == "" {
			return nil, fmt.Errorf("entity #%d: %w: empty key", i, ErrDuplicateKey)
		}
		if _, ok := d.index[e.Key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, e.Key)
		}
		d.index[e.Key] = i
		for f := range e.Attrs {
			if err := d.register(f, KindAttr); err != nil {
				return nil, err
			}
		}
		for f, ts := range e.Series {
			if _, err := NewTimeSeries(ts); err != nil {
				var ie *InvalidSeriesError
				if errors.As(err, &ie) {
					ie.Key, ie.Field = e.Key, f
				}
				return nil, err
			}
			if err := d.register(f, KindSeries); err != nil {
				return nil, err
			}
			fst, lst := ts.Span()
			if math.IsNaN(d.first) || fst < d.first {
				d.first = fst
			}
			if math.IsNaN(d.last) || lst > d.last {
				d.last = lst
			}
		}
	}
	for f := range d.fields {
		d.names = append(d.names, f)
		if _, ok := d.Labels[f]; !ok {
			d.Labels[f] = NameFor(f)
		}
	}
	sort.Strings(d.names)
	return &d, nil
}

func (d *Dataset) register(field string, kind FieldKind) error {
	if k, ok := d.fields[field]; ok && k != kind {
		return fmt.Errorf("%s: %w: used both as %s and %s", field, ErrFieldKind, k, kind)
	}
	d.fields[field] = kind
	return nil
}

func (d *Dataset) Len() int {
	return len(d.Entities)
}

func (d *Dataset) Empty() bool {
	return len(d.Entities) == 0
}

// TimeRange returns the first and last sample times over every series of the
// dataset. Both values are NaN for a dataset without series.
func (d *Dataset) TimeRange() (float64, float64) {
	return d.first, d.last
}

func (d *Dataset) Fields() []string {
	return d.names
}

func (d *Dataset) Kind(field string) (FieldKind, bool) {
	k, ok := d.fields[field]
	return k, ok
}

func (d *Dataset) Label(field string) string {
	if str, ok := d.Labels[field]; ok {
		return str
	}
	return NameFor(field)
}

func (d *Dataset) Lookup(key string) (Entity, bool) {
	i, ok := d.index[key]
	if !ok {
		return Entity{}, false
	}
	return d.Entities[i], true
}
