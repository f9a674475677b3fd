package motion

import (
	"math"
	"sort"
)

// Record is the state of one entity at the time of a snapshot.
type Record struct {
	Key    string
	Label  string
	Values [numChannels]float64
	Attrs  [numChannels]string
}

func (r Record) Value(ch Channel) float64 {
	if !ch.valid() {
		return math.NaN()
	}
	return r.Values[ch]
}

func (r Record) Attr(ch Channel) string {
	if !ch.valid() {
		return ""
	}
	return r.Attrs[ch]
}

// Snapshot is the state of every entity at one instant. Records follow the
// order of the dataset.
type Snapshot struct {
	Time    float64
	Records []Record

	index map[string]int
}

// Interpolate resolves every channel bound in reg for each entity of data at
// time t. Numeric channels are interpolated independently of each other;
// categorical channels and the key pass through.
func Interpolate(data *Dataset, reg *Registry, t float64) Snapshot {
	snap := Snapshot{
		Time:    t,
		Records: make([]Record, 0, data.Len()),
		index:   make(map[string]int, data.Len()),
	}
	var accs [numChannels]Accessor
	for _, ch := range Channels() {
		accs[ch] = reg.Accessor(ch)
	}
	for _, e := range data.Entities {
		rec := Record{
			Key:   e.Key,
			Label: e.Label,
		}
		for ch, acc := range accs {
			rec.Values[ch] = math.NaN()
			switch {
			case !acc.Bound():
			case acc.Kind == KindSeries:
				if ts, ok := acc.Series(e); ok {
					rec.Values[ch] = ts.At(t)
				}
			default:
				rec.Attrs[ch], _ = acc.Attr(e)
			}
		}
		if str := rec.Attrs[Key]; str != "" {
			rec.Label = str
		}
		if rec.Label == "" {
			rec.Label = e.Key
		}
		snap.index[e.Key] = len(snap.Records)
		snap.Records = append(snap.Records, rec)
	}
	return snap
}

func (s Snapshot) Len() int {
	return len(s.Records)
}

func (s Snapshot) Get(key string) (Record, bool) {
	i, ok := s.index[key]
	if !ok {
		return Record{}, false
	}
	return s.Records[i], true
}

// Values returns the resolved values of ch, NaN excluded.
func (s Snapshot) Values(ch Channel) []float64 {
	list := make([]float64, 0, len(s.Records))
	for _, r := range s.Records {
		if v := r.Value(ch); !math.IsNaN(v) {
			list = append(list, v)
		}
	}
	return list
}

func (s Snapshot) Attrs(ch Channel) []string {
	list := make([]string, 0, len(s.Records))
	for _, r := range s.Records {
		if str := r.Attr(ch); str != "" {
			list = append(list, str)
		}
	}
	return list
}

func (s Snapshot) Keys() []string {
	keys := make([]string, len(s.Records))
	for i := range s.Records {
		keys[i] = s.Records[i].Key
	}
	return keys
}

// Ordered returns the records sorted by decreasing value of ch so that the
// smallest ones come last and are drawn on top. Records without value for ch
// go at the end.
func (s Snapshot) Ordered(ch Channel) []Record {
	list := make([]Record, len(s.Records))
	copy(list, s.Records)
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Value(ch), list[j].Value(ch)
		if math.IsNaN(a) || math.IsNaN(b) {
			return !math.IsNaN(a) && math.IsNaN(b)
		}
		return a > b
	})
	return list
}
