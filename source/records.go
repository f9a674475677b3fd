package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/midbel/motion"
	"gopkg.in/yaml.v3"
)

type envelope struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Labels      map[string]string `json:"labels" yaml:"labels"`
	Entities    []map[string]any  `json:"entities" yaml:"entities"`
}

func (e envelope) meta(opts Options) motion.Metadata {
	meta := opts.Meta
	if e.Title != "" {
		meta.Title = e.Title
	}
	if e.Description != "" {
		meta.Description = e.Description
	}
	if len(e.Labels) > 0 {
		labels := make(map[string]string)
		for k, v := range opts.Meta.Labels {
			labels[k] = v
		}
		for k, v := range e.Labels {
			labels[k] = v
		}
		meta.Labels = labels
	}
	return meta
}

// decodeJSON accepts either a list of entities or an object with the
// metadata of the dataset and its entities.
func decodeJSON(r io.Reader, opts Options) (*motion.Dataset, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var list []map[string]any
	if err := json.Unmarshal(buf, &list); err == nil {
		return build(opts.Meta, list, opts)
	}
	var env envelope
	if err := json.Unmarshal(buf, &env); err != nil {
		return nil, err
	}
	return build(env.meta(opts), env.Entities, opts)
}

func decodeYAML(r io.Reader, opts Options) (*motion.Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return motion.NewDataset(opts.Meta, nil)
		}
		return nil, err
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	if root.Kind == yaml.SequenceNode {
		var list []map[string]any
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return build(opts.Meta, list, opts)
	}
	var env envelope
	if err := root.Decode(&env); err != nil {
		return nil, err
	}
	return build(env.meta(opts), env.Entities, opts)
}

// build turns raw records into entities. Strings, booleans and plain numbers
// become attributes; lists of [time, value] pairs become time series.
func build(meta motion.Metadata, list []map[string]any, opts Options) (*motion.Dataset, error) {
	entities := make([]motion.Entity, 0, len(list))
	for i, obj := range list {
		key, ok := obj[opts.key()]
		if !ok || key == nil {
			return nil, fmt.Errorf("entity #%d: %w %q", i, ErrKey, opts.key())
		}
		e := motion.Entity{
			Key:    toString(key),
			Attrs:  make(map[string]string),
			Series: make(map[string]motion.TimeSeries),
		}
		e.Label = e.Key
		for field, raw := range obj {
			switch v := raw.(type) {
			case nil:
			case []any:
				ts, err := toSeries(v)
				if err != nil {
					var ie *motion.InvalidSeriesError
					if errors.As(err, &ie) {
						ie.Key, ie.Field = e.Key, field
					}
					return nil, err
				}
				e.Series[field] = ts
			case map[string]any:
				return nil, fmt.Errorf("%s.%s: nested objects are not supported", e.Key, field)
			default:
				e.Attrs[field] = toString(v)
			}
		}
		entities = append(entities, e)
	}
	return motion.NewDataset(meta, entities)
}

func toSeries(list []any) (motion.TimeSeries, error) {
	samples := make([]motion.Sample, 0, len(list))
	for i, raw := range list {
		pair, ok := raw.([]any)
		if !ok || len(pair) != 2 {
			return nil, &motion.InvalidSeriesError{
				Index:  i,
				Reason: "sample is not a [time, value] pair",
			}
		}
		t, ok := toFloat(pair[0])
		if !ok {
			return nil, &motion.InvalidSeriesError{
				Index:  i,
				Reason: "sample time is not a number",
			}
		}
		v, ok := toFloat(pair[1])
		if !ok {
			v = math.NaN()
		}
		samples = append(samples, motion.MakeSample(t, v))
	}
	return motion.NewTimeSeries(samples)
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
