package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/midbel/motion"
)

type row struct {
	attrs   map[string]string
	samples map[string][]motion.Sample
}

// decodeCSV reads a long table: one row per entity and time. Columns whose
// cells are all numbers become time series, the others attributes taking the
// first value found for the entity.
func decodeCSV(r io.Reader, opts Options) (*motion.Dataset, error) {
	rs := csv.NewReader(r)
	rs.TrimLeadingSpace = true
	records, err := rs.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return motion.NewDataset(opts.Meta, nil)
	}
	var (
		header  = records[0]
		keyIx   = indexOf(header, opts.key())
		timeIx  = indexOf(header, opts.time())
		numeric = make([]bool, len(header))
	)
	if keyIx < 0 {
		return nil, fmt.Errorf("%w %q", ErrColumn, opts.key())
	}
	if timeIx < 0 {
		return nil, fmt.Errorf("%w %q", ErrColumn, opts.time())
	}
	for i := range numeric {
		numeric[i] = i != keyIx && i != timeIx
	}
	for _, rec := range records[1:] {
		for i, cell := range rec {
			if !numeric[i] || cell == "" {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric[i] = false
			}
		}
	}

	var (
		keys []string
		rows = make(map[string]*row)
	)
	for n, rec := range records[1:] {
		key := rec[keyIx]
		if key == "" {
			return nil, fmt.Errorf("line %d: %w %q", n+2, ErrKey, opts.key())
		}
		t, err := strconv.ParseFloat(rec[timeIx], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: time: %w", n+2, err)
		}
		x, ok := rows[key]
		if !ok {
			x = &row{
				attrs:   map[string]string{opts.key(): key},
				samples: make(map[string][]motion.Sample),
			}
			rows[key] = x
			keys = append(keys, key)
		}
		for i, cell := range rec {
			if i == keyIx || i == timeIx || cell == "" {
				continue
			}
			field := header[i]
			if !numeric[i] {
				if _, ok := x.attrs[field]; !ok {
					x.attrs[field] = cell
				}
				continue
			}
			v, _ := strconv.ParseFloat(cell, 64)
			x.samples[field] = append(x.samples[field], motion.MakeSample(t, v))
		}
	}

	entities := make([]motion.Entity, 0, len(keys))
	for _, key := range keys {
		x := rows[key]
		e := motion.Entity{
			Key:    key,
			Label:  key,
			Attrs:  x.attrs,
			Series: make(map[string]motion.TimeSeries),
		}
		for field, list := range x.samples {
			sort.SliceStable(list, func(i, j int) bool {
				return list[i].Time < list[j].Time
			})
			ts, err := motion.NewTimeSeries(list)
			if err != nil {
				var ie *motion.InvalidSeriesError
				if errors.As(err, &ie) {
					ie.Key, ie.Field = key, field
				}
				return nil, err
			}
			e.Series[field] = ts
		}
		entities = append(entities, e)
	}
	return motion.NewDataset(opts.Meta, entities)
}

func indexOf(list []string, str string) int {
	for i := range list {
		if list[i] == str {
			return i
		}
	}
	return -1
}
