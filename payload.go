package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

var errNoUpdates = errors.New("no updates found")

// payloadFromUpdate reads the four ordered series of the first data view.
// Missing views, series or values leave the matching payload field absent;
// a percentage that is not numeric is treated as absent too.
func payloadFromUpdate(opts VisualUpdateOptions) DataPayload {
	var p DataPayload
	if len(opts.DataViews) == 0 || opts.DataViews[0].Categorical == nil {
		Logger().Warn("update carries no categorical data view")
		return p
	}
	columns := opts.DataViews[0].Categorical.Values

	p.Percentage = numericSeries(columns, seriesPercentage)
	p.LowThreshold = numericSeries(columns, seriesLowThreshold)
	p.HighThreshold = numericSeries(columns, seriesHighThreshold)
	if v, ok := firstValue(columns, seriesLabel); ok {
		p.LabelText = cast.ToString(v)
	}
	return p
}

// firstValue returns the first value of series i when it exists and is not null.
func firstValue(columns []DataViewValueColumn, i int) (any, bool) {
	if i >= len(columns) || len(columns[i].Values) == 0 || columns[i].Values[0] == nil {
		return nil, false
	}
	return columns[i].Values[0], true
}

func numericSeries(columns []DataViewValueColumn, i int) *float64 {
	v, ok := firstValue(columns, i)
	if !ok {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		Logger().Warn("series value is not numeric", "series", i, "value", v, "err", err)
		return nil
	}
	return &f
}

// --- Update File Decoding ---

type unmarshalFunc func([]byte, any) error

func unmarshalerFor(path string) unmarshalFunc {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal
	default:
		return json.Unmarshal
	}
}

// decodeUpdates parses an update file. Accepted forms, tried in order: an
// array of host updates, a single host update, and the flat shorthand (single
// or array). Flat updates take the fallback viewport when they omit one.
func decodeUpdates(data []byte, path string, fallback Viewport) ([]VisualUpdateOptions, error) {
	unmarshal := unmarshalerFor(path)

	var many []VisualUpdateOptions
	if err := unmarshal(data, &many); err == nil && hasDataViews(many) {
		return withViewport(many, fallback), nil
	}

	var one VisualUpdateOptions
	errOne := unmarshal(data, &one)
	if errOne == nil && len(one.DataViews) > 0 {
		return withViewport([]VisualUpdateOptions{one}, fallback), nil
	}

	Logger().Warn("update file has no data views, attempting flat form", "path", path)
	var flats []flatUpdate
	if err := unmarshal(data, &flats); err != nil {
		var flat flatUpdate
		if errFlat := unmarshal(data, &flat); errFlat != nil {
			if errOne != nil {
				return nil, fmt.Errorf("parsing %s: %w (also failed flat parse: %v)", path, errOne, errFlat)
			}
			return nil, fmt.Errorf("parsing %s as flat update: %w", path, errFlat)
		}
		flats = []flatUpdate{flat}
	}
	if len(flats) == 0 {
		return nil, fmt.Errorf("parsing %s: %w", path, errNoUpdates)
	}

	out := make([]VisualUpdateOptions, 0, len(flats))
	for _, f := range flats {
		out = append(out, f.toUpdate(fallback))
	}
	return out, nil
}

func hasDataViews(updates []VisualUpdateOptions) bool {
	if len(updates) == 0 {
		return false
	}
	for _, u := range updates {
		if len(u.DataViews) > 0 {
			return true
		}
	}
	return false
}

// withViewport fills in a zero viewport from the fallback.
func withViewport(updates []VisualUpdateOptions, fallback Viewport) []VisualUpdateOptions {
	for i := range updates {
		if updates[i].Viewport.Width <= 0 || updates[i].Viewport.Height <= 0 {
			updates[i].Viewport = fallback
		}
	}
	return updates
}

// toUpdate expands the shorthand into the categorical shape the host sends.
// Values are copied as decoded so payloadFromUpdate coerces both forms alike.
func (f flatUpdate) toUpdate(fallback Viewport) VisualUpdateOptions {
	column := func(name string, v any) DataViewValueColumn {
		c := DataViewValueColumn{Source: DataViewMetadataColumn{DisplayName: name}}
		if v != nil {
			c.Values = []any{v}
		}
		return c
	}

	vp := fallback
	if f.Viewport != nil && f.Viewport.Width > 0 && f.Viewport.Height > 0 {
		vp = *f.Viewport
	}
	return VisualUpdateOptions{
		DataViews: []DataView{{
			Categorical: &DataViewCategorical{Values: []DataViewValueColumn{
				column("Percentage", f.Percentage),
				column("Low Threshold", f.LowThreshold),
				column("High Threshold", f.HighThreshold),
				column("Label", f.Label),
			}},
		}},
		Viewport: vp,
	}
}
