package main

// --- Host Update Structs ---

// VisualUpdateOptions is what the host passes on every render cycle.
type VisualUpdateOptions struct {
	DataViews []DataView `json:"dataViews" yaml:"dataViews"`
	Viewport  Viewport   `json:"viewport" yaml:"viewport"`
}

// DataView is one view of the bound data. The gauge reads only the
// categorical section of the first view.
type DataView struct {
	Categorical *DataViewCategorical `json:"categorical,omitempty" yaml:"categorical,omitempty"`
}

// DataViewCategorical exposes the bound measures as ordered value series.
type DataViewCategorical struct {
	Values []DataViewValueColumn `json:"values" yaml:"values"`
}

// DataViewValueColumn is one measure series. Values may hold numbers,
// numeric strings or text depending on the bound field.
type DataViewValueColumn struct {
	Source DataViewMetadataColumn `json:"source" yaml:"source"`
	Values []any                  `json:"values" yaml:"values"`
}

// DataViewMetadataColumn describes the field behind a series.
type DataViewMetadataColumn struct {
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	QueryName   string `json:"queryName,omitempty" yaml:"queryName,omitempty"`
}

// Series positions inside DataViewCategorical.Values.
const (
	seriesPercentage = iota
	seriesLowThreshold
	seriesHighThreshold
	seriesLabel
)

// flatUpdate is the shorthand update file form:
//
//	{"percentage": 0.75, "lowThreshold": "0.8", "label": "Tickets closed"}
//
// Values stay untyped and are coerced like host series values.
type flatUpdate struct {
	Percentage    any       `json:"percentage" yaml:"percentage"`
	LowThreshold  any       `json:"lowThreshold,omitempty" yaml:"lowThreshold,omitempty"`
	HighThreshold any       `json:"highThreshold,omitempty" yaml:"highThreshold,omitempty"`
	Label         any       `json:"label,omitempty" yaml:"label,omitempty"`
	Viewport      *Viewport `json:"viewport,omitempty" yaml:"viewport,omitempty"`
}

// --- Plugin Structs ---

// VisualConstructorOptions carries the mounting point the host hands a new
// visual.
type VisualConstructorOptions struct {
	Element *Element
}

// DialogConstructorOptions is passed to modal dialogs the host opens on a
// visual's behalf.
type DialogConstructorOptions struct {
	Element *Element
}
