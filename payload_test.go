package main

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func categorical(values ...[]any) VisualUpdateOptions {
	cols := make([]DataViewValueColumn, len(values))
	for i, v := range values {
		cols[i] = DataViewValueColumn{Values: v}
	}
	return VisualUpdateOptions{
		DataViews: []DataView{{Categorical: &DataViewCategorical{Values: cols}}},
		Viewport:  Viewport{Width: 300, Height: 300},
	}
}

func TestPayloadFromUpdate(t *testing.T) {
	tests := []struct {
		name   string
		update VisualUpdateOptions
		want   DataPayload
	}{
		{
			name:   "all series",
			update: categorical([]any{0.75}, []any{0.8}, []any{0.9}, []any{"Tickets"}),
			want:   DataPayload{Percentage: ptr(0.75), LowThreshold: ptr(0.8), HighThreshold: ptr(0.9), LabelText: "Tickets"},
		},
		{
			name:   "numeric strings",
			update: categorical([]any{"0.5"}, []any{"0.25"}, []any{nil}, []any{42}),
			want:   DataPayload{Percentage: ptr(0.5), LowThreshold: ptr(0.25), LabelText: "42"},
		},
		{
			name:   "missing trailing series",
			update: categorical([]any{0.6}),
			want:   DataPayload{Percentage: ptr(0.6)},
		},
		{
			name:   "empty series",
			update: categorical([]any{}, []any{}, []any{}, []any{}),
			want:   DataPayload{},
		},
		{
			name:   "non-numeric percentage",
			update: categorical([]any{"lots"}, []any{0.8}),
			want:   DataPayload{LowThreshold: ptr(0.8)},
		},
		{
			name:   "no data view",
			update: VisualUpdateOptions{Viewport: Viewport{Width: 10, Height: 10}},
			want:   DataPayload{},
		},
		{
			name:   "no categorical section",
			update: VisualUpdateOptions{DataViews: []DataView{{}}},
			want:   DataPayload{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payloadFromUpdate(tt.update)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeUpdates(t *testing.T) {
	fallback := Viewport{Width: 300, Height: 300}

	t.Run("single json update", func(t *testing.T) {
		data := []byte(`{"viewport":{"width":400,"height":200},"dataViews":[{"categorical":{"values":[{"values":[0.3]}]}}]}`)
		updates, err := decodeUpdates(data, "x.json", fallback)
		if err != nil {
			t.Fatalf("decodeUpdates: %v", err)
		}
		if len(updates) != 1 || updates[0].Viewport != (Viewport{Width: 400, Height: 200}) {
			t.Fatalf("got %+v", updates)
		}
		if p := payloadFromUpdate(updates[0]); p.Percentage == nil || *p.Percentage != 0.3 {
			t.Errorf("percentage: got %v", p.Percentage)
		}
	})

	t.Run("json array takes fallback viewport", func(t *testing.T) {
		data := []byte(`[{"dataViews":[{"categorical":{"values":[{"values":[0.1]}]}}]},
			{"dataViews":[{"categorical":{"values":[{"values":[0.2]}]}}]}]`)
		updates, err := decodeUpdates(data, "x.json", fallback)
		if err != nil {
			t.Fatalf("decodeUpdates: %v", err)
		}
		if len(updates) != 2 {
			t.Fatalf("updates: got %d, want 2", len(updates))
		}
		for i, u := range updates {
			if u.Viewport != fallback {
				t.Errorf("update %d viewport: got %+v", i, u.Viewport)
			}
		}
	})

	t.Run("flat json", func(t *testing.T) {
		data := []byte(`{"percentage": 0.5, "highThreshold": 0.6, "label": "Half"}`)
		updates, err := decodeUpdates(data, "x.json", fallback)
		if err != nil {
			t.Fatalf("decodeUpdates: %v", err)
		}
		want := DataPayload{Percentage: ptr(0.5), HighThreshold: ptr(0.6), LabelText: "Half"}
		if diff := cmp.Diff(want, payloadFromUpdate(updates[0])); diff != "" {
			t.Errorf("payload mismatch (-want +got):\n%s", diff)
		}
		if updates[0].Viewport != fallback {
			t.Errorf("viewport: got %+v", updates[0].Viewport)
		}
	})

	t.Run("flat json with numeric strings", func(t *testing.T) {
		data := []byte(`{"percentage": "0.85", "lowThreshold": "0.8", "highThreshold": 0.9, "label": 7}`)
		updates, err := decodeUpdates(data, "x.json", fallback)
		if err != nil {
			t.Fatalf("decodeUpdates: %v", err)
		}
		want := DataPayload{Percentage: ptr(0.85), LowThreshold: ptr(0.8), HighThreshold: ptr(0.9), LabelText: "7"}
		if diff := cmp.Diff(want, payloadFromUpdate(updates[0])); diff != "" {
			t.Errorf("payload mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("flat and host forms render alike", func(t *testing.T) {
		flat, err := decodeUpdates([]byte(`{"percentage": "0.85"}`), "x.json", fallback)
		if err != nil {
			t.Fatalf("decodeUpdates flat: %v", err)
		}
		host, err := decodeUpdates([]byte(`{"dataViews":[{"categorical":{"values":[{"values":["0.85"]}]}}]}`), "x.json", fallback)
		if err != nil {
			t.Fatalf("decodeUpdates host: %v", err)
		}
		frames := make([]Frame, 0, 2)
		for _, u := range []VisualUpdateOptions{flat[0], host[0]} {
			_, g := newTestGauge(t)
			g.Update(payloadFromUpdate(u), u.Viewport)
			frames = append(frames, g.Frame())
		}
		if frames[0].Color != "yellow" || frames[0].ValueText != "85.0%" {
			t.Errorf("flat frame: color %q value %q", frames[0].Color, frames[0].ValueText)
		}
		if diff := cmp.Diff(frames[1], frames[0]); diff != "" {
			t.Errorf("flat and host frames differ (-host +flat):\n%s", diff)
		}
	})

	t.Run("flat yaml with quoted percentage", func(t *testing.T) {
		updates, err := decodeUpdates([]byte("percentage: \"0.3\"\nlabel: 42\n"), "x.yaml", fallback)
		if err != nil {
			t.Fatalf("decodeUpdates: %v", err)
		}
		p := payloadFromUpdate(updates[0])
		if p.Percentage == nil || *p.Percentage != 0.3 || p.LabelText != "42" {
			t.Errorf("payload: %+v", p)
		}
	})

	t.Run("flat yaml array", func(t *testing.T) {
		data := []byte("- percentage: 0.2\n  viewport: {width: 100, height: 50}\n- percentage: 0.4\n  label: next\n")
		updates, err := decodeUpdates(data, "x.yml", fallback)
		if err != nil {
			t.Fatalf("decodeUpdates: %v", err)
		}
		if len(updates) != 2 {
			t.Fatalf("updates: got %d, want 2", len(updates))
		}
		if updates[0].Viewport != (Viewport{Width: 100, Height: 50}) || updates[1].Viewport != fallback {
			t.Errorf("viewports: %+v, %+v", updates[0].Viewport, updates[1].Viewport)
		}
		if p := payloadFromUpdate(updates[1]); p.LabelText != "next" || *p.Percentage != 0.4 {
			t.Errorf("second payload: %+v", p)
		}
	})

	t.Run("yaml host updates", func(t *testing.T) {
		data := []byte(`
- viewport: {width: 300, height: 300}
  dataViews:
    - categorical:
        values:
          - values: ["0.85"]
          - values: [0]
`)
		updates, err := decodeUpdates(data, "x.yaml", fallback)
		if err != nil {
			t.Fatalf("decodeUpdates: %v", err)
		}
		p := payloadFromUpdate(updates[0])
		if p.Percentage == nil || *p.Percentage != 0.85 {
			t.Errorf("percentage: got %v", p.Percentage)
		}
		if p.LowThreshold == nil || *p.LowThreshold != 0 {
			t.Errorf("low threshold: got %v", p.LowThreshold)
		}
	})

	t.Run("empty array", func(t *testing.T) {
		_, err := decodeUpdates([]byte(`[]`), "x.json", fallback)
		if !errors.Is(err, errNoUpdates) {
			t.Errorf("got %v, want errNoUpdates", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := decodeUpdates([]byte(`{"percentage":`), "x.json", fallback); err == nil {
			t.Error("expected an error for truncated json")
		}
	})
}
