package main

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCircleGaugeRegistration(t *testing.T) {
	p, err := LookupPlugin(pluginName)
	if err != nil {
		t.Fatalf("LookupPlugin: %v", err)
	}
	if p.Name != "circleGaugeC0EDC83DAA804B1C9EA179579AF4E968" {
		t.Errorf("name: %q", p.Name)
	}
	if p.DisplayName != "Circle Gauge" || p.Class != "Visual" || p.APIVersion != "5.3.0" || !p.Custom {
		t.Errorf("registration fields: %+v", p)
	}
}

func TestLookupUnknownPlugin(t *testing.T) {
	if _, err := LookupPlugin("nope"); !errors.Is(err, errPluginNotFound) {
		t.Errorf("got %v, want errPluginNotFound", err)
	}
}

func TestRegisterDuplicatePlugin(t *testing.T) {
	err := RegisterPlugin(&VisualPlugin{Name: pluginName})
	if !errors.Is(err, errDuplicatePlugin) {
		t.Errorf("got %v, want errDuplicatePlugin", err)
	}
}

func TestCreateRequiresElement(t *testing.T) {
	p, _ := LookupPlugin(pluginName)
	if _, err := p.Create(VisualConstructorOptions{}); !errors.Is(err, errVisualNotFound) {
		t.Errorf("got %v, want errVisualNotFound", err)
	}
}

func TestCreateMountsGauge(t *testing.T) {
	p, _ := LookupPlugin(pluginName)
	container := NewElement("div")
	v, err := p.Create(VisualConstructorOptions{Element: container})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	v.Update(categorical([]any{0.95}))

	svgs := container.Children()
	if len(svgs) != 1 || !svgs[0].HasClass(classSurface) {
		t.Fatal("gauge surface not mounted under the host element")
	}
	arcs := container.SelectAll(classArc)
	if len(arcs) != 1 {
		t.Fatalf("arc nodes: got %d", len(arcs))
	}
	if stroke, _ := arcs[0].StyleValue("stroke"); stroke != "limegreen" {
		t.Errorf("arc stroke: got %q", stroke)
	}
}

func TestCreateModalDialog(t *testing.T) {
	p, _ := LookupPlugin(pluginName)

	// Unknown ids are ignored.
	p.CreateModalDialog("missing-dialog", DialogConstructorOptions{}, nil)

	var gotState any
	calls := 0
	RegisterDialog("test-dialog", func(options DialogConstructorOptions, initialState any) {
		calls++
		gotState = initialState
	})
	p.CreateModalDialog("test-dialog", DialogConstructorOptions{Element: NewElement("div")}, "state")
	if calls != 1 || gotState != "state" {
		t.Errorf("dialog factory: calls=%d state=%v", calls, gotState)
	}
}

func TestPluginsManifestJSON(t *testing.T) {
	data, err := json.Marshal(Plugins())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var manifest []map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var found map[string]any
	for _, m := range manifest {
		if m["name"] == pluginName {
			found = m
		}
	}
	if found == nil {
		t.Fatalf("gauge missing from manifest: %s", data)
	}
	if found["displayName"] != "Circle Gauge" || found["apiVersion"] != "5.3.0" || found["custom"] != true {
		t.Errorf("manifest entry: %v", found)
	}
	if _, ok := found["Create"]; ok {
		t.Error("constructor leaked into the manifest")
	}
}

func TestSetRenderOptionsAffectsNewVisuals(t *testing.T) {
	defer SetRenderOptions(currentRenderOptions())

	opts := DefaultRenderOptions()
	opts.Colors.High = "blue"
	opts.Decimals = 0
	SetRenderOptions(opts)

	session, err := mountGauge()
	if err != nil {
		t.Fatalf("mountGauge: %v", err)
	}
	session.replay([]VisualUpdateOptions{categorical([]any{0.953})})
	f := session.renderer().Frame()
	if f.Color != "blue" || f.ValueText != "95%" {
		t.Errorf("frame: color %q value %q", f.Color, f.ValueText)
	}
}
