package main

import "fmt"

// hostSession plays the host side: it owns the container element, creates the
// visual through the plugin registry and feeds it updates in order.
type hostSession struct {
	container *Element
	visual    *Visual
}

func mountGauge() (*hostSession, error) {
	p, err := LookupPlugin(pluginName)
	if err != nil {
		return nil, err
	}
	container := NewElement("div").Classed("visual", true)
	v, err := p.Create(VisualConstructorOptions{Element: container})
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", p.DisplayName, err)
	}
	visual, ok := v.(*Visual)
	if !ok {
		return nil, fmt.Errorf("plugin %s returned %T, not a gauge visual", p.Name, v)
	}
	return &hostSession{container: container, visual: visual}, nil
}

// replay runs updates as successive render cycles.
func (s *hostSession) replay(updates []VisualUpdateOptions) {
	for i, u := range updates {
		Logger().Debug("host update", "cycle", i, "width", u.Viewport.Width, "height", u.Viewport.Height)
		s.visual.Update(u)
	}
}

func (s *hostSession) renderer() *GaugeRenderer {
	return s.visual.Renderer()
}
