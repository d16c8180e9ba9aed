package main

// Visual adapts the host contract to GaugeRenderer.
type Visual struct {
	renderer *GaugeRenderer
	viewport Viewport
}

var _ IVisual = (*Visual)(nil)

// NewVisual mounts a gauge under the host element.
func NewVisual(options VisualConstructorOptions, opts RenderOptions) *Visual {
	return &Visual{renderer: NewGaugeRenderer(options.Element, opts)}
}

// Update extracts the payload from the host update and redraws.
func (v *Visual) Update(options VisualUpdateOptions) {
	v.viewport = options.Viewport
	v.renderer.Update(payloadFromUpdate(options), options.Viewport)
}

// Renderer exposes the gauge for exporters.
func (v *Visual) Renderer() *GaugeRenderer {
	return v.renderer
}

// Viewport returns the viewport of the latest update.
func (v *Visual) Viewport() Viewport {
	return v.viewport
}
