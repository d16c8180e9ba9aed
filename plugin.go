package main

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registration identity the host knows the gauge by.
const (
	pluginName        = "circleGaugeC0EDC83DAA804B1C9EA179579AF4E968"
	pluginDisplayName = "Circle Gauge"
	pluginClass       = "Visual"
	pluginAPIVersion  = "5.3.0"
)

var (
	errPluginNotFound  = errors.New("plugin not found")
	errVisualNotFound  = errors.New("visual instance not found")
	errDuplicatePlugin = errors.New("plugin already registered")
)

// IVisual is the contract the host drives on every render cycle.
type IVisual interface {
	Update(options VisualUpdateOptions)
}

// VisualPlugin is a registry entry, the whole ABI a host relies on.
type VisualPlugin struct {
	Name              string `json:"name"`
	DisplayName       string `json:"displayName"`
	Class             string `json:"class"`
	APIVersion        string `json:"apiVersion"`
	Custom            bool   `json:"custom"`
	Create            func(options VisualConstructorOptions) (IVisual, error)                   `json:"-"`
	CreateModalDialog func(dialogID string, options DialogConstructorOptions, initialState any) `json:"-"`
}

// DialogFactory constructs a modal dialog.
type DialogFactory func(options DialogConstructorOptions, initialState any)

var (
	registryMu     sync.RWMutex
	plugins        = map[string]*VisualPlugin{}
	dialogRegistry = map[string]DialogFactory{}
)

func init() {
	if err := RegisterPlugin(circleGaugePlugin()); err != nil {
		panic(err)
	}
}

// circleGaugePlugin builds the registry entry of the gauge. Visuals it creates
// render with the options currently installed by SetRenderOptions.
func circleGaugePlugin() *VisualPlugin {
	return &VisualPlugin{
		Name:        pluginName,
		DisplayName: pluginDisplayName,
		Class:       pluginClass,
		APIVersion:  pluginAPIVersion,
		Custom:      true,
		Create: func(options VisualConstructorOptions) (IVisual, error) {
			if options.Element == nil {
				return nil, errVisualNotFound
			}
			return NewVisual(options, currentRenderOptions()), nil
		},
		CreateModalDialog: func(dialogID string, options DialogConstructorOptions, initialState any) {
			registryMu.RLock()
			factory, ok := dialogRegistry[dialogID]
			registryMu.RUnlock()
			if ok {
				factory(options, initialState)
			}
		},
	}
}

// RegisterPlugin adds a plugin under its name.
func RegisterPlugin(p *VisualPlugin) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := plugins[p.Name]; exists {
		return fmt.Errorf("registering %s: %w", p.Name, errDuplicatePlugin)
	}
	plugins[p.Name] = p
	return nil
}

// LookupPlugin returns the plugin registered under name.
func LookupPlugin(name string) (*VisualPlugin, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := plugins[name]
	if !ok {
		return nil, fmt.Errorf("looking up %q: %w", name, errPluginNotFound)
	}
	return p, nil
}

// Plugins lists registered plugins sorted by name.
func Plugins() []*VisualPlugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]*VisualPlugin, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RegisterDialog makes a dialog available to CreateModalDialog.
func RegisterDialog(id string, factory DialogFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	dialogRegistry[id] = factory
}

// --- Render Options ---

var (
	renderOptsMu sync.RWMutex
	renderOpts   = DefaultRenderOptions()
)

// SetRenderOptions changes the options used by visuals created afterwards.
func SetRenderOptions(opts RenderOptions) {
	renderOptsMu.Lock()
	defer renderOptsMu.Unlock()
	renderOpts = opts
}

func currentRenderOptions() RenderOptions {
	renderOptsMu.RLock()
	defer renderOptsMu.RUnlock()
	return renderOpts
}
