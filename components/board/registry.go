package board

import (
	"fmt"
	"sync"
)

// TileHook lets packages register templates/renderers during init().
type TileHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []TileHook
)

// RegisterTileHook registers a hook executed against new registries.
func RegisterTileHook(h TileHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// RendererRegistry is the dispatch contract: exactly one renderer per known
// widget type, a template catalog for the "Add Widget" picker, and a
// non-fatal placeholder for anything unknown.
type RendererRegistry interface {
	RegisterTemplate(tpl WidgetTemplate) error
	RegisterRenderer(t WidgetType, r TileRenderer) error
	Template(t WidgetType) (WidgetTemplate, bool)
	Renderer(t WidgetType) (TileRenderer, bool)
	Templates() []WidgetTemplate
}

// Registry implements RendererRegistry with hook + manifest support.
type Registry struct {
	mu           sync.RWMutex
	templates    map[WidgetType]WidgetTemplate
	renderers    map[WidgetType]TileRenderer
	manifestMeta map[WidgetType]ManifestRenderer
}

// NewRegistry builds a registry seeded with the built-in widget types and
// applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		templates:    map[WidgetType]WidgetTemplate{},
		renderers:    map[WidgetType]TileRenderer{},
		manifestMeta: map[WidgetType]ManifestRenderer{},
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

func (r *Registry) registerDefaults() {
	for _, tpl := range DefaultWidgetTemplates() {
		_ = r.RegisterTemplate(tpl)
		if renderer, ok := defaultRenderers[tpl.Type]; ok {
			_ = r.RegisterRenderer(tpl.Type, renderer)
		}
	}
}

// ApplyHooks executes registered tile hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTemplate stores a widget template.
func (r *Registry) RegisterTemplate(tpl WidgetTemplate) error {
	if tpl.Type == "" {
		return fmt.Errorf("widget template type is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[tpl.Type] = tpl
	return nil
}

// RegisterRenderer associates a renderer with a widget type.
func (r *Registry) RegisterRenderer(t WidgetType, renderer TileRenderer) error {
	if t == "" {
		return fmt.Errorf("widget type is required to register renderer")
	}
	if renderer == nil {
		return fmt.Errorf("renderer cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[t]; !ok {
		return fmt.Errorf("widget template %s not found", t)
	}
	r.renderers[t] = renderer
	return nil
}

// Template fetches a widget template by type.
func (r *Registry) Template(t WidgetType) (WidgetTemplate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[t]
	return tpl, ok
}

// Renderer fetches the renderer for a widget type.
func (r *Registry) Renderer(t WidgetType) (TileRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[t]
	return renderer, ok
}

// RendererMetadata returns any manifest metadata registered for a type.
func (r *Registry) RendererMetadata(t WidgetType) (ManifestRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.manifestMeta[t]
	return meta, ok
}

// Templates returns all registered templates.
func (r *Registry) Templates() []WidgetTemplate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]WidgetTemplate, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	return out
}

func (r *Registry) recordRendererMetadata(t WidgetType, meta ManifestRenderer) {
	if meta.isZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifestMeta[t] = meta
}
