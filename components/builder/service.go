package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errMissingPageStore   = errors.New("builder: page store not configured")
	errNoPage             = errors.New("builder: no page loaded")
	errInvalidComponentID = errors.New("builder: component id is required")
)

// PageStore persists pages as whole snapshots, mirroring how dashboards are
// stored.
type PageStore interface {
	FetchPage(ctx context.Context, id string) (*Page, error)
	SavePage(ctx context.Context, p *Page) (*Page, error)
}

// Telemetry allows the builder to emit structured events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

// Options configures the builder Service.
type Options struct {
	Store     PageStore
	Telemetry Telemetry
}

// Service edits one freeform page at a time. All mutating operations are
// serialized on an internal mutex.
type Service struct {
	opts Options

	mu      sync.Mutex
	current *Page
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Telemetry == nil {
		opts.Telemetry = noopTelemetry{}
	}
	return &Service{opts: opts}
}

// NewPage starts editing a fresh page in memory.
func (s *Service) NewPage(ctx context.Context, name string) *Page {
	p := NewPage(name)
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	s.opts.Telemetry.Record(ctx, "builder.page.new", map[string]any{"page_id": p.ID})
	return p.Clone()
}

// Load fetches a page snapshot from the store and makes it current.
func (s *Service) Load(ctx context.Context, pageID string) (*Page, error) {
	if s.opts.Store == nil {
		return nil, errMissingPageStore
	}
	p, err := s.opts.Store.FetchPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("builder: load page %s: %w", pageID, err)
	}
	for i := range p.Components {
		p.Components[i] = normalizeComponent(p.Components[i])
	}
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	s.opts.Telemetry.Record(ctx, "builder.page.load", map[string]any{
		"page_id":    p.ID,
		"components": len(p.Components),
	})
	return p.Clone(), nil
}

// Save persists the current page as a whole snapshot.
func (s *Service) Save(ctx context.Context) (*Page, error) {
	if s.opts.Store == nil {
		return nil, errMissingPageStore
	}
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, errNoPage
	}
	snapshot := s.current.Clone()
	s.mu.Unlock()

	saved, err := s.opts.Store.SavePage(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("builder: save page %s: %w", snapshot.ID, err)
	}
	if saved == nil {
		saved = snapshot
	}
	s.mu.Lock()
	s.current = saved.Clone()
	s.mu.Unlock()
	s.opts.Telemetry.Record(ctx, "builder.page.save", map[string]any{"page_id": saved.ID})
	return saved.Clone(), nil
}

// Current returns a deep copy of the page being edited, nil when nothing is
// loaded.
func (s *Service) Current() *Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// AddComponent drops a palette component onto the canvas at (x, y).
// Unknown types get bare defaults rather than an error so new palette
// entries degrade gracefully.
func (s *Service) AddComponent(ctx context.Context, t ComponentType, x, y float64) (Component, error) {
	entry, ok := paletteEntry(t)
	if !ok {
		entry = PaletteEntry{Type: t, Width: defaultComponentWidth, Height: defaultComponentHeight}
	}
	c := entry.Instantiate(x, y)

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return Component{}, errNoPage
	}
	s.current.Components = append(s.current.Components, c)
	s.current.UpdatedAt = time.Now().UTC()
	pageID := s.current.ID
	s.mu.Unlock()

	s.opts.Telemetry.Record(ctx, "builder.component.add", map[string]any{
		"page_id":      pageID,
		"component_id": c.ID,
		"type":         string(t),
	})
	return c, nil
}

// UpdateProps merges the given properties onto the component's property
// bag. Existing keys not present in props are kept.
func (s *Service) UpdateProps(ctx context.Context, componentID string, props map[string]any) (Component, error) {
	return s.mutate(ctx, componentID, "builder.component.update", func(c *Component) {
		if c.Props == nil {
			c.Props = make(map[string]any, len(props))
		}
		for k, v := range props {
			c.Props[k] = v
		}
	})
}

// Move repositions a component. Overlap with other components is allowed.
func (s *Service) Move(ctx context.Context, componentID string, x, y float64) (Component, error) {
	return s.mutate(ctx, componentID, "builder.component.move", func(c *Component) {
		c.X = x
		c.Y = y
	})
}

// Resize changes a component's pixel size. Non-positive dimensions fall
// back to the defaults.
func (s *Service) Resize(ctx context.Context, componentID string, width, height float64) (Component, error) {
	return s.mutate(ctx, componentID, "builder.component.resize", func(c *Component) {
		c.Width = width
		c.Height = height
		*c = normalizeComponent(*c)
	})
}

// Duplicate clones a component with a fresh identifier, offset slightly so
// the copy is visible on top of the original.
func (s *Service) Duplicate(ctx context.Context, componentID string) (Component, error) {
	if componentID == "" {
		return Component{}, errInvalidComponentID
	}
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return Component{}, errNoPage
	}
	source, ok := s.current.Component(componentID)
	if !ok {
		s.mu.Unlock()
		return Component{}, fmt.Errorf("builder: component %s not found", componentID)
	}
	copyComponent := source.Clone()
	copyComponent.ID = uuid.NewString()
	copyComponent.X += 16
	copyComponent.Y += 16
	s.current.Components = append(s.current.Components, copyComponent)
	s.current.UpdatedAt = time.Now().UTC()
	pageID := s.current.ID
	s.mu.Unlock()

	s.opts.Telemetry.Record(ctx, "builder.component.duplicate", map[string]any{
		"page_id":      pageID,
		"component_id": copyComponent.ID,
		"source_id":    componentID,
	})
	return copyComponent, nil
}

// Remove deletes a component by id.
func (s *Service) Remove(ctx context.Context, componentID string) error {
	if componentID == "" {
		return errInvalidComponentID
	}
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return errNoPage
	}
	found := false
	components := s.current.Components[:0]
	for _, c := range s.current.Components {
		if c.ID == componentID {
			found = true
			continue
		}
		components = append(components, c)
	}
	s.current.Components = components
	pageID := s.current.ID
	if found {
		s.current.UpdatedAt = time.Now().UTC()
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("builder: component %s not found", componentID)
	}

	s.opts.Telemetry.Record(ctx, "builder.component.remove", map[string]any{
		"page_id":      pageID,
		"component_id": componentID,
	})
	return nil
}

func (s *Service) mutate(ctx context.Context, componentID, event string, fn func(*Component)) (Component, error) {
	if componentID == "" {
		return Component{}, errInvalidComponentID
	}
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return Component{}, errNoPage
	}
	for i := range s.current.Components {
		if s.current.Components[i].ID != componentID {
			continue
		}
		fn(&s.current.Components[i])
		s.current.UpdatedAt = time.Now().UTC()
		updated := s.current.Components[i].Clone()
		pageID := s.current.ID
		s.mu.Unlock()
		s.opts.Telemetry.Record(ctx, event, map[string]any{
			"page_id":      pageID,
			"component_id": componentID,
		})
		return updated, nil
	}
	s.mu.Unlock()
	return Component{}, fmt.Errorf("builder: component %s not found", componentID)
}
