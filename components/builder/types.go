package builder

import (
	"time"

	"github.com/google/uuid"
)

// ComponentType discriminates the freeform building blocks. Unlike board
// widgets these are not data-bound; they are static page elements.
type ComponentType string

const (
	TypeCard    ComponentType = "card"
	TypeButton  ComponentType = "button"
	TypeText    ComponentType = "text"
	TypeInput   ComponentType = "input"
	TypeSelect  ComponentType = "select"
	TypeImage   ComponentType = "image"
	TypeHeading ComponentType = "heading"
	TypeDivider ComponentType = "divider"
)

// KnownComponentTypes returns every type the builder palette offers.
func KnownComponentTypes() []ComponentType {
	return []ComponentType{
		TypeCard, TypeButton, TypeText, TypeInput,
		TypeSelect, TypeImage, TypeHeading, TypeDivider,
	}
}

// Known reports whether t is a palette type.
func (t ComponentType) Known() bool {
	for _, known := range KnownComponentTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Component is one freeform element placed at a pixel position. There is no
// grid snapping and no collision constraint; components may overlap, with
// later components painting over earlier ones.
type Component struct {
	ID     string         `json:"id" yaml:"id"`
	Type   ComponentType  `json:"type" yaml:"type"`
	X      float64        `json:"x" yaml:"x"`
	Y      float64        `json:"y" yaml:"y"`
	Width  float64        `json:"width" yaml:"width"`
	Height float64        `json:"height" yaml:"height"`
	Props  map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

// Clone deep-copies the component.
func (c Component) Clone() Component {
	out := c
	if c.Props != nil {
		out.Props = make(map[string]any, len(c.Props))
		for k, v := range c.Props {
			out.Props[k] = v
		}
	}
	return out
}

// Page is a freeform canvas holding components in paint order.
type Page struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Components []Component `json:"components" yaml:"components"`
	CreatedAt  time.Time   `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Component looks a component up by id.
func (p *Page) Component(id string) (Component, bool) {
	for _, c := range p.Components {
		if c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}

// Clone deep-copies the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	out := *p
	out.Components = make([]Component, len(p.Components))
	for i, c := range p.Components {
		out.Components[i] = c.Clone()
	}
	return &out
}

// NewPage builds an empty page with a fresh identifier.
func NewPage(name string) *Page {
	now := time.Now().UTC()
	return &Page{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
