package builder

import "github.com/google/uuid"

// PaletteEntry describes the defaults applied when a component type is
// dropped onto the canvas.
type PaletteEntry struct {
	Type   ComponentType  `json:"type" yaml:"type"`
	Name   string         `json:"name" yaml:"name"`
	Width  float64        `json:"width" yaml:"width"`
	Height float64        `json:"height" yaml:"height"`
	Props  map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

// Instantiate copies the entry defaults into a new component at the given
// position.
func (e PaletteEntry) Instantiate(x, y float64) Component {
	c := Component{
		ID:     uuid.NewString(),
		Type:   e.Type,
		X:      x,
		Y:      y,
		Width:  e.Width,
		Height: e.Height,
	}
	if e.Props != nil {
		c.Props = make(map[string]any, len(e.Props))
		for k, v := range e.Props {
			c.Props[k] = v
		}
	}
	return normalizeComponent(c)
}

var defaultPalette = []PaletteEntry{
	{Type: TypeCard, Name: "Card", Width: 240, Height: 160, Props: map[string]any{"background": "#ffffff", "shadow": true}},
	{Type: TypeButton, Name: "Button", Width: 120, Height: 40, Props: map[string]any{"label": "Button", "variant": "primary"}},
	{Type: TypeText, Name: "Text", Width: 200, Height: 60, Props: map[string]any{"text": "Text block", "size": 14}},
	{Type: TypeInput, Name: "Input", Width: 200, Height: 36, Props: map[string]any{"placeholder": "Enter value"}},
	{Type: TypeSelect, Name: "Select", Width: 200, Height: 36, Props: map[string]any{"options": []string{"Option 1", "Option 2"}}},
	{Type: TypeImage, Name: "Image", Width: 240, Height: 180, Props: map[string]any{"src": "", "fit": "contain"}},
	{Type: TypeHeading, Name: "Heading", Width: 300, Height: 48, Props: map[string]any{"text": "Heading", "level": 2}},
	{Type: TypeDivider, Name: "Divider", Width: 300, Height: 2, Props: map[string]any{"color": "#d0d0d0"}},
}

// DefaultPalette returns the built-in palette entries.
func DefaultPalette() []PaletteEntry {
	out := make([]PaletteEntry, len(defaultPalette))
	copy(out, defaultPalette)
	return out
}

func paletteEntry(t ComponentType) (PaletteEntry, bool) {
	for _, entry := range defaultPalette {
		if entry.Type == t {
			return entry, true
		}
	}
	return PaletteEntry{}, false
}

const (
	defaultComponentWidth  = 100
	defaultComponentHeight = 40
)

// normalizeComponent fills missing sizes. Positions are free-form and may
// even be negative while a drag is in flight, so they are left alone.
func normalizeComponent(c Component) Component {
	if c.Width <= 0 {
		c.Width = defaultComponentWidth
	}
	if c.Height <= 0 {
		c.Height = defaultComponentHeight
	}
	return c
}
