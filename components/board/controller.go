package board

import (
	"context"
	"io"
)

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// DashboardView is the fully resolved presentation model for one dashboard:
// tiles, grid layout, theme, and edit-mode state, ready for templates or a
// JSON transport.
type DashboardView struct {
	DashboardID string             `json:"dashboard_id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Mode        ViewMode           `json:"mode"`
	EditMode    bool               `json:"edit_mode"`
	Empty       bool               `json:"empty"`
	Theme       *ThemeSelection    `json:"theme,omitempty"`
	Tiles       []TileView         `json:"tiles"`
	Layout      []LayoutItem       `json:"layout"`
	Diagnostics []LayoutDiagnostic `json:"diagnostics,omitempty"`
}

// Controller builds dashboard views on top of the service and hands them to
// templates or JSON transports.
type Controller struct {
	service  *Service
	renderer Renderer
	template string
}

// ControllerOptions configures a Controller. Template defaults to
// "dashboard".
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Template string
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	template := opts.Template
	if template == "" {
		template = "dashboard"
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		template: template,
	}
}

// View resolves the current dashboard into a DashboardView for the given
// session. An empty dashboard yields Empty=true with zero tiles and the
// transports decide how to prompt for the first widget. Per-tile failures
// stay inside their TileView.
func (c *Controller) View(ctx context.Context, session *Session) (DashboardView, error) {
	if c.service == nil {
		return DashboardView{}, errMissingStore
	}
	d := c.service.Current()
	if d == nil {
		return DashboardView{}, errNoDashboard
	}

	view := DashboardView{
		DashboardID: d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
	if session != nil {
		view.Mode = session.Mode
		view.EditMode = session.EditMode
	}

	theme, err := c.resolveTheme(ctx, session)
	if err != nil {
		return DashboardView{}, err
	}
	view.Theme = theme

	if len(d.Widgets) == 0 {
		view.Empty = true
		return view, nil
	}

	layout, diags := BuildLayout(d, view.EditMode)
	view.Layout = layout
	view.Diagnostics = diags

	skip := make(map[string]struct{}, len(diags))
	for _, diag := range diags {
		skip[diag.WidgetID] = struct{}{}
	}

	view.Tiles = make([]TileView, 0, len(d.Widgets))
	for _, w := range d.Widgets {
		if _, malformed := skip[w.ID]; malformed || w.ID == "" {
			continue
		}
		snap, _ := c.service.Snapshot(w.ID)
		view.Tiles = append(view.Tiles, RenderTile(ctx, c.service.Registry(), RenderContext{
			Widget:   w,
			Snapshot: snap,
			Theme:    theme,
		}, session))
	}
	return view, nil
}

// Tile resolves a single widget into a TileView, for partial refreshes.
func (c *Controller) Tile(ctx context.Context, session *Session, widgetID string) (TileView, error) {
	if c.service == nil {
		return TileView{}, errMissingStore
	}
	d := c.service.Current()
	if d == nil {
		return TileView{}, errNoDashboard
	}
	w, ok := d.Widget(widgetID)
	if !ok {
		return TileView{}, &WidgetError{Kind: KindMalformedWidget, WidgetID: widgetID}
	}
	theme, err := c.resolveTheme(ctx, session)
	if err != nil {
		return TileView{}, err
	}
	snap, _ := c.service.Snapshot(widgetID)
	return RenderTile(ctx, c.service.Registry(), RenderContext{
		Widget:   w,
		Snapshot: snap,
		Theme:    theme,
	}, session), nil
}

// RenderTemplate renders the dashboard view through the template renderer.
func (c *Controller) RenderTemplate(ctx context.Context, session *Session, out io.Writer) error {
	if c.renderer == nil {
		return errMissingRenderer
	}
	view, err := c.View(ctx, session)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, view, out)
	return err
}

// LayoutPayload returns just the grid items and diagnostics, the shape the
// client-side grid consumes.
type LayoutPayload struct {
	EditMode    bool               `json:"edit_mode"`
	Items       []LayoutItem       `json:"items"`
	Diagnostics []LayoutDiagnostic `json:"diagnostics,omitempty"`
}

// Layout resolves the grid layout for the session.
func (c *Controller) Layout(_ context.Context, session *Session) (LayoutPayload, error) {
	if c.service == nil {
		return LayoutPayload{}, errMissingStore
	}
	editMode := session != nil && session.EditMode
	items, diags := c.service.Layout(editMode)
	return LayoutPayload{
		EditMode:    editMode,
		Items:       items,
		Diagnostics: diags,
	}, nil
}

func (c *Controller) resolveTheme(ctx context.Context, session *Session) (*ThemeSelection, error) {
	provider := c.service.Theme()
	if provider == nil {
		return nil, nil
	}
	mode := ModeClient
	if session != nil {
		mode = session.Mode
	}
	selection, err := provider.SelectTheme(ctx, SelectorForMode(mode))
	if err != nil {
		return nil, err
	}
	// Views get their own copy so template code tweaking tokens or asset
	// maps cannot corrupt the provider's cached theme.
	return cloneThemeSelection(selection), nil
}
