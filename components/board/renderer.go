package board

import "context"

// TileData is the type-specific payload handed to templates.
type TileData map[string]any

// RenderContext carries everything a renderer needs for one tile.
type RenderContext struct {
	Widget   Widget
	Snapshot Snapshot
	Theme    *ThemeSelection
}

// TileRenderer turns a widget plus its latest snapshot into template data.
// Renderers are pure with respect to the dashboard: they never mutate it.
type TileRenderer interface {
	RenderTile(ctx context.Context, rc RenderContext) (TileData, error)
}

// TileRendererFunc adapts a function to the TileRenderer interface.
type TileRendererFunc func(ctx context.Context, rc RenderContext) (TileData, error)

// RenderTile implements TileRenderer.
func (f TileRendererFunc) RenderTile(ctx context.Context, rc RenderContext) (TileData, error) {
	return f(ctx, rc)
}

// TileState summarizes what the tile chrome should show around the body.
type TileState string

const (
	TileOK          TileState = "ok"
	TileLoading     TileState = "loading"
	TileError       TileState = "error"
	TileNoData      TileState = "no_data_source"
	TilePlaceholder TileState = "placeholder"
)

// TileView is one fully resolved tile: shared chrome plus the renderer's
// body payload. Per-widget failures land in State/Error and never escape.
type TileView struct {
	WidgetID string     `json:"widget_id"`
	Type     WidgetType `json:"type"`
	Title    string     `json:"title"`
	Grid     GridPos    `json:"grid"`
	State    TileState  `json:"state"`
	Error    string     `json:"error,omitempty"`
	Editable bool       `json:"editable"`
	Selected bool       `json:"selected"`
	Body     TileData   `json:"body,omitempty"`
}

// RenderTile dispatches a widget to its registered renderer and wraps the
// result in shared chrome. Unknown types yield a placeholder tile and
// renderer failures yield an error tile; neither ever propagates as an
// error, so one bad widget cannot take down the dashboard.
func RenderTile(ctx context.Context, reg RendererRegistry, rc RenderContext, session *Session) TileView {
	w := rc.Widget
	view := TileView{
		WidgetID: w.ID,
		Type:     w.Type,
		Title:    w.Title,
		Grid:     normalizeGrid(w.Grid),
		State:    TileOK,
	}
	if session != nil {
		view.Editable = session.EditMode
		view.Selected = session.EditMode && session.Selected() == w.ID
	}
	renderer, ok := reg.Renderer(w.Type)
	if !ok {
		view.State = TilePlaceholder
		view.Error = (&WidgetError{Kind: KindUnknownWidgetType, WidgetID: w.ID}).Error()
		view.Body = TileData{"message": "unknown widget type", "type": string(w.Type)}
		return view
	}
	if rc.Snapshot.NoDataSource {
		view.State = TileNoData
		view.Body = TileData{"message": "no tag selected"}
		return view
	}
	if rc.Snapshot.Loading && !rc.Snapshot.Failed() {
		// A widget whose first fetch already failed shows that failure
		// inline, not a spinner.
		view.State = TileLoading
		return view
	}
	body, err := renderer.RenderTile(ctx, rc)
	if err != nil {
		view.State = TileError
		view.Error = err.Error()
		return view
	}
	if rc.Snapshot.Failed() {
		// Tag data unavailable this cycle; keep the tile alive with an
		// inline error while polling retries underneath.
		view.State = TileError
		view.Error = firstTagError(rc.Snapshot.Results)
	}
	view.Body = body
	return view
}

func firstTagError(results []TagResult) string {
	for _, r := range results {
		if !r.OK() {
			return r.Err
		}
	}
	return ""
}
