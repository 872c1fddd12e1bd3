package board

// LayoutItem is the grid engine's coordinate format, keyed by widget id.
type LayoutItem struct {
	I           string `json:"i"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	W           int    `json:"w"`
	H           int    `json:"h"`
	MinW        int    `json:"min_w,omitempty"`
	MinH        int    `json:"min_h,omitempty"`
	Static      bool   `json:"static"`
	IsDraggable bool   `json:"is_draggable"`
	IsResizable bool   `json:"is_resizable"`
}

// LayoutDiagnostic reports a widget excluded from layout generation.
type LayoutDiagnostic struct {
	WidgetID string
	Reason   string
}

// BuildLayout derives the grid engine item list from dashboard geometry.
//
// A nil dashboard yields an empty layout (callers render the "no dashboard"
// placeholder). Malformed widgets are filtered out and surfaced as
// diagnostics rather than crashing. Outside edit mode every item is static,
// so end users can never drag or resize; a widget's own Static flag pins it
// even while editing.
func BuildLayout(d *Dashboard, editMode bool) ([]LayoutItem, []LayoutDiagnostic) {
	if d == nil {
		return nil, nil
	}
	items := make([]LayoutItem, 0, len(d.Widgets))
	var diags []LayoutDiagnostic
	for _, w := range d.Widgets {
		if malformed(w) {
			diags = append(diags, LayoutDiagnostic{
				WidgetID: w.ID,
				Reason:   "missing id or type",
			})
			continue
		}
		g := normalizeGrid(w.Grid)
		static := !editMode || w.Grid.Static
		items = append(items, LayoutItem{
			I:           w.ID,
			X:           g.X,
			Y:           g.Y,
			W:           g.W,
			H:           g.H,
			MinW:        g.MinW,
			MinH:        g.MinH,
			Static:      static,
			IsDraggable: !static,
			IsResizable: !static,
		})
	}
	return items, diags
}

// ApplyLayoutChange merges engine-emitted geometry back into the dashboard.
//
// The merge is a no-op unless edit mode is active, the dashboard exists, and
// the event carries at least one item. Items are matched by widget id;
// unmatched ids are ignored. The returned dashboard is a fresh copy so
// renderers never observe a partial write.
func ApplyLayoutChange(d *Dashboard, editMode bool, items []LayoutItem) (*Dashboard, bool) {
	if !editMode || d == nil || len(items) == 0 {
		return d, false
	}
	byID := make(map[string]LayoutItem, len(items))
	for _, item := range items {
		byID[item.I] = item
	}
	out := d.Clone()
	changed := false
	for i, w := range out.Widgets {
		item, ok := byID[w.ID]
		if !ok {
			continue
		}
		g := w.Grid
		g.X, g.Y, g.W, g.H = item.X, item.Y, item.W, item.H
		g = normalizeGrid(g)
		if g != w.Grid {
			out.Widgets[i].Grid = g
			changed = true
		}
	}
	if !changed {
		return d, false
	}
	return out, true
}
