package board

// Grid geometry defaults applied when a widget enters the model. Defaulting
// happens exactly once, here, so call sites never re-derive fallbacks.
const (
	DefaultW    = 6
	DefaultH    = 4
	DefaultMinW = 2
	DefaultMinH = 2
	GridColumns = 12
)

// NormalizeWidget fills missing geometry and enforces the size invariants
// (W >= MinW, H >= MinH, and max bounds when declared). It is applied on
// template instantiation, dashboard load, and widget update.
func NormalizeWidget(w Widget) Widget {
	w.Grid = normalizeGrid(w.Grid)
	return w
}

// NormalizeDashboard normalizes every widget in place on a copy.
func NormalizeDashboard(d *Dashboard) *Dashboard {
	if d == nil {
		return nil
	}
	out := d.Clone()
	for i, w := range out.Widgets {
		out.Widgets[i] = NormalizeWidget(w)
	}
	return out
}

func normalizeGrid(g GridPos) GridPos {
	if g.MinW <= 0 {
		g.MinW = DefaultMinW
	}
	if g.MinH <= 0 {
		g.MinH = DefaultMinH
	}
	if g.W <= 0 {
		g.W = DefaultW
	}
	if g.H <= 0 {
		g.H = DefaultH
	}
	if g.W < g.MinW {
		g.W = g.MinW
	}
	if g.H < g.MinH {
		g.H = g.MinH
	}
	if g.MaxW > 0 && g.W > g.MaxW {
		g.W = g.MaxW
	}
	if g.MaxH > 0 && g.H > g.MaxH {
		g.H = g.MaxH
	}
	if g.W > GridColumns {
		g.W = GridColumns
	}
	if g.X < 0 {
		g.X = 0
	}
	if g.Y < 0 {
		g.Y = 0
	}
	if g.X+g.W > GridColumns {
		g.X = GridColumns - g.W
	}
	return g
}

// malformed reports whether a widget lacks the fields layout generation
// depends on. Malformed widgets are skipped, never fatal.
func malformed(w Widget) bool {
	return w.ID == "" || w.Type == ""
}
