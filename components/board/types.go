package board

import (
	"context"
	"time"
)

// WidgetType discriminates the closed set of tile variants the renderer
// registry knows how to draw. Unknown values never crash a dashboard; they
// fall back to a placeholder tile.
type WidgetType string

const (
	TypeChart         WidgetType = "chart"
	TypeAdvancedChart WidgetType = "advanced-chart"
	TypeGauge         WidgetType = "gauge"
	TypeAdvancedGauge WidgetType = "advanced-gauge"
	TypeNumeric       WidgetType = "numeric"
	TypeStatus        WidgetType = "status"
	TypeTable         WidgetType = "table"
	TypeAlert         WidgetType = "alert"
	TypeHeatmap       WidgetType = "heatmap"
	TypeStateTimeline WidgetType = "state-timeline"
	TypeMultiStat     WidgetType = "multi-stat"
)

// KnownWidgetTypes returns every type the built-in registry renders.
func KnownWidgetTypes() []WidgetType {
	return []WidgetType{
		TypeChart, TypeAdvancedChart, TypeGauge, TypeAdvancedGauge,
		TypeNumeric, TypeStatus, TypeTable, TypeAlert,
		TypeHeatmap, TypeStateTimeline, TypeMultiStat,
	}
}

// Known reports whether t is one of the built-in widget types.
func (t WidgetType) Known() bool {
	for _, known := range KnownWidgetTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// GridPos places a widget on the 12-column dashboard grid. Units are grid
// cells, not pixels. Static widgets can never be dragged or resized even in
// edit mode.
type GridPos struct {
	X      int  `json:"x" yaml:"x"`
	Y      int  `json:"y" yaml:"y"`
	W      int  `json:"w" yaml:"w"`
	H      int  `json:"h" yaml:"h"`
	MinW   int  `json:"min_w,omitempty" yaml:"min_w,omitempty"`
	MinH   int  `json:"min_h,omitempty" yaml:"min_h,omitempty"`
	MaxW   int  `json:"max_w,omitempty" yaml:"max_w,omitempty"`
	MaxH   int  `json:"max_h,omitempty" yaml:"max_h,omitempty"`
	Static bool `json:"static,omitempty" yaml:"static,omitempty"`
}

// Widget is one configurable, independently refreshing tile.
//
// ID is immutable after creation and unique within a dashboard. TagID binds
// single-value widgets; TagIDs binds multi-series/table widgets. A widget
// with neither renders the "no data source" state rather than an error.
type Widget struct {
	ID          string         `json:"id" yaml:"id"`
	Type        WidgetType     `json:"type" yaml:"type"`
	Title       string         `json:"title" yaml:"title"`
	Grid        GridPos        `json:"grid" yaml:"grid"`
	RefreshRate int            `json:"refresh_rate,omitempty" yaml:"refresh_rate,omitempty"` // milliseconds; 0 = fetch once
	TagID       string         `json:"tag_id,omitempty" yaml:"tag_id,omitempty"`
	TagIDs      []string       `json:"tag_ids,omitempty" yaml:"tag_ids,omitempty"`
	Thresholds  []Threshold    `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	StatusMap   StatusMap      `json:"status_map,omitempty" yaml:"status_map,omitempty"`
	Config      map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// BoundTags returns every tag identifier the widget is bound to.
func (w Widget) BoundTags() []string {
	if len(w.TagIDs) > 0 {
		return append([]string(nil), w.TagIDs...)
	}
	if w.TagID != "" {
		return []string{w.TagID}
	}
	return nil
}

// Clone returns a deep copy so callers can hand widgets across goroutines
// without sharing mutable slices/maps.
func (w Widget) Clone() Widget {
	out := w
	out.TagIDs = append([]string(nil), w.TagIDs...)
	out.Thresholds = append([]Threshold(nil), w.Thresholds...)
	if w.StatusMap != nil {
		out.StatusMap = make(StatusMap, len(w.StatusMap))
		for k, v := range w.StatusMap {
			out.StatusMap[k] = v
		}
	}
	if w.Config != nil {
		out.Config = make(map[string]any, len(w.Config))
		for k, v := range w.Config {
			out.Config[k] = v
		}
	}
	return out
}

// Dashboard is a whole-snapshot persistence unit. Widget order is
// irrelevant; placement derives from each widget's grid geometry. Edit mode
// is session state and deliberately absent here.
type Dashboard struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Widgets     []Widget  `json:"widgets" yaml:"widgets"`
	CreatedAt   time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Widget returns the widget with the given id, if present.
func (d *Dashboard) Widget(id string) (Widget, bool) {
	if d == nil {
		return Widget{}, false
	}
	for _, w := range d.Widgets {
		if w.ID == id {
			return w, true
		}
	}
	return Widget{}, false
}

// Clone deep-copies the dashboard.
func (d *Dashboard) Clone() *Dashboard {
	if d == nil {
		return nil
	}
	out := *d
	out.Widgets = make([]Widget, len(d.Widgets))
	for i, w := range d.Widgets {
		out.Widgets[i] = w.Clone()
	}
	return &out
}

// ThresholdKind distinguishes single boundary lines from banded regions.
type ThresholdKind string

const (
	ThresholdLine ThresholdKind = "line"
	ThresholdBand ThresholdKind = "band"
)

// Threshold maps a numeric boundary to a visual state. Band thresholds
// cover the region [BandStart, Value] instead of a single line.
type Threshold struct {
	Value       float64       `json:"value" yaml:"value"`
	Color       string        `json:"color" yaml:"color"`
	Label       string        `json:"label,omitempty" yaml:"label,omitempty"`
	Orientation string        `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Kind        ThresholdKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	BandStart   *float64      `json:"band_start,omitempty" yaml:"band_start,omitempty"`
}

// StatusStyle is the display pair resolved from a status map lookup.
type StatusStyle struct {
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

// StatusMap maps stringified raw tag values to display styles. Lookup is
// exact match; misses resolve to an "Unknown (<value>)" style.
type StatusMap map[string]StatusStyle

// TagReading is the current state of one external data point.
type TagReading struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit,omitempty"`
	Value       float64   `json:"value"`
	Raw         string    `json:"raw,omitempty"`
	Status      string    `json:"status,omitempty"`
	LastUpdated time.Time `json:"last_updated,omitempty"`
}

// TagService is the external tag data collaborator. ReadTags must fetch all
// ids concurrently so latency is bounded by the slowest tag, not the sum.
type TagService interface {
	ReadTag(ctx context.Context, id string) (TagReading, error)
	ReadTags(ctx context.Context, ids []string) ([]TagReading, error)
}

// DashboardStore persists dashboards as whole snapshots. Implementations
// own cross-session consistency; the engine never writes deltas.
type DashboardStore interface {
	FetchDashboard(ctx context.Context, id string) (*Dashboard, error)
	SaveDashboard(ctx context.Context, d *Dashboard) (*Dashboard, error)
	CreateDashboard(ctx context.Context) (*Dashboard, error)
}

// TileEvent describes a widget change transports might care about.
type TileEvent struct {
	DashboardID string    `json:"dashboard_id,omitempty"`
	WidgetID    string    `json:"widget_id,omitempty"`
	Reason      string    `json:"reason"`
	Snapshot    *Snapshot `json:"snapshot,omitempty"`
}

// RefreshHook notifies transports (REST/WebSocket/SSE) about tile changes.
type RefreshHook interface {
	TileUpdated(ctx context.Context, event TileEvent) error
}

type noopRefreshHook struct{}

func (noopRefreshHook) TileUpdated(context.Context, TileEvent) error { return nil }
