package board

import (
	"github.com/google/uuid"
)

// WidgetTemplate seeds new widgets: the "Add Widget" picker enumerates
// templates and instantiation copies the defaults under a fresh id.
type WidgetTemplate struct {
	Type        WidgetType     `json:"type" yaml:"type"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	Defaults    Widget         `json:"defaults" yaml:"defaults"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Instantiate copies the template defaults into a new, normalized widget
// with a unique identifier.
func (t WidgetTemplate) Instantiate() Widget {
	w := t.Defaults.Clone()
	w.ID = uuid.NewString()
	w.Type = t.Type
	if w.Title == "" {
		w.Title = t.Name
	}
	return NormalizeWidget(w)
}

var defaultWidgetTemplates = []WidgetTemplate{
	{
		Type:        TypeChart,
		Name:        "Chart",
		Description: "Time-series line or bar chart for one tag.",
		Category:    "charts",
		Defaults: Widget{
			Grid:        GridPos{W: 6, H: 4, MinW: 3, MinH: 3},
			RefreshRate: 5000,
			Config:      map[string]any{"chart_type": "line"},
		},
		Schema: chartConfigSchema(),
	},
	{
		Type:        TypeAdvancedChart,
		Name:        "Advanced Chart",
		Description: "Multi-series chart with axis and theme controls.",
		Category:    "charts",
		Defaults: Widget{
			Grid:        GridPos{W: 8, H: 5, MinW: 4, MinH: 3},
			RefreshRate: 5000,
			Config:      map[string]any{"chart_type": "line", "show_legend": true},
		},
		Schema: advancedChartConfigSchema(),
	},
	{
		Type:        TypeGauge,
		Name:        "Gauge",
		Description: "Single-value radial gauge.",
		Category:    "gauges",
		Defaults: Widget{
			Grid:        GridPos{W: 4, H: 4, MinW: 2, MinH: 2},
			RefreshRate: 3000,
			Config:      map[string]any{"min": 0.0, "max": 100.0},
		},
		Schema: gaugeConfigSchema(),
	},
	{
		Type:        TypeAdvancedGauge,
		Name:        "Advanced Gauge",
		Description: "Radial gauge with threshold bands on the dial.",
		Category:    "gauges",
		Defaults: Widget{
			Grid:        GridPos{W: 4, H: 4, MinW: 3, MinH: 3},
			RefreshRate: 3000,
			Config:      map[string]any{"min": 0.0, "max": 100.0},
		},
		Schema: gaugeConfigSchema(),
	},
	{
		Type:        TypeNumeric,
		Name:        "Numeric Readout",
		Description: "Current value with unit and trend indicator.",
		Category:    "stats",
		Defaults: Widget{
			Grid:        GridPos{W: 3, H: 2, MinW: 2, MinH: 2},
			RefreshRate: 2000,
			Config:      map[string]any{"decimals": 1},
		},
		Schema: numericConfigSchema(),
	},
	{
		Type:        TypeStatus,
		Name:        "Status Indicator",
		Description: "Maps raw values to labeled status colors.",
		Category:    "status",
		Defaults: Widget{
			Grid:        GridPos{W: 3, H: 2, MinW: 2, MinH: 2},
			RefreshRate: 2000,
			StatusMap: StatusMap{
				"0": {Label: "Stopped", Color: "red"},
				"1": {Label: "Running", Color: "green"},
				"2": {Label: "Fault", Color: "orange"},
			},
		},
	},
	{
		Type:        TypeTable,
		Name:        "Tag Table",
		Description: "Tabular readout of multiple tags.",
		Category:    "tables",
		Defaults: Widget{
			Grid:        GridPos{W: 6, H: 5, MinW: 4, MinH: 3},
			RefreshRate: 5000,
			Config:      map[string]any{"columns": []any{"name", "value", "unit", "status"}},
		},
		Schema: tableConfigSchema(),
	},
	{
		Type:        TypeAlert,
		Name:        "Alert Panel",
		Description: "Raises a visual alarm when thresholds trip.",
		Category:    "status",
		Defaults: Widget{
			Grid:        GridPos{W: 4, H: 2, MinW: 2, MinH: 2},
			RefreshRate: 2000,
			Thresholds: []Threshold{
				{Value: 80, Color: "orange", Label: "Warning"},
				{Value: 95, Color: "red", Label: "Critical"},
			},
		},
	},
	{
		Type:        TypeHeatmap,
		Name:        "Heatmap",
		Description: "Grid of values rendered as color intensity.",
		Category:    "charts",
		Defaults: Widget{
			Grid:        GridPos{W: 6, H: 5, MinW: 4, MinH: 3},
			RefreshRate: 10000,
		},
	},
	{
		Type:        TypeStateTimeline,
		Name:        "State Timeline",
		Description: "Horizontal strip of recent status segments.",
		Category:    "status",
		Defaults: Widget{
			Grid:        GridPos{W: 8, H: 2, MinW: 4, MinH: 2},
			RefreshRate: 5000,
			StatusMap: StatusMap{
				"0": {Label: "Stopped", Color: "red"},
				"1": {Label: "Running", Color: "green"},
			},
		},
	},
	{
		Type:        TypeMultiStat,
		Name:        "Multi Stat",
		Description: "Compact grid of readouts for several tags.",
		Category:    "stats",
		Defaults: Widget{
			Grid:        GridPos{W: 6, H: 3, MinW: 3, MinH: 2},
			RefreshRate: 5000,
			Config:      map[string]any{"decimals": 1},
		},
		Schema: numericConfigSchema(),
	},
}

func chartConfigSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"chart_type": map[string]any{
				"type":    "string",
				"enum":    []string{"line", "bar"},
				"default": "line",
			},
			"x_axis": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"series": map[string]any{
				"type":  "array",
				"items": chartSeriesSchema(),
			},
		},
	}
}

func advancedChartConfigSchema() map[string]any {
	schema := chartConfigSchema()
	props := schema["properties"].(map[string]any)
	props["show_legend"] = map[string]any{"type": "boolean", "default": true}
	props["theme"] = map[string]any{"type": "string"}
	props["stacked"] = map[string]any{"type": "boolean", "default": false}
	return schema
}

func chartSeriesSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"name", "data"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"data": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "number"},
			},
		},
	}
}

func gaugeConfigSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"min": map[string]any{"type": "number", "default": 0},
			"max": map[string]any{"type": "number", "default": 100},
			"unit": map[string]any{
				"type": "string",
			},
		},
	}
}

func numericConfigSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"decimals": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 6,
				"default": 1,
			},
			"unit": map[string]any{"type": "string"},
		},
	}
}

func tableConfigSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"columns": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
					"enum": []string{"name", "value", "unit", "status", "updated"},
				},
			},
		},
	}
}

// DefaultWidgetTemplates returns copies of the built-in template catalog.
func DefaultWidgetTemplates() []WidgetTemplate {
	out := make([]WidgetTemplate, len(defaultWidgetTemplates))
	copy(out, defaultWidgetTemplates)
	return out
}

// DefaultSeedWidgets returns the starter widgets used when seeding a fresh
// dashboard.
func DefaultSeedWidgets() []Widget {
	seeds := []struct {
		typ   WidgetType
		title string
		tag   string
		grid  GridPos
	}{
		{TypeNumeric, "Line Pressure", "plant.line1.pressure", GridPos{X: 0, Y: 0, W: 3, H: 2}},
		{TypeGauge, "Motor Load", "plant.line1.motor_load", GridPos{X: 3, Y: 0, W: 4, H: 4}},
		{TypeStatus, "Conveyor State", "plant.line1.conveyor_state", GridPos{X: 7, Y: 0, W: 3, H: 2}},
	}
	out := make([]Widget, 0, len(seeds))
	for _, seed := range seeds {
		tpl, ok := findDefaultTemplate(seed.typ)
		if !ok {
			continue
		}
		w := tpl.Instantiate()
		w.Title = seed.title
		w.TagID = seed.tag
		w.Grid = seed.grid
		out = append(out, NormalizeWidget(w))
	}
	return out
}

func findDefaultTemplate(t WidgetType) (WidgetTemplate, bool) {
	for _, tpl := range defaultWidgetTemplates {
		if tpl.Type == t {
			return tpl, true
		}
	}
	return WidgetTemplate{}, false
}
