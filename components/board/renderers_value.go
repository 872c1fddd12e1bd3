package board

import (
	"context"
	"strconv"
)

// defaultRenderers associates every built-in widget type with its strategy.
var defaultRenderers = map[WidgetType]TileRenderer{
	TypeNumeric:       TileRendererFunc(renderNumericTile),
	TypeStatus:        TileRendererFunc(renderStatusTile),
	TypeAlert:         TileRendererFunc(renderAlertTile),
	TypeTable:         TileRendererFunc(renderTableTile),
	TypeMultiStat:     TileRendererFunc(renderMultiStatTile),
	TypeStateTimeline: TileRendererFunc(renderStateTimelineTile),
	TypeChart:         &ChartRenderer{},
	TypeAdvancedChart: &ChartRenderer{Advanced: true},
	TypeGauge:         &GaugeRenderer{},
	TypeAdvancedGauge: &GaugeRenderer{Advanced: true},
	TypeHeatmap:       TileRendererFunc(renderHeatmapTile),
}

func renderNumericTile(_ context.Context, rc RenderContext) (TileData, error) {
	value, ok := rc.Snapshot.Value()
	if !ok {
		return TileData{"value": nil}, nil
	}
	decimals := intValue(rc.Widget.Config["decimals"], 1)
	data := TileData{
		"value":     strconv.FormatFloat(value, 'f', decimals, 64),
		"raw_value": value,
		"unit":      readingUnit(rc),
		"trend":     string(rc.Snapshot.Trend),
	}
	if t, ok := EvaluateThresholds(value, rc.Widget.Thresholds); ok {
		data["color"] = t.Color
		if t.Label != "" {
			data["label"] = t.Label
		}
	}
	return data, nil
}

func renderStatusTile(_ context.Context, rc RenderContext) (TileData, error) {
	value, ok := rc.Snapshot.Value()
	if !ok {
		return TileData{"status": nil}, nil
	}
	style := rc.Widget.StatusMap.LookupValue(value)
	return TileData{
		"status": style.Label,
		"color":  style.Color,
		"blink":  rc.Snapshot.Blink,
	}, nil
}

func renderAlertTile(_ context.Context, rc RenderContext) (TileData, error) {
	value, ok := rc.Snapshot.Value()
	if !ok {
		return TileData{"active": false}, nil
	}
	data := TileData{"active": false, "raw_value": value, "unit": readingUnit(rc)}
	if t, hit := EvaluateThresholds(value, rc.Widget.Thresholds); hit {
		data["active"] = true
		data["severity"] = t.Label
		data["color"] = t.Color
		data["boundary"] = t.Value
	}
	return data, nil
}

// renderTableTile builds one row per bound tag. Failed tags keep their row
// with an inline error so a single bad tag never blanks the table.
func renderTableTile(_ context.Context, rc RenderContext) (TileData, error) {
	columns := stringSliceValue(rc.Widget.Config["columns"])
	if len(columns) == 0 {
		columns = []string{"name", "value", "unit", "status"}
	}
	rows := make([]map[string]any, 0, len(rc.Snapshot.Results))
	for _, result := range rc.Snapshot.Results {
		if !result.OK() {
			rows = append(rows, map[string]any{
				"tag_id": result.TagID,
				"error":  result.Err,
			})
			continue
		}
		r := result.Reading
		row := map[string]any{
			"tag_id":  result.TagID,
			"name":    r.Name,
			"value":   r.Value,
			"unit":    r.Unit,
			"status":  r.Status,
			"updated": r.LastUpdated,
		}
		rows = append(rows, row)
	}
	return TileData{"columns": columns, "rows": rows}, nil
}

func renderMultiStatTile(_ context.Context, rc RenderContext) (TileData, error) {
	decimals := intValue(rc.Widget.Config["decimals"], 1)
	cells := make([]map[string]any, 0, len(rc.Snapshot.Results))
	for _, result := range rc.Snapshot.Results {
		if !result.OK() {
			cells = append(cells, map[string]any{"tag_id": result.TagID, "error": result.Err})
			continue
		}
		r := result.Reading
		cell := map[string]any{
			"tag_id": result.TagID,
			"name":   r.Name,
			"value":  strconv.FormatFloat(r.Value, 'f', decimals, 64),
			"unit":   r.Unit,
		}
		if t, ok := EvaluateThresholds(r.Value, rc.Widget.Thresholds); ok {
			cell["color"] = t.Color
		}
		cells = append(cells, cell)
	}
	return TileData{"cells": cells}, nil
}

// renderStateTimelineTile appends the current status segment to any
// configured history so the strip always ends at "now".
func renderStateTimelineTile(_ context.Context, rc RenderContext) (TileData, error) {
	segments := make([]map[string]any, 0, 8)
	if history, ok := rc.Widget.Config["segments"].([]any); ok {
		for _, item := range history {
			if seg, ok := item.(map[string]any); ok {
				segments = append(segments, seg)
			}
		}
	}
	if value, ok := rc.Snapshot.Value(); ok {
		style := rc.Widget.StatusMap.LookupValue(value)
		segments = append(segments, map[string]any{
			"label":   style.Label,
			"color":   style.Color,
			"current": true,
		})
	}
	return TileData{"segments": segments}, nil
}

func readingUnit(rc RenderContext) string {
	if unit := stringValue(rc.Widget.Config["unit"], ""); unit != "" {
		return unit
	}
	for _, r := range rc.Snapshot.Results {
		if r.OK() && r.Reading.Unit != "" {
			return r.Reading.Unit
		}
	}
	return ""
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func intValue(v any, fallback int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return fallback
	}
}

func floatValue(v any, fallback float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return fallback
	}
}

func boolValue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func stringSliceValue(v any) []string {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
