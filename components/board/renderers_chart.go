package board

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "320px"

var sharedTileCache = NewRenderCache(5 * time.Minute)

// ChartRenderer draws chart and advanced-chart tiles as server-side
// go-echarts markup. The advanced variant honors multi-series config,
// legend and theme overrides.
type ChartRenderer struct {
	Advanced bool
	Cache    *RenderCache
}

// RenderTile implements TileRenderer.
func (p *ChartRenderer) RenderTile(_ context.Context, rc RenderContext) (TileData, error) {
	cfg := rc.Widget.Config
	if cfg == nil {
		cfg = map[string]any{}
	}
	chartType := strings.ToLower(stringValue(cfg["chart_type"], "line"))
	series := parseSeries(cfg["series"])
	live := len(rc.Snapshot.Results) > 0
	if live {
		series = append(series, liveSeries(rc.Snapshot))
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("chart series is required")
	}
	xAxis := stringSliceValue(cfg["x_axis"])
	if len(xAxis) == 0 {
		xAxis = inferredAxisLabels(series)
	}
	theme := p.resolveTheme(rc)

	renderFn := func() (string, error) {
		return p.render(chartType, rc.Widget.Title, xAxis, series, theme)
	}
	var (
		html string
		err  error
	)
	if cache := p.cache(); cache != nil && !live {
		// Static config-driven charts are safe to memoize; live tiles
		// change every poll cycle.
		key := fmt.Sprintf("%s:%s:%s", rc.Widget.ID, chartType, configHash(cfg))
		html, err = cache.GetOrRender(key, renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		return nil, err
	}
	data := TileData{
		"chart_html": html,
		"chart_type": chartType,
		"theme":      theme,
	}
	if p.Advanced {
		data["show_legend"] = !boolValue(cfg["hide_legend"])
		data["stacked"] = boolValue(cfg["stacked"])
	}
	return data, nil
}

func (p *ChartRenderer) cache() *RenderCache {
	if p.Cache != nil {
		return p.Cache
	}
	return sharedTileCache
}

func (p *ChartRenderer) resolveTheme(rc RenderContext) string {
	if override := stringValue(rc.Widget.Config["theme"], ""); p.Advanced && override != "" {
		return override
	}
	if rc.Theme != nil && rc.Theme.ChartTheme != "" {
		return rc.Theme.ChartTheme
	}
	return types.ThemeWesteros
}

func (p *ChartRenderer) render(chartType, title string, xAxis []string, series []TileSeries, theme string) (string, error) {
	switch chartType {
	case "bar":
		bar := charts.NewBar()
		bar.SetGlobalOptions(globalChartOptions(title, theme)...)
		bar.SetXAxis(xAxis)
		for _, s := range series {
			bar.AddSeries(s.Name, toBarData(s.Values))
		}
		return renderChart(bar)
	case "line":
		line := charts.NewLine()
		line.SetGlobalOptions(globalChartOptions(title, theme)...)
		line.SetXAxis(xAxis)
		for _, s := range series {
			line.AddSeries(s.Name, toLineData(s.Values))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	default:
		return "", fmt.Errorf("unsupported chart type: %s", chartType)
	}
}

// GaugeRenderer draws gauge and advanced-gauge tiles. Alongside the chart
// markup it exposes the needle math (percent of range and dial angle) so
// templates can position a CSS needle without re-deriving it.
type GaugeRenderer struct {
	Advanced bool
}

// Dial sweep used for needle positioning: -225 deg (empty) to 45 deg (full).
const (
	gaugeAngleStart = -225.0
	gaugeAngleEnd   = 45.0
)

// GaugePercent clamps value into [min,max] and returns its fraction of the
// range.
func GaugePercent(value, min, max float64) float64 {
	if max <= min {
		return 0
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return (value - min) / (max - min)
}

// GaugeAngle converts a range fraction into a needle angle in degrees.
func GaugeAngle(percent float64) float64 {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return gaugeAngleStart + percent*(gaugeAngleEnd-gaugeAngleStart)
}

// RenderTile implements TileRenderer.
func (p *GaugeRenderer) RenderTile(_ context.Context, rc RenderContext) (TileData, error) {
	value, ok := rc.Snapshot.Value()
	if !ok {
		return TileData{"value": nil}, nil
	}
	cfg := rc.Widget.Config
	min := floatValue(cfg["min"], 0)
	max := floatValue(cfg["max"], 100)
	percent := GaugePercent(value, min, max)

	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(globalChartOptions(rc.Widget.Title, p.theme(rc))...)
	gauge.AddSeries(rc.Widget.Title, []opts.GaugeData{{Name: rc.Widget.Title, Value: value}})
	html, err := renderChart(gauge)
	if err != nil {
		return nil, err
	}

	data := TileData{
		"chart_html": html,
		"value":      value,
		"min":        min,
		"max":        max,
		"percent":    percent,
		"angle":      GaugeAngle(percent),
		"unit":       readingUnit(rc),
	}
	if p.Advanced {
		data["regions"] = ThresholdRegions(rc.Widget.Thresholds)
		if t, hit := EvaluateThresholds(value, rc.Widget.Thresholds); hit {
			data["color"] = t.Color
		}
	}
	return data, nil
}

func (p *GaugeRenderer) theme(rc RenderContext) string {
	if rc.Theme != nil && rc.Theme.ChartTheme != "" {
		return rc.Theme.ChartTheme
	}
	return types.ThemeWesteros
}

// renderHeatmapTile maps bound tags onto a single-row heatmap where color
// intensity tracks each tag's value.
func renderHeatmapTile(_ context.Context, rc RenderContext) (TileData, error) {
	labels := make([]string, 0, len(rc.Snapshot.Results))
	cells := make([]opts.HeatMapData, 0, len(rc.Snapshot.Results))
	maxValue := 100.0
	for i, result := range rc.Snapshot.Results {
		if !result.OK() {
			continue
		}
		label := result.Reading.Name
		if label == "" {
			label = result.TagID
		}
		labels = append(labels, label)
		cells = append(cells, opts.HeatMapData{Value: [3]any{i, 0, result.Reading.Value}})
		if result.Reading.Value > maxValue {
			maxValue = result.Reading.Value
		}
	}
	if len(cells) == 0 {
		return TileData{"chart_html": ""}, nil
	}
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(append(globalChartOptions(rc.Widget.Title, resolveContextTheme(rc)),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxValue),
		}),
	)...)
	hm.SetXAxis(labels)
	hm.AddSeries("values", cells)
	html, err := renderChart(hm)
	if err != nil {
		return nil, err
	}
	return TileData{"chart_html": html, "labels": labels}, nil
}

func resolveContextTheme(rc RenderContext) string {
	if rc.Theme != nil && rc.Theme.ChartTheme != "" {
		return rc.Theme.ChartTheme
	}
	return types.ThemeWesteros
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func globalChartOptions(title, theme string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  theme,
			Width:  "100%",
			Height: defaultChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

// TileSeries is one plotted series on a chart tile.
type TileSeries struct {
	Name   string
	Values []float64
}

func parseSeries(v any) []TileSeries {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]TileSeries, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := TileSeries{Name: stringValue(m["name"], "Series")}
		switch data := m["data"].(type) {
		case []float64:
			s.Values = append(s.Values, data...)
		case []any:
			for _, point := range data {
				s.Values = append(s.Values, floatValue(point, 0))
			}
		}
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func liveSeries(snap Snapshot) TileSeries {
	s := TileSeries{Name: "Current"}
	for _, r := range snap.Results {
		if r.OK() {
			s.Values = append(s.Values, r.Reading.Value)
		}
	}
	return s
}

func inferredAxisLabels(series []TileSeries) []string {
	longest := 0
	for _, s := range series {
		if len(s.Values) > longest {
			longest = len(s.Values)
		}
	}
	labels := make([]string, longest)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}
	return labels
}

func toBarData(values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}
	return data
}

func toLineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}
