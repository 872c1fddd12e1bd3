package board

import (
	"context"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ThemeProvider resolves the visual theme for a presentation mode. It is
// optional; when absent the built-in palettes apply.
type ThemeProvider interface {
	SelectTheme(ctx context.Context, selector ThemeSelector) (*ThemeSelection, error)
}

// ThemeSelector names the desired theme/variant.
type ThemeSelector struct {
	Name    string
	Variant string
}

// SelectorForMode maps the presentation mode to a theme selector. The
// engineer view favors a dense dark palette, the client view a lighter one.
func SelectorForMode(mode ViewMode) ThemeSelector {
	if mode == ModeEngineer {
		return ThemeSelector{Name: "gridboard", Variant: "engineer"}
	}
	return ThemeSelector{Name: "gridboard", Variant: "client"}
}

// ThemeSelection carries resolved theme details: CSS tokens, asset
// locations, and the echarts theme name used for chart tiles.
type ThemeSelection struct {
	Name       string
	Variant    string
	Tokens     map[string]string
	Assets     ThemeAssets
	ChartTheme string
}

// ThemeAssets provides asset metadata plus optional prefix/resolver.
type ThemeAssets struct {
	Values   map[string]string
	Prefix   string
	Resolver func(string) string
}

// AssetURL resolves the final URL for a named asset (logo, favicon, etc.).
func (assets ThemeAssets) AssetURL(name string) string {
	if len(assets.Values) == 0 {
		return ""
	}
	path := assets.Values[name]
	if path == "" {
		return ""
	}
	if assets.Resolver != nil {
		if resolved := assets.Resolver(path); resolved != "" {
			return resolved
		}
	}
	if assets.Prefix != "" {
		return strings.TrimRight(assets.Prefix, "/") + "/" + strings.TrimLeft(path, "/")
	}
	return path
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	var builder strings.Builder
	for key, value := range vars {
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

// DefaultThemeProvider serves the built-in engineer/client palettes.
type DefaultThemeProvider struct{}

// SelectTheme implements ThemeProvider.
func (DefaultThemeProvider) SelectTheme(_ context.Context, selector ThemeSelector) (*ThemeSelection, error) {
	if selector.Variant == "engineer" {
		return &ThemeSelection{
			Name:    selector.Name,
			Variant: "engineer",
			Tokens: map[string]string{
				"bg":          "#11151c",
				"tile-bg":     "#1a212c",
				"text":        "#e6edf3",
				"accent":      "#4aa8ff",
				"grid-stroke": "#2b3442",
			},
			ChartTheme: string(types.ThemeChalk),
		}, nil
	}
	return &ThemeSelection{
		Name:    selector.Name,
		Variant: "client",
		Tokens: map[string]string{
			"bg":          "#f4f6f9",
			"tile-bg":     "#ffffff",
			"text":        "#24292f",
			"accent":      "#0a6ed1",
			"grid-stroke": "#d7dde4",
		},
		ChartTheme: string(types.ThemeWesteros),
	}, nil
}

func cloneThemeSelection(selection *ThemeSelection) *ThemeSelection {
	if selection == nil {
		return nil
	}
	cloned := *selection
	if len(selection.Tokens) > 0 {
		cloned.Tokens = make(map[string]string, len(selection.Tokens))
		for key, value := range selection.Tokens {
			cloned.Tokens[key] = value
		}
	}
	if len(selection.Assets.Values) > 0 {
		cloned.Assets.Values = make(map[string]string, len(selection.Assets.Values))
		for key, value := range selection.Assets.Values {
			cloned.Assets.Values[key] = value
		}
	}
	return &cloned
}
