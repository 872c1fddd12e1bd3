package board

import (
	"context"
	"strings"
	"testing"
)

func TestSelectorForMode(t *testing.T) {
	if sel := SelectorForMode(ModeEngineer); sel.Variant != "engineer" {
		t.Fatalf("unexpected selector: %+v", sel)
	}
	if sel := SelectorForMode(ModeClient); sel.Variant != "client" {
		t.Fatalf("unexpected selector: %+v", sel)
	}
	if sel := SelectorForMode("other"); sel.Variant != "client" {
		t.Fatalf("unknown modes fall back to the client palette: %+v", sel)
	}
}

func TestDefaultThemeProviderVariants(t *testing.T) {
	provider := DefaultThemeProvider{}

	engineer, err := provider.SelectTheme(context.Background(), SelectorForMode(ModeEngineer))
	if err != nil {
		t.Fatalf("SelectTheme: %v", err)
	}
	client, _ := provider.SelectTheme(context.Background(), SelectorForMode(ModeClient))
	if engineer.Tokens["bg"] == client.Tokens["bg"] {
		t.Fatalf("engineer and client palettes should differ")
	}
	if engineer.ChartTheme == "" || client.ChartTheme == "" {
		t.Fatalf("chart themes must resolve")
	}
}

func TestCSSVariables(t *testing.T) {
	theme := &ThemeSelection{Tokens: map[string]string{
		"bg":       "#111",
		"--accent": "#4aa8ff",
		"  ":       "ignored",
	}}

	vars := theme.CSSVariables()
	if vars["--bg"] != "#111" {
		t.Fatalf("token keys must gain the -- prefix: %+v", vars)
	}
	if vars["--accent"] != "#4aa8ff" {
		t.Fatalf("prefixed keys pass through: %+v", vars)
	}
	if len(vars) != 2 {
		t.Fatalf("blank keys must be dropped: %+v", vars)
	}

	inline := theme.CSSVariablesInline()
	if !strings.Contains(inline, "--bg: #111;") {
		t.Fatalf("inline style missing variable: %q", inline)
	}
}

func TestCSSVariablesNilTheme(t *testing.T) {
	var theme *ThemeSelection
	if theme.CSSVariables() != nil {
		t.Fatalf("nil theme yields no variables")
	}
	if theme.CSSVariablesInline() != "" {
		t.Fatalf("nil theme yields no inline style")
	}
}

func TestThemeAssetURL(t *testing.T) {
	assets := ThemeAssets{
		Values: map[string]string{"logo": "img/logo.svg"},
		Prefix: "/static/",
	}
	if got := assets.AssetURL("logo"); got != "/static/img/logo.svg" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := assets.AssetURL("missing"); got != "" {
		t.Fatalf("missing assets resolve empty, got %q", got)
	}

	assets.Resolver = func(path string) string { return "https://cdn.example.com/" + path }
	if got := assets.AssetURL("logo"); got != "https://cdn.example.com/img/logo.svg" {
		t.Fatalf("resolver must win, got %q", got)
	}
}
