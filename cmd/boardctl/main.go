package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	board "github.com/gridboard/go-gridboard/components/board"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a widget template, renderer stub, and manifest entry."`
}

type scaffoldCmd struct {
	Type            string   `required:"" help:"Widget type identifier (e.g. acme-flow-meter)."`
	Name            string   `required:"" help:"Display name for the widget template."`
	Description     string   `required:"" help:"One-line description used in manifests."`
	Category        string   `default:"custom" help:"Template category (charts, stats, status, etc.)."`
	ManifestPath    string   `required:"" type:"path" help:"Path to the template manifest YAML file to update."`
	SchemaPath      string   `type:"path" help:"Optional path to a JSON schema file for the widget configuration."`
	Tag             []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Maintainer      []string `help:"Maintainers to record in the manifest."`
	Capabilities    []string `help:"Renderer capability labels (html,json,chart,...)."`
	DocsURL         string   `help:"Link to renderer documentation."`
	Channel         string   `help:"Distribution channel label (community, partner, internal)."`
	RendererPackage string   `default:"github.com/gridboard/go-gridboard/components/board" help:"Go package where the renderer factory lives."`
	RendererEntry   string   `help:"Factory identifier recorded in the manifest (defaults to New<Widget>Renderer)."`
	RendererOut     string   `help:"File path for the generated renderer stub (defaults to components/board/renderers/<type>_renderer.go)."`
	Overwrite       bool     `help:"Overwrite existing renderer stub / manifest entry if present."`
	SkipRenderer    bool     `name:"skip-renderer" help:"Skip renderer stub generation."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Widget template scaffolding utility for go-gridboard manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("boardctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	widgetType := board.WidgetType(cmd.Type)
	if !cmd.Overwrite {
		for _, widget := range doc.Widgets {
			if widget.Template.Type == widgetType {
				return fmt.Errorf("boardctl: manifest already defines widget type %s (use --overwrite to replace)", cmd.Type)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	baseName := deriveBaseName(cmd.Type)
	rendererType := baseName + "Renderer"
	rendererEntry := cmd.RendererEntry
	if rendererEntry == "" {
		rendererEntry = fmt.Sprintf("%s.New%s", cmd.RendererPackage, rendererType)
	}

	entry := board.ManifestTemplate{
		Template: board.WidgetTemplate{
			Type:        widgetType,
			Name:        cmd.Name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Defaults: board.Widget{
				Type:  widgetType,
				Title: cmd.Name,
			},
			Schema: schema,
		},
		Renderer: board.ManifestRenderer{
			Name:         fmt.Sprintf("%s Renderer", cmd.Name),
			Summary:      cmd.Description,
			Entry:        rendererEntry,
			Package:      cmd.RendererPackage,
			DocsURL:      cmd.DocsURL,
			Capabilities: cmd.Capabilities,
			Channel:      cmd.Channel,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Widgets {
			if doc.Widgets[idx].Template.Type == widgetType {
				doc.Widgets[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Widgets = append(doc.Widgets, entry)
		}
	} else {
		doc.Widgets = append(doc.Widgets, entry)
	}

	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Template.Type < doc.Widgets[j].Template.Type
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipRenderer {
		fmt.Fprintf(os.Stdout, "✓ Added %s to %s (renderer entry recorded as %s)\n", cmd.Type, manifestPath, rendererEntry)
		return nil
	}

	rendererPath := cmd.RendererOut
	if rendererPath == "" {
		rendererPath = filepath.Join("components", "board", "renderers", fmt.Sprintf("%s_renderer.go", sanitizeFileName(cmd.Type)))
	}
	if err := writeRendererStub(rendererPath, rendererType, cmd.Type, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s and generated %s\n", cmd.Type, manifestPath, rendererPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if strings.TrimSpace(cmd.Type) == "" {
		return errors.New("boardctl: widget type is required")
	}
	if strings.ContainsAny(cmd.Type, " /\\") {
		return fmt.Errorf("boardctl: widget type %q must not contain spaces or slashes", cmd.Type)
	}
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("boardctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("boardctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*board.TemplateManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &board.TemplateManifestDocument{
				Version: board.ManifestVersion,
				Widgets: []board.ManifestTemplate{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("boardctl: stat manifest: %w", err)
	}
	doc, err := board.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifest(path string, doc *board.TemplateManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("boardctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("boardctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("boardctl: write manifest: %w", err)
	}
	return nil
}

func writeRendererStub(path, rendererType, widgetType string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("boardctl: renderer stub %s already exists (use --overwrite or --renderer-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("boardctl: mkdir renderer dir: %w", err)
	}
	content := fmt.Sprintf(`package board

import (
	"context"
)

// %s draws %s tiles.
type %s struct{}

// New%s wires the renderer into the board registry.
func New%s() TileRenderer {
	return &%s{}
}

// RenderTile builds the tile payload. Replace with your implementation.
func (r *%s) RenderTile(ctx context.Context, rc RenderContext) (TileData, error) {
	return TileData{
		"message": "replace with real data",
	}, nil
}
`, rendererType, widgetType, rendererType, rendererType, rendererType, rendererType, rendererType)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("boardctl: write renderer stub: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.FieldsFunc(code, func(r rune) bool { return r == '.' || r == '-' })
	slug := code
	if len(parts) > 0 {
		slug = strings.Join(parts, "_")
	}
	return strcase.ToCamel(slug)
}

func sanitizeFileName(code string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(code))
}
