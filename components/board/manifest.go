package board

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// TemplateManifestDocument models a YAML manifest describing widget
// templates and renderer metadata, the unit boardctl scaffolds and the
// registry imports.
type TemplateManifestDocument struct {
	Version  string             `json:"version" yaml:"version"`
	Name     string             `json:"name,omitempty" yaml:"name,omitempty"`
	Package  string             `json:"package,omitempty" yaml:"package,omitempty"`
	Homepage string             `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Widgets  []ManifestTemplate `json:"widgets" yaml:"widgets"`
	Source   string             `json:"-" yaml:"-"`
}

// ManifestTemplate describes a single widget template entry.
type ManifestTemplate struct {
	Template    WidgetTemplate   `json:"template" yaml:"template"`
	Renderer    ManifestRenderer `json:"renderer,omitempty" yaml:"renderer,omitempty"`
	Maintainers []string         `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ManifestRenderer captures discovery metadata about a renderer implementation.
type ManifestRenderer struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Entry        string   `json:"entry,omitempty" yaml:"entry,omitempty"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty"`
	DocsURL      string   `json:"docs_url,omitempty" yaml:"docs_url,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Channel      string   `json:"channel,omitempty" yaml:"channel,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// registry, and returns the document.
func (r *Registry) LoadManifestFile(path string) (*TemplateManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers templates and renderer metadata from a
// decoded manifest.
func (r *Registry) LoadManifestDocument(doc *TemplateManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("board: manifest document is nil")
	}
	for _, widget := range doc.Widgets {
		if err := r.RegisterTemplate(widget.Template); err != nil {
			return fmt.Errorf("board: register template %s from %s: %w", widget.Template.Type, doc.Source, err)
		}
		r.recordRendererMetadata(widget.Template.Type, widget.Renderer)
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*TemplateManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("board: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("board: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*TemplateManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc TemplateManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("board: manifest is empty")
		}
		return nil, fmt.Errorf("board: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *TemplateManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("board: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[WidgetType]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		if widget.Template.Type == "" {
			return fmt.Errorf("board: manifest widget at index %d is missing template.type", idx)
		}
		if widget.Template.Name == "" {
			return fmt.Errorf("board: manifest widget %s missing template.name", widget.Template.Type)
		}
		if _, exists := seen[widget.Template.Type]; exists {
			return fmt.Errorf("board: manifest duplicates widget type %s", widget.Template.Type)
		}
		seen[widget.Template.Type] = struct{}{}
	}
	return nil
}

func (doc *TemplateManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}

func (p ManifestRenderer) isZero() bool {
	return p.Name == "" &&
		p.Summary == "" &&
		p.Entry == "" &&
		p.Package == "" &&
		p.DocsURL == "" &&
		len(p.Capabilities) == 0 &&
		p.Channel == ""
}
