package board

import "testing"

func TestInstantiateAssignsFreshIDs(t *testing.T) {
	tpl, ok := findDefaultTemplate(TypeNumeric)
	if !ok {
		t.Fatalf("numeric template missing")
	}

	a := tpl.Instantiate()
	b := tpl.Instantiate()
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("instances must get unique ids: %q vs %q", a.ID, b.ID)
	}
	if a.Type != TypeNumeric {
		t.Fatalf("instance type must come from the template, got %q", a.Type)
	}
	if a.Title == "" {
		t.Fatalf("instance should default its title from the template name")
	}
}

func TestInstantiateCopiesDefaults(t *testing.T) {
	tpl, _ := findDefaultTemplate(TypeChart)

	w := tpl.Instantiate()
	w.Config["chart_type"] = "bar"

	again := tpl.Instantiate()
	if again.Config["chart_type"] != "line" {
		t.Fatalf("template defaults must not be shared between instances")
	}
}

func TestInstantiateNormalizesGeometry(t *testing.T) {
	tpl := WidgetTemplate{Type: "custom.mini", Name: "Mini"}

	w := tpl.Instantiate()
	if w.Grid.W != DefaultW || w.Grid.H != DefaultH {
		t.Fatalf("instantiation must normalize geometry, got %+v", w.Grid)
	}
}

func TestDefaultSeedWidgets(t *testing.T) {
	seeds := DefaultSeedWidgets()
	if len(seeds) == 0 {
		t.Fatalf("expected seed widgets")
	}
	for _, w := range seeds {
		if w.ID == "" || w.Type == "" || w.TagID == "" {
			t.Fatalf("seed widget incomplete: %+v", w)
		}
		if w.Grid.W <= 0 || w.Grid.H <= 0 {
			t.Fatalf("seed widget not normalized: %+v", w.Grid)
		}
	}
}
