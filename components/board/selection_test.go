package board

import "testing"

func TestSessionDefaults(t *testing.T) {
	s := NewSession()
	if s.Mode != ModeClient {
		t.Fatalf("new sessions start in client mode, got %q", s.Mode)
	}
	if s.EditMode {
		t.Fatalf("new sessions start with editing off")
	}
	if s.Selected() != "" {
		t.Fatalf("new sessions have no selection")
	}
}

func TestClickOutsideEditModeIsInert(t *testing.T) {
	s := NewSession()

	if s.Click("w1") {
		t.Fatalf("click outside edit mode must not select")
	}
	if s.Selected() != "" {
		t.Fatalf("selection leaked outside edit mode: %q", s.Selected())
	}
}

func TestClickSelectsAndToggles(t *testing.T) {
	s := NewSession()
	s.SetEditMode(true)

	if !s.Click("w1") {
		t.Fatalf("first click should select")
	}
	if s.Selected() != "w1" {
		t.Fatalf("expected w1 selected, got %q", s.Selected())
	}
	if s.Click("w1") {
		t.Fatalf("second click on the same widget should deselect")
	}
	if s.Selected() != "" {
		t.Fatalf("toggle-off left a selection: %q", s.Selected())
	}
}

func TestClickMovesSelection(t *testing.T) {
	s := NewSession()
	s.SetEditMode(true)
	s.Click("w1")

	if !s.Click("w2") {
		t.Fatalf("clicking another widget should select it")
	}
	if s.Selected() != "w2" {
		t.Fatalf("expected w2 selected, got %q", s.Selected())
	}
}

func TestLeavingEditModeDropsSelection(t *testing.T) {
	s := NewSession()
	s.SetEditMode(true)
	s.Click("w1")

	s.SetEditMode(false)
	if s.Selected() != "" {
		t.Fatalf("selection must clear when leaving edit mode")
	}
}

func TestDeselect(t *testing.T) {
	s := NewSession()
	s.SetEditMode(true)
	s.Click("w1")
	s.Deselect()

	if s.Selected() != "" {
		t.Fatalf("explicit deselect must clear the selection")
	}
}
