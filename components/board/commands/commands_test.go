package commands

import (
	"context"
	"errors"
	"testing"

	board "github.com/gridboard/go-gridboard/components/board"
)

func TestAddWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewAddWidgetCommand(service, nil)
	input := AddWidgetInput{
		Request: board.AddWidgetRequest{Type: board.TypeNumeric, TagID: "plant.line1.pressure"},
		ActorID: "actor-1",
	}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.addCalls != 1 {
		t.Fatalf("expected add call")
	}
}

func TestAddWidgetCommandRequiresService(t *testing.T) {
	cmd := NewAddWidgetCommand(nil, nil)
	if err := cmd.Execute(context.Background(), AddWidgetInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestRemoveWidgetCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewRemoveWidgetCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), RemoveWidgetInput{WidgetID: "widget-1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.removeCalls != 1 {
		t.Fatalf("expected remove call")
	}
	if telemetry.calls == 0 {
		t.Fatalf("expected telemetry to record events")
	}
}

func TestUpdateWidgetCommandRequiresID(t *testing.T) {
	service := &stubService{}
	cmd := NewUpdateWidgetCommand(service, nil)
	if err := cmd.Execute(context.Background(), UpdateWidgetInput{}); err == nil {
		t.Fatalf("expected error without widget id")
	}
	if service.updateCalls != 0 {
		t.Fatalf("expected no update call, got %d", service.updateCalls)
	}
}

func TestUpdateWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewUpdateWidgetCommand(service, nil)
	title := "Renamed"
	input := UpdateWidgetInput{
		WidgetID: "widget-1",
		Patch:    board.WidgetPatch{Title: &title},
	}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.updateCalls != 1 {
		t.Fatalf("expected update call")
	}
}

func TestApplyLayoutCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewApplyLayoutCommand(service, nil)
	input := ApplyLayoutInput{
		EditMode: true,
		Items:    []board.LayoutItem{{I: "widget-1", X: 2, Y: 0, W: 4, H: 3}},
	}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.layoutCalls != 1 {
		t.Fatalf("expected layout call")
	}
	if !service.lastEditMode {
		t.Fatalf("expected edit mode to be forwarded")
	}
}

func TestSaveDashboardCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewSaveDashboardCommand(service, nil)
	if err := cmd.Execute(context.Background(), SaveDashboardInput{ActorID: "actor-1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.saveCalls != 1 {
		t.Fatalf("expected save call")
	}
}

func TestSeedDashboardCommand(t *testing.T) {
	service := &stubService{}
	created := 0
	cmd := NewSeedDashboardCommand(service, func(context.Context) error {
		created++
		return nil
	}, nil)
	if err := cmd.Execute(context.Background(), SeedDashboardInput{Create: true, Seed: true}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected creator to run once, got %d", created)
	}
	if service.seedCalls != 1 {
		t.Fatalf("expected seed call")
	}
}

func TestSeedDashboardCommandCreateWithoutCreator(t *testing.T) {
	cmd := NewSeedDashboardCommand(&stubService{}, nil, nil)
	if err := cmd.Execute(context.Background(), SeedDashboardInput{Create: true}); err == nil {
		t.Fatalf("expected error when create requested without creator")
	}
}

func TestRefreshWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRefreshWidgetCommand(service, nil)
	if err := cmd.Execute(context.Background(), RefreshWidgetInput{WidgetID: "widget-1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.refreshCalls != 1 {
		t.Fatalf("expected refresh call")
	}
}

func TestCommandsPropagateServiceErrors(t *testing.T) {
	service := &stubService{err: errors.New("boom")}
	if err := NewRemoveWidgetCommand(service, nil).Execute(context.Background(), RemoveWidgetInput{WidgetID: "w"}); err == nil {
		t.Fatalf("expected remove error")
	}
	if err := NewRefreshWidgetCommand(service, nil).Execute(context.Background(), RefreshWidgetInput{WidgetID: "w"}); err == nil {
		t.Fatalf("expected refresh error")
	}
}

type stubService struct {
	err          error
	addCalls     int
	removeCalls  int
	updateCalls  int
	layoutCalls  int
	saveCalls    int
	seedCalls    int
	refreshCalls int
	lastEditMode bool
}

func (s *stubService) AddWidget(_ context.Context, req board.AddWidgetRequest) (board.Widget, error) {
	s.addCalls++
	return board.Widget{ID: "widget-new", Type: req.Type}, s.err
}

func (s *stubService) RemoveWidget(context.Context, string) error {
	s.removeCalls++
	return s.err
}

func (s *stubService) UpdateWidget(_ context.Context, widgetID string, _ board.WidgetPatch) (board.Widget, error) {
	s.updateCalls++
	return board.Widget{ID: widgetID}, s.err
}

func (s *stubService) ApplyLayout(_ context.Context, editMode bool, _ []board.LayoutItem) error {
	s.layoutCalls++
	s.lastEditMode = editMode
	return s.err
}

func (s *stubService) Save(context.Context) (*board.Dashboard, error) {
	s.saveCalls++
	return &board.Dashboard{ID: "dash-1"}, s.err
}

func (s *stubService) Seed(context.Context) error {
	s.seedCalls++
	return s.err
}

func (s *stubService) RefreshWidget(context.Context, string) error {
	s.refreshCalls++
	return s.err
}

type stubTelemetry struct {
	calls int
}

func (s *stubTelemetry) Record(context.Context, string, map[string]any) {
	s.calls++
}
