package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/gridboard/go-gridboard/components/board/commands"
)

// Executor is the command surface transports depend on. The Commands
// aggregate satisfies it; tests can stub individual operations.
type Executor interface {
	Add(ctx context.Context, input commands.AddWidgetInput) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	Update(ctx context.Context, input commands.UpdateWidgetInput) error
	Layout(ctx context.Context, input commands.ApplyLayoutInput) error
	Save(ctx context.Context, input commands.SaveDashboardInput) error
	Refresh(ctx context.Context, input commands.RefreshWidgetInput) error
}

// Commands bundles the shared command instances behind the Executor
// interface.
type Commands struct {
	AddWidget    gocommand.Commander[commands.AddWidgetInput]
	RemoveWidget gocommand.Commander[commands.RemoveWidgetInput]
	UpdateWidget gocommand.Commander[commands.UpdateWidgetInput]
	ApplyLayout  gocommand.Commander[commands.ApplyLayoutInput]
	SaveBoard    gocommand.Commander[commands.SaveDashboardInput]
	RefreshTile  gocommand.Commander[commands.RefreshWidgetInput]
}

var _ Executor = (*Commands)(nil)

func (c *Commands) Add(ctx context.Context, input commands.AddWidgetInput) error {
	return c.AddWidget.Execute(ctx, input)
}

func (c *Commands) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	return c.RemoveWidget.Execute(ctx, input)
}

func (c *Commands) Update(ctx context.Context, input commands.UpdateWidgetInput) error {
	return c.UpdateWidget.Execute(ctx, input)
}

func (c *Commands) Layout(ctx context.Context, input commands.ApplyLayoutInput) error {
	return c.ApplyLayout.Execute(ctx, input)
}

func (c *Commands) Save(ctx context.Context, input commands.SaveDashboardInput) error {
	return c.SaveBoard.Execute(ctx, input)
}

func (c *Commands) Refresh(ctx context.Context, input commands.RefreshWidgetInput) error {
	return c.RefreshTile.Execute(ctx, input)
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Add(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	input := commands.RemoveWidgetInput{WidgetID: widgetID}
	if err := h.API.Remove(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	var payload commands.UpdateWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.WidgetID = widgetID
	if err := h.API.Update(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleApplyLayout(w http.ResponseWriter, r *http.Request) {
	var payload commands.ApplyLayoutInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Layout(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleSaveDashboard(w http.ResponseWriter, r *http.Request) {
	var payload commands.SaveDashboardInput
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := h.API.Save(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleRefreshWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
