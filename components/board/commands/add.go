package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	board "github.com/gridboard/go-gridboard/components/board"
)

// AddWidgetInput carries an add-widget request plus the acting identity.
type AddWidgetInput struct {
	Request  board.AddWidgetRequest `json:"request"`
	ActorID  string                 `json:"actor_id"`
	UserID   string                 `json:"user_id"`
	TenantID string                 `json:"tenant_id"`
}

type addService interface {
	AddWidget(ctx context.Context, req board.AddWidgetRequest) (board.Widget, error)
}

// AddWidgetCommand translates incoming requests into service calls and emits
// telemetry so operators can observe widget placement activity.
type AddWidgetCommand struct {
	service   addService
	telemetry Telemetry
}

// NewAddWidgetCommand creates a command instance.
func NewAddWidgetCommand(service addService, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddWidgetInput] = (*AddWidgetCommand)(nil)

// Execute delegates to the board service.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetInput) error {
	if c.service == nil {
		return errors.New("add command requires service")
	}
	ctx = board.ContextWithActivity(ctx, board.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	w, err := c.service.AddWidget(ctx, msg.Request)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.widget.add", map[string]any{
		"widget_id": w.ID,
		"type":      string(w.Type),
	})
	return nil
}
