package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	board "github.com/gridboard/go-gridboard/components/board"
)

// UpdateWidgetInput captures widget update payloads.
type UpdateWidgetInput struct {
	WidgetID string            `json:"widget_id"`
	Patch    board.WidgetPatch `json:"patch"`
	ActorID  string            `json:"actor_id"`
	UserID   string            `json:"user_id"`
	TenantID string            `json:"tenant_id"`
}

type updateService interface {
	UpdateWidget(ctx context.Context, widgetID string, patch board.WidgetPatch) (board.Widget, error)
}

// UpdateWidgetCommand wraps Service.UpdateWidget.
type UpdateWidgetCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewUpdateWidgetCommand creates the command.
func NewUpdateWidgetCommand(service updateService, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetInput] = (*UpdateWidgetCommand)(nil)

// Execute merges the patch onto the stored widget.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetInput) error {
	if c.service == nil {
		return errors.New("update command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("update command requires widget id")
	}
	ctx = board.ContextWithActivity(ctx, board.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	if _, err := c.service.UpdateWidget(ctx, msg.WidgetID, msg.Patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.widget.update", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}
