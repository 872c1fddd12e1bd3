package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RefreshWidgetInput forces a fetch for a widget outside its interval.
type RefreshWidgetInput struct {
	WidgetID string `json:"widget_id"`
}

type refreshService interface {
	RefreshWidget(ctx context.Context, widgetID string) error
}

// RefreshWidgetCommand triggers an immediate poll for a widget.
type RefreshWidgetCommand struct {
	service   refreshService
	telemetry Telemetry
}

// NewRefreshWidgetCommand creates the command.
func NewRefreshWidgetCommand(service refreshService, telemetry Telemetry) *RefreshWidgetCommand {
	return &RefreshWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshWidgetInput] = (*RefreshWidgetCommand)(nil)

// Execute rebinds the widget, which triggers a fresh fetch.
func (c *RefreshWidgetCommand) Execute(ctx context.Context, msg RefreshWidgetInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if err := c.service.RefreshWidget(ctx, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.widget.refresh", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}
