package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	board "github.com/gridboard/go-gridboard/components/board"
)

// ApplyLayoutInput carries grid positions from the client-side layout
// engine.
type ApplyLayoutInput struct {
	EditMode bool               `json:"edit_mode"`
	Items    []board.LayoutItem `json:"items"`
	ActorID  string             `json:"actor_id"`
	UserID   string             `json:"user_id"`
	TenantID string             `json:"tenant_id"`
}

type layoutService interface {
	ApplyLayout(ctx context.Context, editMode bool, items []board.LayoutItem) error
}

// ApplyLayoutCommand wraps Service.ApplyLayout.
type ApplyLayoutCommand struct {
	service   layoutService
	telemetry Telemetry
}

// NewApplyLayoutCommand builds the command.
func NewApplyLayoutCommand(service layoutService, telemetry Telemetry) *ApplyLayoutCommand {
	return &ApplyLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ApplyLayoutInput] = (*ApplyLayoutCommand)(nil)

// Execute applies the new layout.
func (c *ApplyLayoutCommand) Execute(ctx context.Context, msg ApplyLayoutInput) error {
	if c.service == nil {
		return errors.New("layout command requires service")
	}
	ctx = board.ContextWithActivity(ctx, board.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	if err := c.service.ApplyLayout(ctx, msg.EditMode, msg.Items); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.layout.apply", map[string]any{
		"count": len(msg.Items),
	})
	return nil
}
