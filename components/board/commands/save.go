package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	board "github.com/gridboard/go-gridboard/components/board"
)

// SaveDashboardInput carries the acting identity for the save audit trail.
type SaveDashboardInput struct {
	ActorID  string `json:"actor_id"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

type saveService interface {
	Save(ctx context.Context) (*board.Dashboard, error)
}

// SaveDashboardCommand persists the current dashboard snapshot.
type SaveDashboardCommand struct {
	service   saveService
	telemetry Telemetry
}

// NewSaveDashboardCommand builds the command.
func NewSaveDashboardCommand(service saveService, telemetry Telemetry) *SaveDashboardCommand {
	return &SaveDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveDashboardInput] = (*SaveDashboardCommand)(nil)

// Execute saves the dashboard.
func (c *SaveDashboardCommand) Execute(ctx context.Context, msg SaveDashboardInput) error {
	if c.service == nil {
		return errors.New("save command requires service")
	}
	ctx = board.ContextWithActivity(ctx, board.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	d, err := c.service.Save(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "board.dashboard.save", map[string]any{
		"dashboard_id": d.ID,
		"widgets":      len(d.Widgets),
	})
	return nil
}
