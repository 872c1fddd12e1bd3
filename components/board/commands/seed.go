package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SeedDashboardInput controls bootstrap behavior.
type SeedDashboardInput struct {
	Create bool `json:"create"`
	Seed   bool `json:"seed"`
}

type bootstrapService interface {
	Seed(ctx context.Context) error
}

// SeedDashboardCommand creates a fresh dashboard and optionally populates
// it with the starter widgets.
type SeedDashboardCommand struct {
	service   bootstrapService
	creator   func(ctx context.Context) error
	telemetry Telemetry
}

// NewSeedDashboardCommand wires dependencies. The creator function is
// invoked before seeding when SeedDashboardInput.Create is set; pass nil
// when the dashboard is loaded elsewhere.
func NewSeedDashboardCommand(service bootstrapService, creator func(ctx context.Context) error, telemetry Telemetry) *SeedDashboardCommand {
	return &SeedDashboardCommand{
		service:   service,
		creator:   creator,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[SeedDashboardInput] = (*SeedDashboardCommand)(nil)

// Execute runs the bootstrap pipeline.
func (c *SeedDashboardCommand) Execute(ctx context.Context, msg SeedDashboardInput) error {
	if c.service == nil {
		return errors.New("seed command requires service")
	}
	if msg.Create {
		if c.creator == nil {
			return errors.New("seed command requires a creator for create")
		}
		if err := c.creator(ctx); err != nil {
			return err
		}
	}
	if msg.Seed {
		if err := c.service.Seed(ctx); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, "board.seed", map[string]any{
		"create": msg.Create,
		"seed":   msg.Seed,
	})
	return nil
}
