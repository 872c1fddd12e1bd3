package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	board "github.com/gridboard/go-gridboard/components/board"
)

type viewController interface {
	View(ctx context.Context, session *board.Session) (board.DashboardView, error)
}

// DashboardViewQuery resolves the full presentation model for a session.
type DashboardViewQuery struct {
	controller viewController
}

// NewDashboardViewQuery builds the query.
func NewDashboardViewQuery(controller viewController) *DashboardViewQuery {
	return &DashboardViewQuery{controller: controller}
}

var _ gocommand.Querier[*board.Session, board.DashboardView] = (*DashboardViewQuery)(nil)

// Query resolves the dashboard view for the session.
func (q *DashboardViewQuery) Query(ctx context.Context, session *board.Session) (board.DashboardView, error) {
	return q.controller.View(ctx, session)
}
