package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	board "github.com/gridboard/go-gridboard/components/board"
)

// TileInput identifies a single widget for a session.
type TileInput struct {
	Session  *board.Session
	WidgetID string
}

type tileController interface {
	Tile(ctx context.Context, session *board.Session, widgetID string) (board.TileView, error)
}

// TileQuery fetches one rendered tile, used for partial refreshes.
type TileQuery struct {
	controller tileController
}

// NewTileQuery builds the query.
func NewTileQuery(controller tileController) *TileQuery {
	return &TileQuery{controller: controller}
}

var _ gocommand.Querier[TileInput, board.TileView] = (*TileQuery)(nil)

// Query resolves an individual tile for the session.
func (q *TileQuery) Query(ctx context.Context, input TileInput) (board.TileView, error) {
	return q.controller.Tile(ctx, input.Session, input.WidgetID)
}
