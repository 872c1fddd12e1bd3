package board

import (
	"errors"
	"fmt"
)

var (
	errMissingStore      = errors.New("board: dashboard store not configured")
	errMissingTagService = errors.New("board: tag service not configured")
	errNoDashboard       = errors.New("board: no dashboard loaded")
	errInvalidWidgetID   = errors.New("board: widget id is required")
	errNotEditMode       = errors.New("board: dashboard is not in edit mode")
	errMissingRenderer   = errors.New("board: template renderer not configured")
	errPollerClosed      = errors.New("board: poller is closed")

	// ErrDashboardNotFound is returned by stores when no snapshot exists
	// for the requested id.
	ErrDashboardNotFound = errors.New("board: dashboard not found")
)

// ErrorKind classifies per-widget failures so transports and templates can
// pick the right presentation. Every kind is containable: none of them may
// abort rendering of the surrounding dashboard.
type ErrorKind string

const (
	// KindNoDataSource marks a widget with no bound tag. Rendered as an
	// explicit "no tag selected" state, not an error.
	KindNoDataSource ErrorKind = "no_data_source"
	// KindFetchFailure marks a failed tag fetch. Polling continues.
	KindFetchFailure ErrorKind = "fetch_failure"
	// KindMalformedWidget marks widgets missing an id or type. They are
	// excluded from layout generation and surfaced as diagnostics.
	KindMalformedWidget ErrorKind = "malformed_widget"
	// KindUnknownWidgetType marks an unregistered widget type. Rendered as
	// a neutral placeholder.
	KindUnknownWidgetType ErrorKind = "unknown_widget_type"
	// KindEmptyDashboard marks a dashboard with zero widgets.
	KindEmptyDashboard ErrorKind = "empty_dashboard"
)

// WidgetError carries the taxonomy kind alongside the widget it concerns.
type WidgetError struct {
	Kind     ErrorKind
	WidgetID string
	Err      error
}

func (e *WidgetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("board: widget %s: %s: %v", e.WidgetID, e.Kind, e.Err)
	}
	return fmt.Sprintf("board: widget %s: %s", e.WidgetID, e.Kind)
}

func (e *WidgetError) Unwrap() error { return e.Err }

// IsKind reports whether err is a WidgetError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var werr *WidgetError
	if errors.As(err, &werr) {
		return werr.Kind == kind
	}
	return false
}
