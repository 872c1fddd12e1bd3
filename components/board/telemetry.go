package board

import "context"

// Telemetry receives board events. Implementations must be safe for
// concurrent use: the poller reports from its fetch goroutines while the
// service reports from request handlers.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a plain function to the Telemetry interface.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record implements Telemetry.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}

// Poll-loop event names. Dashboard and widget lifecycle events use the
// "board.dashboard.*" and "board.widget.*" prefixes and are emitted by the
// service and commands.
const (
	eventPollStaleDiscard = "board.poll.stale_discard"
	eventPollFetchFailed  = "board.poll.fetch_failed"
	eventPollHookError    = "board.poll.hook_error"
)

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
