package activity

import "context"

// Hook receives normalized activity events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, evt Event) error

// Notify implements Hook.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Hooks fans an event out to every registered hook. Invalid events are
// skipped; hook errors do not stop delivery to the remaining hooks.
type Hooks []Hook

// Notify normalizes the event and delivers it to each hook in order. The
// first hook error is returned after all hooks have been invoked.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	if len(h) == 0 || !evt.Valid() {
		return nil
	}
	normalized := NormalizeEvent(evt)
	var firstErr error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CaptureHook records every delivered event. Intended for tests.
type CaptureHook struct {
	Events []Event
}

// Notify implements Hook.
func (c *CaptureHook) Notify(_ context.Context, evt Event) error {
	c.Events = append(c.Events, evt)
	return nil
}
