package activity

import "context"

// DefaultChannel is stamped on events that do not set one.
const DefaultChannel = "board"

// Config toggles activity emission and sets the default delivery channel.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter delivers events to a hook chain when enabled.
type Emitter struct {
	hooks  Hooks
	config Config
}

// NewEmitter builds an emitter. An emitter with no hooks is disabled
// regardless of config.
func NewEmitter(hooks Hooks, config Config) *Emitter {
	if config.Channel == "" {
		config.Channel = DefaultChannel
	}
	return &Emitter{hooks: hooks, config: config}
}

// Enabled reports whether Emit will deliver events.
func (e *Emitter) Enabled() bool {
	if e == nil {
		return false
	}
	return e.config.Enabled && len(e.hooks) > 0
}

// Emit normalizes and delivers the event. Disabled emitters drop events
// silently.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.config.Channel
	}
	return e.hooks.Notify(ctx, evt)
}
