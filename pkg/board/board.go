package board

import (
	core "github.com/gridboard/go-gridboard/components/board"
)

// Service exposes the underlying components/board.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Controller re-export for transports.
type Controller = core.Controller

// ControllerOptions re-export for transports.
type ControllerOptions = core.ControllerOptions

// Session re-export for viewer state.
type Session = core.Session

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// NewController proxies to the internal constructor.
func NewController(opts ControllerOptions) *Controller {
	return core.NewController(opts)
}

// NewSession proxies to the internal constructor.
func NewSession() *Session {
	return core.NewSession()
}
