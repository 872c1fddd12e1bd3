package board

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// DefaultBlinkDuration is how long a status tile blinks after its resolved
// status changes.
const DefaultBlinkDuration = 2 * time.Second

// Lookup resolves the display style for a raw tag value. Misses return an
// "Unknown (<value>)" style instead of failing the tile.
func (m StatusMap) Lookup(raw string) StatusStyle {
	if style, ok := m[raw]; ok {
		return style
	}
	return StatusStyle{
		Label: fmt.Sprintf("Unknown (%s)", raw),
		Color: "gray",
	}
}

// LookupValue stringifies a numeric tag value before lookup. Integral
// values match integer keys ("2" rather than "2.000000").
func (m StatusMap) LookupValue(value float64) StatusStyle {
	return m.Lookup(formatStatusKey(value))
}

func formatStatusKey(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Blinker tracks time-bounded blink state per widget. A status change
// starts a blink that auto-clears after the configured duration; a further
// change while blinking restarts the timer instead of stacking.
type Blinker struct {
	duration time.Duration

	mu     sync.Mutex
	last   map[string]string
	timers map[string]*time.Timer
	active map[string]bool
}

// NewBlinker builds a tracker; duration <= 0 falls back to the default.
func NewBlinker(duration time.Duration) *Blinker {
	if duration <= 0 {
		duration = DefaultBlinkDuration
	}
	return &Blinker{
		duration: duration,
		last:     make(map[string]string),
		timers:   make(map[string]*time.Timer),
		active:   make(map[string]bool),
	}
}

// Observe records the latest resolved status for a widget and returns
// whether the tile should currently blink.
func (b *Blinker) Observe(widgetID, status string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	previous, seen := b.last[widgetID]
	b.last[widgetID] = status
	if !seen || previous == status {
		return b.active[widgetID]
	}
	b.active[widgetID] = true
	if timer, ok := b.timers[widgetID]; ok {
		timer.Stop()
	}
	b.timers[widgetID] = time.AfterFunc(b.duration, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.active[widgetID] = false
		delete(b.timers, widgetID)
	})
	return true
}

// Active reports whether a widget is currently blinking.
func (b *Blinker) Active(widgetID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active[widgetID]
}

// Forget drops all state for a widget (on removal/unmount).
func (b *Blinker) Forget(widgetID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if timer, ok := b.timers[widgetID]; ok {
		timer.Stop()
		delete(b.timers, widgetID)
	}
	delete(b.last, widgetID)
	delete(b.active, widgetID)
}
