package board

import (
	"context"
	"sync"
	"time"
)

// TagResult is one tag's outcome within a snapshot. Failures are isolated
// per tag so a table row can fail while its siblings still render.
type TagResult struct {
	TagID   string     `json:"tag_id"`
	Reading TagReading `json:"reading,omitempty"`
	Err     string     `json:"error,omitempty"`
}

// OK reports whether the tag fetch succeeded.
func (r TagResult) OK() bool { return r.Err == "" }

// Snapshot is the widget-local fetch state renderers consume. Loading is
// true only until the first successful value; later refreshes update in
// place so tiles never flicker back to a spinner.
type Snapshot struct {
	WidgetID     string      `json:"widget_id"`
	Generation   uint64      `json:"generation"`
	Results      []TagResult `json:"results,omitempty"`
	Loading      bool        `json:"loading"`
	NoDataSource bool        `json:"no_data_source,omitempty"`
	Trend        Trend       `json:"trend,omitempty"`
	Blink        bool        `json:"blink,omitempty"`
	At           time.Time   `json:"at"`
}

// Value returns the first successful reading's value.
func (s Snapshot) Value() (float64, bool) {
	for _, r := range s.Results {
		if r.OK() {
			return r.Reading.Value, true
		}
	}
	return 0, false
}

// Failed reports whether every bound tag failed on the last fetch.
func (s Snapshot) Failed() bool {
	if len(s.Results) == 0 {
		return false
	}
	for _, r := range s.Results {
		if r.OK() {
			return false
		}
	}
	return true
}

// PollerOptions configures a Poller. Tags is required; everything else has
// a safe default.
type PollerOptions struct {
	Tags          TagService
	Hook          RefreshHook
	Telemetry     Telemetry
	BlinkDuration time.Duration
}

// Poller owns the per-widget refresh timers. Guarantees:
//
//   - at most one active repeating timer per widget,
//   - rebinding cancels the previous timer before starting the next,
//   - results from a superseded binding are discarded via a generation
//     counter, never applied,
//   - Unbind/Close stop all fetching for good.
type Poller struct {
	tags      TagService
	hook      RefreshHook
	telemetry Telemetry
	blinker   *Blinker

	mu         sync.Mutex
	generation uint64
	bindings   map[string]*pollBinding
	snapshots  map[string]Snapshot
	prevValues map[string]float64
	closed     bool
}

type pollBinding struct {
	widgetID   string
	tagIDs     []string
	interval   time.Duration
	generation uint64
	kind       WidgetType
	statusMap  StatusMap
	cancel     context.CancelFunc
}

// NewPoller builds a poller.
func NewPoller(opts PollerOptions) (*Poller, error) {
	if opts.Tags == nil {
		return nil, errMissingTagService
	}
	hook := opts.Hook
	if hook == nil {
		hook = noopRefreshHook{}
	}
	return &Poller{
		tags:       opts.Tags,
		hook:       hook,
		telemetry:  normalizeTelemetry(opts.Telemetry),
		blinker:    NewBlinker(opts.BlinkDuration),
		bindings:   make(map[string]*pollBinding),
		snapshots:  make(map[string]Snapshot),
		prevValues: make(map[string]float64),
	}, nil
}

// Bind (re)binds a widget. Any previous timer for the widget is cancelled
// first, and in-flight fetches from the old binding can no longer land. A
// widget without a data source gets a NoDataSource snapshot and no timer.
func (p *Poller) Bind(w Widget) error {
	if w.ID == "" {
		return errInvalidWidgetID
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errPollerClosed
	}
	p.cancelLocked(w.ID)
	delete(p.prevValues, w.ID)

	tagIDs := w.BoundTags()
	p.generation++
	gen := p.generation
	if len(tagIDs) == 0 {
		snap := Snapshot{WidgetID: w.ID, Generation: gen, NoDataSource: true, At: time.Now()}
		p.snapshots[w.ID] = snap
		p.mu.Unlock()
		p.publish(context.Background(), snap)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &pollBinding{
		widgetID:   w.ID,
		tagIDs:     tagIDs,
		interval:   time.Duration(w.RefreshRate) * time.Millisecond,
		generation: gen,
		kind:       w.Type,
		statusMap:  w.StatusMap,
		cancel:     cancel,
	}
	p.bindings[w.ID] = b
	p.snapshots[w.ID] = Snapshot{WidgetID: w.ID, Generation: gen, Loading: true, At: time.Now()}
	p.mu.Unlock()

	go p.run(ctx, b)
	return nil
}

// Unbind stops the widget's timer and forgets its state. In-flight fetches
// resolve into the void: the generation no longer matches.
func (p *Poller) Unbind(widgetID string) {
	p.mu.Lock()
	p.cancelLocked(widgetID)
	delete(p.snapshots, widgetID)
	delete(p.prevValues, widgetID)
	p.mu.Unlock()
	p.blinker.Forget(widgetID)
}

// Close stops every timer.
func (p *Poller) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for id, b := range p.bindings {
		b.cancel()
		delete(p.bindings, id)
	}
}

// Snapshot returns the latest snapshot for a widget.
func (p *Poller) Snapshot(widgetID string) (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap, ok := p.snapshots[widgetID]
	return snap, ok
}

func (p *Poller) cancelLocked(widgetID string) {
	if b, ok := p.bindings[widgetID]; ok {
		b.cancel()
		delete(p.bindings, widgetID)
	}
}

func (p *Poller) run(ctx context.Context, b *pollBinding) {
	p.fetch(ctx, b)
	if b.interval <= 0 {
		return
	}
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx, b)
		}
	}
}

// fetch reads every bound tag concurrently so latency is bounded by the
// slowest tag, then applies the results if the binding is still current.
func (p *Poller) fetch(ctx context.Context, b *pollBinding) {
	results := make([]TagResult, len(b.tagIDs))
	var wg sync.WaitGroup
	for i, id := range b.tagIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			reading, err := p.tags.ReadTag(ctx, id)
			if err != nil {
				results[i] = TagResult{TagID: id, Err: err.Error()}
				return
			}
			results[i] = TagResult{TagID: id, Reading: reading}
		}(i, id)
	}
	wg.Wait()
	if ctx.Err() != nil {
		return
	}
	p.apply(ctx, b, results)
}

func (p *Poller) apply(ctx context.Context, b *pollBinding, results []TagResult) {
	p.mu.Lock()
	current, ok := p.bindings[b.widgetID]
	if !ok || current.generation != b.generation {
		// Stale fetch from a superseded binding; drop it.
		p.mu.Unlock()
		p.telemetry.Record(ctx, eventPollStaleDiscard, map[string]any{
			"widget_id":  b.widgetID,
			"generation": b.generation,
		})
		return
	}

	snap := Snapshot{
		WidgetID:   b.widgetID,
		Generation: b.generation,
		Results:    results,
		At:         time.Now(),
	}
	value, hasValue := snap.Value()
	if !hasValue {
		// Keep the loading state only while no success has ever landed.
		snap.Loading = p.snapshots[b.widgetID].Loading
	}
	if hasValue {
		if prev, seen := p.prevValues[b.widgetID]; seen {
			snap.Trend = ClassifyTrend(prev, value)
		}
		p.prevValues[b.widgetID] = value
		if b.kind == TypeStatus {
			// Blink is decided inside the same critical section as the
			// generation check so a rebind racing this apply can never see
			// a second, stale snapshot write.
			status := b.statusMap.LookupValue(value)
			snap.Blink = p.blinker.Observe(b.widgetID, status.Label)
		}
	}
	p.snapshots[b.widgetID] = snap
	p.mu.Unlock()

	if snap.Failed() {
		p.telemetry.Record(ctx, eventPollFetchFailed, map[string]any{
			"widget_id": b.widgetID,
			"tags":      len(results),
		})
	}
	p.publish(ctx, snap)
}

func (p *Poller) publish(ctx context.Context, snap Snapshot) {
	event := TileEvent{WidgetID: snap.WidgetID, Reason: "snapshot", Snapshot: &snap}
	if err := p.hook.TileUpdated(ctx, event); err != nil {
		p.telemetry.Record(ctx, eventPollHookError, map[string]any{
			"widget_id": snap.WidgetID,
			"error":     err.Error(),
		})
	}
}
