package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridboard/go-gridboard/pkg/activity"
)

// Options configures the board Service. Every collaborator is provided via
// interface so applications can swap implementations without importing
// internal go-gridboard packages.
type Options struct {
	Store           DashboardStore
	Tags            TagService
	Registry        RendererRegistry
	ConfigValidator ConfigValidator
	Poller          *Poller
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Theme           ThemeProvider
	ActivityHooks   activity.Hooks
	ActivityConfig  activity.Config
	BlinkDuration   time.Duration
}

// Service orchestrates one live dashboard: loading and saving snapshots,
// widget lifecycle, layout changes, and polling bindings. All mutating
// operations are serialized on an internal mutex.
type Service struct {
	opts    Options
	emitter *activity.Emitter

	mu      sync.Mutex
	current *Dashboard
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	if opts.Theme == nil {
		opts.Theme = DefaultThemeProvider{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Poller == nil && opts.Tags != nil {
		opts.Poller, _ = NewPoller(PollerOptions{
			Tags:          opts.Tags,
			Hook:          opts.RefreshHook,
			Telemetry:     opts.Telemetry,
			BlinkDuration: opts.BlinkDuration,
		})
	}
	return &Service{
		opts:    opts,
		emitter: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// Registry exposes the renderer registry for transports and controllers.
func (s *Service) Registry() RendererRegistry { return s.opts.Registry }

// Poller exposes the poller, nil when no tag service is configured.
func (s *Service) Poller() *Poller { return s.opts.Poller }

// Theme exposes the theme provider.
func (s *Service) Theme() ThemeProvider { return s.opts.Theme }

// Load fetches a dashboard snapshot from the store and makes it current,
// rebinding every widget to the poller. When the fetch fails and a
// dashboard is already loaded, the stale snapshot stays current and is
// returned alongside a nil error; the failure is recorded via telemetry.
func (s *Service) Load(ctx context.Context, dashboardID string) (*Dashboard, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	d, err := store.FetchDashboard(ctx, dashboardID)
	if err != nil {
		s.mu.Lock()
		stale := s.current
		s.mu.Unlock()
		if stale != nil {
			s.recordTelemetry(ctx, "board.dashboard.load_stale", map[string]any{
				"dashboard_id": dashboardID,
				"error":        err.Error(),
			})
			return stale.Clone(), nil
		}
		return nil, fmt.Errorf("board: load dashboard %s: %w", dashboardID, err)
	}
	normalized := NormalizeDashboard(d)
	s.mu.Lock()
	s.current = normalized
	s.mu.Unlock()
	s.rebindAll(normalized)
	s.recordTelemetry(ctx, "board.dashboard.load", map[string]any{
		"dashboard_id": normalized.ID,
		"widgets":      len(normalized.Widgets),
	})
	return normalized.Clone(), nil
}

// Create asks the store for a fresh dashboard and makes it current.
func (s *Service) Create(ctx context.Context) (*Dashboard, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	d, err := store.CreateDashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("board: create dashboard: %w", err)
	}
	normalized := NormalizeDashboard(d)
	s.mu.Lock()
	s.current = normalized
	s.mu.Unlock()
	s.rebindAll(normalized)
	s.recordTelemetry(ctx, "board.dashboard.create", map[string]any{"dashboard_id": normalized.ID})
	s.emitActivity(ctx, "board.dashboard.create", "dashboard", normalized.ID, map[string]any{
		"name": normalized.Name,
	})
	return normalized.Clone(), nil
}

// Save persists the current dashboard as a whole snapshot. The store may
// return an updated copy (timestamps, server-assigned fields) which then
// replaces the current snapshot.
func (s *Service) Save(ctx context.Context) (*Dashboard, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, errNoDashboard
	}
	snapshot := s.current.Clone()
	s.mu.Unlock()

	saved, err := store.SaveDashboard(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("board: save dashboard %s: %w", snapshot.ID, err)
	}
	if saved == nil {
		saved = snapshot
	}
	normalized := NormalizeDashboard(saved)
	s.mu.Lock()
	s.current = normalized
	s.mu.Unlock()
	s.recordTelemetry(ctx, "board.dashboard.save", map[string]any{
		"dashboard_id": normalized.ID,
		"widgets":      len(normalized.Widgets),
	})
	s.emitActivity(ctx, "board.dashboard.save", "dashboard", normalized.ID, map[string]any{
		"widgets": len(normalized.Widgets),
	})
	return normalized.Clone(), nil
}

// AddWidgetRequest captures the data required to add a widget to the
// current dashboard. Type is required; everything else overrides the
// template defaults.
type AddWidgetRequest struct {
	Type        WidgetType
	Title       string
	TagID       string
	TagIDs      []string
	RefreshRate int
	Grid        *GridPos
	Thresholds  []Threshold
	StatusMap   StatusMap
	Config      map[string]any
}

// AddWidget instantiates the template for the requested type, applies the
// request overrides, and appends the widget to the current dashboard.
func (s *Service) AddWidget(ctx context.Context, req AddWidgetRequest) (Widget, error) {
	tpl, ok := s.opts.Registry.Template(req.Type)
	if !ok {
		return Widget{}, &WidgetError{
			Kind: KindUnknownWidgetType,
			Err:  fmt.Errorf("no template registered for type %q", req.Type),
		}
	}
	if err := s.opts.ConfigValidator.Validate(tpl, req.Config); err != nil {
		return Widget{}, err
	}

	w := tpl.Instantiate()
	if req.Title != "" {
		w.Title = req.Title
	}
	if req.TagID != "" {
		w.TagID = req.TagID
	}
	if len(req.TagIDs) > 0 {
		w.TagIDs = append([]string(nil), req.TagIDs...)
	}
	if req.RefreshRate > 0 {
		w.RefreshRate = req.RefreshRate
	}
	if req.Grid != nil {
		w.Grid = *req.Grid
	}
	if len(req.Thresholds) > 0 {
		w.Thresholds = append([]Threshold(nil), req.Thresholds...)
	}
	if len(req.StatusMap) > 0 {
		w.StatusMap = req.StatusMap
	}
	if req.Config != nil {
		w.Config = req.Config
	}
	w = NormalizeWidget(w)

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return Widget{}, errNoDashboard
	}
	s.current.Widgets = append(s.current.Widgets, w)
	s.current.UpdatedAt = time.Now().UTC()
	dashboardID := s.current.ID
	s.mu.Unlock()

	s.bindWidget(w)
	if err := s.opts.RefreshHook.TileUpdated(ctx, TileEvent{
		DashboardID: dashboardID,
		WidgetID:    w.ID,
		Reason:      "add",
	}); err != nil {
		return Widget{}, err
	}
	s.recordTelemetry(ctx, "board.widget.add", map[string]any{
		"dashboard_id": dashboardID,
		"widget_id":    w.ID,
		"type":         string(w.Type),
	})
	s.emitActivity(ctx, "board.widget.add", "widget", w.ID, map[string]any{
		"dashboard_id": dashboardID,
		"type":         string(w.Type),
	})
	return w, nil
}

// WidgetPatch carries a partial widget update. Nil fields are left alone;
// set fields replace the stored value wholesale.
type WidgetPatch struct {
	Title       *string
	TagID       *string
	TagIDs      *[]string
	RefreshRate *int
	Grid        *GridPos
	Thresholds  *[]Threshold
	StatusMap   *StatusMap
	Config      map[string]any
}

// UpdateWidget merges the patch onto the stored widget, re-normalizes it,
// and rebinds the poller so refresh rate and tag changes take effect
// immediately.
func (s *Service) UpdateWidget(ctx context.Context, widgetID string, patch WidgetPatch) (Widget, error) {
	if widgetID == "" {
		return Widget{}, errInvalidWidgetID
	}
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return Widget{}, errNoDashboard
	}
	idx := -1
	for i := range s.current.Widgets {
		if s.current.Widgets[i].ID == widgetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return Widget{}, fmt.Errorf("board: widget %s not found", widgetID)
	}
	w := s.current.Widgets[idx].Clone()
	s.mu.Unlock()

	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.TagID != nil {
		w.TagID = *patch.TagID
	}
	if patch.TagIDs != nil {
		w.TagIDs = append([]string(nil), (*patch.TagIDs)...)
	}
	if patch.RefreshRate != nil {
		w.RefreshRate = *patch.RefreshRate
	}
	if patch.Grid != nil {
		w.Grid = *patch.Grid
	}
	if patch.Thresholds != nil {
		w.Thresholds = append([]Threshold(nil), (*patch.Thresholds)...)
	}
	if patch.StatusMap != nil {
		w.StatusMap = *patch.StatusMap
	}
	if patch.Config != nil {
		if tpl, ok := s.opts.Registry.Template(w.Type); ok {
			if err := s.opts.ConfigValidator.Validate(tpl, patch.Config); err != nil {
				return Widget{}, err
			}
		}
		w.Config = patch.Config
	}
	w = NormalizeWidget(w)

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return Widget{}, errNoDashboard
	}
	replaced := false
	for i := range s.current.Widgets {
		if s.current.Widgets[i].ID == widgetID {
			s.current.Widgets[i] = w
			replaced = true
			break
		}
	}
	dashboardID := s.current.ID
	if replaced {
		s.current.UpdatedAt = time.Now().UTC()
	}
	s.mu.Unlock()
	if !replaced {
		return Widget{}, fmt.Errorf("board: widget %s not found", widgetID)
	}

	s.bindWidget(w)
	if err := s.opts.RefreshHook.TileUpdated(ctx, TileEvent{
		DashboardID: dashboardID,
		WidgetID:    w.ID,
		Reason:      "update",
	}); err != nil {
		return Widget{}, err
	}
	s.recordTelemetry(ctx, "board.widget.update", map[string]any{
		"dashboard_id": dashboardID,
		"widget_id":    w.ID,
	})
	s.emitActivity(ctx, "board.widget.update", "widget", w.ID, map[string]any{
		"dashboard_id": dashboardID,
	})
	return w, nil
}

// RemoveWidget drops the widget from the current dashboard and stops its
// polling.
func (s *Service) RemoveWidget(ctx context.Context, widgetID string) error {
	if widgetID == "" {
		return errInvalidWidgetID
	}
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return errNoDashboard
	}
	found := false
	widgets := s.current.Widgets[:0]
	for _, w := range s.current.Widgets {
		if w.ID == widgetID {
			found = true
			continue
		}
		widgets = append(widgets, w)
	}
	s.current.Widgets = widgets
	dashboardID := s.current.ID
	if found {
		s.current.UpdatedAt = time.Now().UTC()
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("board: widget %s not found", widgetID)
	}

	if s.opts.Poller != nil {
		s.opts.Poller.Unbind(widgetID)
	}
	if err := s.opts.RefreshHook.TileUpdated(ctx, TileEvent{
		DashboardID: dashboardID,
		WidgetID:    widgetID,
		Reason:      "remove",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "board.widget.remove", map[string]any{
		"dashboard_id": dashboardID,
		"widget_id":    widgetID,
	})
	s.emitActivity(ctx, "board.widget.remove", "widget", widgetID, map[string]any{
		"dashboard_id": dashboardID,
	})
	return nil
}

// ApplyLayout merges grid positions from the layout engine back onto the
// current dashboard. Rejected outside edit mode so view-mode drags can
// never mutate state.
func (s *Service) ApplyLayout(ctx context.Context, editMode bool, items []LayoutItem) error {
	if !editMode {
		return errNotEditMode
	}
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return errNoDashboard
	}
	updated, changed := ApplyLayoutChange(s.current, editMode, items)
	if changed {
		updated.UpdatedAt = time.Now().UTC()
		s.current = updated
	}
	dashboardID := s.current.ID
	s.mu.Unlock()

	if !changed {
		return nil
	}
	if err := s.opts.RefreshHook.TileUpdated(ctx, TileEvent{
		DashboardID: dashboardID,
		Reason:      "layout",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "board.layout.apply", map[string]any{
		"dashboard_id": dashboardID,
		"items":        len(items),
	})
	s.emitActivity(ctx, "board.layout.apply", "dashboard", dashboardID, map[string]any{
		"items": len(items),
	})
	return nil
}

// Layout produces layout items for the current dashboard.
func (s *Service) Layout(editMode bool) ([]LayoutItem, []LayoutDiagnostic) {
	s.mu.Lock()
	d := s.current
	s.mu.Unlock()
	return BuildLayout(d, editMode)
}

// Current returns a deep copy of the loaded dashboard, nil when nothing
// is loaded.
func (s *Service) Current() *Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current.Clone()
}

// Snapshot returns the latest poll snapshot for a widget.
func (s *Service) Snapshot(widgetID string) (Snapshot, bool) {
	if s.opts.Poller == nil {
		return Snapshot{}, false
	}
	return s.opts.Poller.Snapshot(widgetID)
}

// Seed populates an empty current dashboard with the starter widgets.
// Dashboards that already hold widgets are left alone.
func (s *Service) Seed(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return errNoDashboard
	}
	if len(s.current.Widgets) > 0 {
		s.mu.Unlock()
		return nil
	}
	seeds := DefaultSeedWidgets()
	s.current.Widgets = append(s.current.Widgets, seeds...)
	s.current.UpdatedAt = time.Now().UTC()
	dashboardID := s.current.ID
	s.mu.Unlock()

	for _, w := range seeds {
		s.bindWidget(w)
	}
	s.recordTelemetry(ctx, "board.dashboard.seed", map[string]any{
		"dashboard_id": dashboardID,
		"widgets":      len(seeds),
	})
	return nil
}

// RefreshWidget forces an immediate rebind, which triggers a fresh fetch
// outside the regular interval.
func (s *Service) RefreshWidget(ctx context.Context, widgetID string) error {
	if widgetID == "" {
		return errInvalidWidgetID
	}
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return errNoDashboard
	}
	w, ok := s.current.Widget(widgetID)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("board: widget %s not found", widgetID)
	}
	s.bindWidget(w)
	s.recordTelemetry(ctx, "board.widget.refresh", map[string]any{"widget_id": widgetID})
	return nil
}

// NotifyTileUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyTileUpdated(ctx context.Context, event TileEvent) error {
	if err := s.opts.RefreshHook.TileUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "board.tile.event", map[string]any{
		"dashboard_id": event.DashboardID,
		"widget_id":    event.WidgetID,
		"reason":       event.Reason,
	})
	return nil
}

// Close stops all polling.
func (s *Service) Close() {
	if s.opts.Poller != nil {
		s.opts.Poller.Close()
	}
}

func (s *Service) store() (DashboardStore, error) {
	if s.opts.Store == nil {
		return nil, errMissingStore
	}
	return s.opts.Store, nil
}

func (s *Service) rebindAll(d *Dashboard) {
	if s.opts.Poller == nil || d == nil {
		return
	}
	for _, w := range d.Widgets {
		if w.ID == "" {
			continue
		}
		_ = s.opts.Poller.Bind(w)
	}
}

func (s *Service) bindWidget(w Widget) {
	if s.opts.Poller == nil || w.ID == "" {
		return
	}
	_ = s.opts.Poller.Bind(w)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) emitActivity(ctx context.Context, verb, objectType, objectID string, metadata map[string]any) {
	if !s.emitter.Enabled() {
		return
	}
	meta := activityContextFrom(ctx)
	_ = s.emitter.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    meta.ActorID,
		UserID:     meta.UserID,
		TenantID:   meta.TenantID,
		ObjectType: objectType,
		ObjectID:   objectID,
		Metadata:   metadata,
	})
}
