package gorouter

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"testing"

	router "github.com/goliatone/go-router"

	board "github.com/gridboard/go-gridboard/components/board"
	"github.com/gridboard/go-gridboard/components/board/commands"
)

func TestRegisterValidatesConfig(t *testing.T) {
	err := Register(Config[struct{}]{})
	if err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestRegisterHTMLRoute(t *testing.T) {
	mock := newMockRouter()
	service := board.NewService(board.Options{
		Store: &stubStore{dashboard: &board.Dashboard{
			ID:   "dash-1",
			Name: "Plant Floor",
			Widgets: []board.Widget{
				{ID: "w1", Type: board.TypeNumeric, TagID: "plant.line1.pressure"},
			},
		}},
	})
	if _, err := service.Load(context.Background(), "dash-1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	renderer := &stubRenderer{}
	controller := board.NewController(board.ControllerOptions{
		Service:  service,
		Renderer: renderer,
	})

	cfg := Config[struct{}]{
		Router:     mock,
		Controller: controller,
		API:        noopExecutor{},
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	handlerKey := "GET:/board/dashboard"
	h, ok := mock.routes[handlerKey]
	if !ok {
		t.Fatalf("expected dashboard route to be registered")
	}

	ctx := newMockContext()
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(ctx.body) == 0 {
		t.Fatalf("expected response body")
	}
	if renderer.calls == 0 {
		t.Fatalf("renderer not invoked")
	}
}

func TestRegisterLayoutRoute(t *testing.T) {
	mock := newMockRouter()
	service := board.NewService(board.Options{
		Store: &stubStore{dashboard: &board.Dashboard{
			ID: "dash-1",
			Widgets: []board.Widget{
				{ID: "w1", Type: board.TypeGauge},
			},
		}},
	})
	if _, err := service.Load(context.Background(), "dash-1"); err != nil {
		t.Fatalf("load: %v", err)
	}
	controller := board.NewController(board.ControllerOptions{Service: service})

	if err := Register(Config[struct{}]{Router: mock, Controller: controller}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["GET:/board/dashboard/_layout"]
	if !ok {
		t.Fatalf("expected layout route to be registered")
	}
	ctx := newMockContext()
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var payload board.LayoutPayload
	if err := json.Unmarshal(ctx.body, &payload); err != nil {
		t.Fatalf("unmarshal layout: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].I != "w1" {
		t.Fatalf("unexpected layout payload: %+v", payload)
	}
}

func TestRegisterRemoveRouteStatus(t *testing.T) {
	mock := newMockRouter()
	service := board.NewService(board.Options{
		Store: &stubStore{dashboard: &board.Dashboard{ID: "dash-1"}},
	})
	controller := board.NewController(board.ControllerOptions{Service: service})

	cfg := Config[struct{}]{
		Router:     mock,
		Controller: controller,
		API:        noopExecutor{},
	}
	if err := Register(cfg); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	h, ok := mock.routes["DELETE:/board/dashboard/widgets/:id"]
	if !ok {
		t.Fatalf("expected widget delete route to be registered")
	}
	ctx := newMockContext()
	ctx.params["id"] = "w1"
	if err := h(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	// Responses with bodies must not use 204.
	if ctx.status != 200 {
		t.Fatalf("expected 200, got %d", ctx.status)
	}
	var payload map[string]string
	if err := json.Unmarshal(ctx.body, &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if payload["status"] != "removed" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

// --- Test helpers ---

type mockRouter struct {
	prefix string
	routes map[string]router.HandlerFunc
	ws     map[string]func(router.WebSocketContext) error
}

func newMockRouter() *mockRouter {
	return &mockRouter{
		routes: map[string]router.HandlerFunc{},
		ws:     map[string]func(router.WebSocketContext) error{},
	}
}

func (m *mockRouter) Group(prefix string) router.Router[struct{}] {
	return &mockRouter{
		prefix: m.prefix + prefix,
		routes: m.routes,
		ws:     m.ws,
	}
}

func (m *mockRouter) record(method, path string, handler router.HandlerFunc) {
	full := m.prefix + path
	m.routes[method+":"+full] = handler
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.GET), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.POST), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.DELETE), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo {
	full := m.prefix + path
	m.ws[full] = handler
	return mockRouteInfo{}
}

func (m *mockRouter) Handle(method router.HTTPMethod, path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(method), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Mount(prefix string) router.Router[struct{}] { return m.Group(prefix) }

func (m *mockRouter) WithGroup(path string, cb func(r router.Router[struct{}])) router.Router[struct{}] {
	cb(m.Group(path))
	return m
}

func (m *mockRouter) Use(mw ...router.MiddlewareFunc) router.Router[struct{}] { return m }

func (m *mockRouter) Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.PUT), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Patch(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.PATCH), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Head(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.record(string(router.HEAD), path, handler)
	return mockRouteInfo{}
}

func (m *mockRouter) Static(prefix, root string, config ...router.Static) router.Router[struct{}] {
	return m
}

func (m *mockRouter) Routes() []router.RouteDefinition                 { return nil }
func (m *mockRouter) ValidateRoutes() []error                          { return nil }
func (m *mockRouter) PrintRoutes()                                     {}
func (m *mockRouter) WithLogger(router.Logger) router.Router[struct{}] { return m }

type mockRouteInfo struct{}

func (mockRouteInfo) SetName(string) router.RouteInfo        { return mockRouteInfo{} }
func (mockRouteInfo) SetDescription(string) router.RouteInfo { return mockRouteInfo{} }
func (mockRouteInfo) SetSummary(string) router.RouteInfo     { return mockRouteInfo{} }
func (mockRouteInfo) AddTags(...string) router.RouteInfo     { return mockRouteInfo{} }
func (mockRouteInfo) AddParameter(name, in string, required bool, schema map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}
func (mockRouteInfo) SetRequestBody(desc string, required bool, content map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}
func (mockRouteInfo) AddResponse(code int, desc string, content map[string]any) router.RouteInfo {
	return mockRouteInfo{}
}

type mockContext struct {
	ctx     context.Context
	headers map[string]string
	body    []byte
	locals  map[any]any
	params  map[string]string
	query   map[string]string
	status  int
}

func newMockContext() *mockContext {
	return &mockContext{
		ctx:     context.Background(),
		headers: map[string]string{},
		locals:  map[any]any{},
		params:  map[string]string{},
		query:   map[string]string{},
	}
}

func (m *mockContext) Context() context.Context {
	return m.ctx
}

func (m *mockContext) SetHeader(k, v string) router.Context {
	m.headers[k] = v
	return m
}

func (m *mockContext) Send(b []byte) error {
	m.body = append([]byte{}, b...)
	return nil
}

func (m *mockContext) JSON(code int, v any) error {
	m.status = code
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.body = data
	return nil
}

func (m *mockContext) Body() []byte { return m.body }

func (m *mockContext) Param(name string, defaultValue ...string) string {
	if v, ok := m.params[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Query(name string, defaultValue ...string) string {
	if v, ok := m.query[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Locals(key any, value ...any) any {
	if len(value) == 0 {
		return m.locals[key]
	}
	m.locals[key] = value[0]
	return value[0]
}

func (m *mockContext) Method() string                             { return "" }
func (m *mockContext) Path() string                               { return "" }
func (m *mockContext) ParamsInt(key string, defaultValue int) int { return defaultValue }
func (m *mockContext) QueryValues(name string) []string           { return nil }
func (m *mockContext) QueryInt(name string, defaultValue int) int { return defaultValue }
func (m *mockContext) Queries() map[string]string                 { return m.query }

func (m *mockContext) LocalsMerge(key any, value map[string]any) map[string]any { return value }

func (m *mockContext) Render(name string, bind any, layouts ...string) error { return nil }

func (m *mockContext) Cookie(cookie *router.Cookie) {}
func (m *mockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}
func (m *mockContext) CookieParser(out any) error                    { return nil }
func (m *mockContext) Redirect(location string, status ...int) error { return nil }
func (m *mockContext) RedirectToRoute(routeName string, params router.ViewContext, status ...int) error {
	return nil
}
func (m *mockContext) RedirectBack(fallback string, status ...int) error { return nil }

func (m *mockContext) Header(string) string { return "" }
func (m *mockContext) Referer() string      { return "" }
func (m *mockContext) OriginalURL() string  { return "" }
func (m *mockContext) IP() string           { return "" }

func (m *mockContext) FormFile(key string) (*multipart.FileHeader, error) { return nil, nil }
func (m *mockContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (m *mockContext) Status(code int) router.Context {
	m.status = code
	return m
}
func (m *mockContext) SendString(body string) error { return m.Send([]byte(body)) }
func (m *mockContext) SendStatus(code int) error {
	m.status = code
	return nil
}
func (m *mockContext) SendStream(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return m.Send(data)
}
func (m *mockContext) NoContent(code int) error {
	m.status = code
	return nil
}

func (m *mockContext) Set(key string, value any) { m.locals[key] = value }
func (m *mockContext) Get(key string, def any) any {
	if v, ok := m.locals[key]; ok {
		return v
	}
	return def
}
func (m *mockContext) GetString(key string, def string) string {
	if v, ok := m.locals[key].(string); ok {
		return v
	}
	return def
}
func (m *mockContext) GetInt(key string, def int) int {
	if v, ok := m.locals[key].(int); ok {
		return v
	}
	return def
}
func (m *mockContext) GetBool(key string, def bool) bool {
	if v, ok := m.locals[key].(bool); ok {
		return v
	}
	return def
}

func (m *mockContext) Bind(v any) error               { return json.Unmarshal(m.body, v) }
func (m *mockContext) SetContext(ctx context.Context) { m.ctx = ctx }
func (m *mockContext) Next() error                    { return nil }
func (m *mockContext) RouteName() string              { return "" }
func (m *mockContext) RouteParams() map[string]string { return m.params }

type stubStore struct {
	dashboard *board.Dashboard
}

func (s *stubStore) FetchDashboard(context.Context, string) (*board.Dashboard, error) {
	return s.dashboard.Clone(), nil
}

func (s *stubStore) SaveDashboard(_ context.Context, d *board.Dashboard) (*board.Dashboard, error) {
	s.dashboard = d.Clone()
	return s.dashboard.Clone(), nil
}

func (s *stubStore) CreateDashboard(context.Context) (*board.Dashboard, error) {
	return &board.Dashboard{ID: "dash-new"}, nil
}

type stubRenderer struct {
	calls int
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.calls++
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("ok"))
	}
	return "ok", nil
}

type noopExecutor struct{}

func (noopExecutor) Add(context.Context, commands.AddWidgetInput) error         { return nil }
func (noopExecutor) Remove(context.Context, commands.RemoveWidgetInput) error   { return nil }
func (noopExecutor) Update(context.Context, commands.UpdateWidgetInput) error   { return nil }
func (noopExecutor) Layout(context.Context, commands.ApplyLayoutInput) error    { return nil }
func (noopExecutor) Save(context.Context, commands.SaveDashboardInput) error    { return nil }
func (noopExecutor) Refresh(context.Context, commands.RefreshWidgetInput) error { return nil }
