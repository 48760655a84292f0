package state

import (
	"slices"
	"testing"

	"github.com/decker502/uistate/pkg/event"
)

// recorder 按顺序记录钩子调用
type recorder struct {
	calls []string
}

func (r *recorder) add(s string) {
	r.calls = append(r.calls, s)
}

// spySource 统计注册/注销次数的事件源，可选记录状态切换通知
type spySource struct {
	event.Event[int]

	registers   int
	unregisters int

	notifyRec *recorder
	changed   []State
}

func (s *spySource) Register(l *event.Listener[int]) {
	s.registers++
	s.Event.Register(l)
}

func (s *spySource) Unregister(l *event.Listener[int]) {
	s.unregisters++
	s.Event.Unregister(l)
}

func (s *spySource) OnStateChanged(next State) {
	s.changed = append(s.changed, next)
	if s.notifyRec != nil {
		s.notifyRec.add("notify:" + NameOf(next) + ":attached=" + boolString(s.Len() > 0))
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// hooks 测试状态和测试层共用的字段
type hooks struct {
	name    string
	rec     *recorder
	sources []*spySource

	produced    int
	hits        int
	activateErr error
}

func (h *hooks) StateName() string { return h.name }

func (h *hooks) subscriptions() []Subscription {
	h.produced++
	subs := make([]Subscription, 0, len(h.sources))
	for _, src := range h.sources {
		subs = append(subs, Subscribe[int](src, func(int) { h.hits++ }))
	}
	return subs
}

func (h *hooks) activate() error {
	h.rec.add(h.name + ".activate")
	return h.activateErr
}

func (h *hooks) deactivate() error {
	h.rec.add(h.name + ".deactivate")
	return nil
}

type testState struct {
	Base
	hooks
}

func (s *testState) Subscriptions() []Subscription { return s.subscriptions() }
func (s *testState) HandleActivateState() error    { return s.activate() }
func (s *testState) HandleDeactivateState() error  { return s.deactivate() }

type testLayer struct {
	Layer
	hooks
}

func (l *testLayer) Subscriptions() []Subscription { return l.subscriptions() }
func (l *testLayer) HandleActivateState() error    { return l.activate() }
func (l *testLayer) HandleDeactivateState() error  { return l.deactivate() }

type testRevertible struct {
	Revertible
	hooks
}

func (r *testRevertible) Subscriptions() []Subscription { return r.subscriptions() }
func (r *testRevertible) HandleActivateState() error    { return r.activate() }
func (r *testRevertible) HandleDeactivateState() error  { return r.deactivate() }

func newHooks(name string, rec *recorder, nsources int) hooks {
	h := hooks{name: name, rec: rec}
	for i := 0; i < nsources; i++ {
		h.sources = append(h.sources, &spySource{})
	}
	return h
}

func newTestState(name string, rec *recorder, nsources int) *testState {
	return &testState{hooks: newHooks(name, rec, nsources)}
}

func newTestLayer(name string, rec *recorder, nsources int) *testLayer {
	return &testLayer{hooks: newHooks(name, rec, nsources)}
}

// assertAttached 检查每个事件源上恰好注册了 want 个监听器
func assertAttached(t *testing.T, h *hooks, want int) {
	t.Helper()
	for i, src := range h.sources {
		if src.Len() != want {
			t.Errorf("%s source %d: got %d listeners, want %d", h.name, i, src.Len(), want)
		}
	}
}

func assertCalls(t *testing.T, rec *recorder, want ...string) {
	t.Helper()
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls:\n got  %v\n want %v", rec.calls, want)
	}
}
