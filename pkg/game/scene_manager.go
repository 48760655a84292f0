package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/uistate/pkg/event"
	"github.com/decker502/uistate/pkg/state"
)

// SceneManager 把游戏主循环的每一帧变成事件
//
// SceneManager 本身是 Tick 事件源：活动状态订阅它来接收每帧更新，
// 订阅 Canvas 来绘制自己。状态被拆除后订阅被摘除，自然就不再更新和绘制，
// 因此不需要 SwitchTo 之类的显式切换。
//
// 它同时实现 state.ChangeListener：订阅了它的状态被切换进来时，
// 记录为当前状态。
type SceneManager struct {
	ticks  event.Event[Tick]
	canvas event.Event[*ebiten.Image]

	currentState state.State
	changes      int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active state; use Start to activate the root state.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// Register 实现 event.Source[Tick]
func (sm *SceneManager) Register(l *event.Listener[Tick]) {
	sm.ticks.Register(l)
}

// Unregister 实现 event.Source[Tick]
func (sm *SceneManager) Unregister(l *event.Listener[Tick]) {
	sm.ticks.Unregister(l)
}

// Canvas 返回绘制事件源
func (sm *SceneManager) Canvas() *event.Event[*ebiten.Image] {
	return &sm.canvas
}

// Start 激活根状态
func (sm *SceneManager) Start(root state.State) error {
	if err := state.ActivateAsRoot(root); err != nil {
		return err
	}
	sm.currentState = root
	log.Printf("[SceneManager] Started with root state: %s", state.NameOf(root))
	return nil
}

// OnStateChanged 实现 state.ChangeListener
func (sm *SceneManager) OnStateChanged(next state.State) {
	sm.currentState = next
	sm.changes++
	log.Printf("[SceneManager] Current state: %s", state.NameOf(next))
}

// GetCurrentState 返回当前活动的状态
//
// 用于游戏关闭时检查当前状态是否需要保存。
func (sm *SceneManager) GetCurrentState() state.State {
	return sm.currentState
}

// Changes 返回记录到的状态切换次数
func (sm *SceneManager) Changes() int {
	return sm.changes
}

// Update 向所有订阅者派发一帧更新
func (sm *SceneManager) Update(tick Tick) {
	sm.ticks.Emit(tick)
}

// Draw 向所有订阅者派发绘制
// 订阅顺序即绘制顺序：叠加层在底层状态之后挂接，因此画在上面
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	sm.canvas.Emit(screen)
}
