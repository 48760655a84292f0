// Package state 实现基于事件订阅的状态机模式
//
// 每个状态持有一组事件订阅，状态切换时自动挂接/摘除：
//   - ActivateAsRoot: 激活第一个状态（没有需要拆除的旧状态）
//   - ChangeState: 拆除当前状态及其所有叠加层，再激活新状态
//   - LayerNewState: 在活动状态上叠加一层，不影响底层状态的订阅
//   - Revertible: 记住一个返回目标，Revert 时切换回去
//
// 具体状态通过嵌入 Base（或 Layer / Revertible）实现 State 接口，
// 并按需覆盖 Subscriptions / HandleActivateState / HandleDeactivateState。
//
// 所有操作都应在派发事件的线程（游戏主循环）上调用，内部不加锁。
// 钩子返回的错误原样向上传播，不做回滚：切换失败后状态机可能只完成了一部分。
package state

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"slices"
	"strings"
)

var (
	// ErrInvalidTransition 非法的状态切换（从非活动状态切换、切换到已活动状态等）
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrAlreadyLayered 叠加层已经叠加在某个状态上
	ErrAlreadyLayered = errors.New("layer already layered")
	// ErrNoRevertTarget 可返回状态没有设置返回目标
	ErrNoRevertTarget = errors.New("no revert target")
)

// Phase 状态实例的生命周期阶段
type Phase int

const (
	// PhaseConstructed 已构造，尚未激活
	PhaseConstructed Phase = iota
	// PhaseActive 活动中，没有叠加层
	PhaseActive
	// PhaseActiveLayered 活动中，至少有一个活动叠加层
	PhaseActiveLayered
	// PhaseRetired 已作为 ChangeState 的源状态被拆除
	PhaseRetired
)

func (p Phase) String() string {
	switch p {
	case PhaseConstructed:
		return "Constructed"
	case PhaseActive:
		return "Active"
	case PhaseActiveLayered:
		return "ActiveLayered"
	case PhaseRetired:
		return "Retired"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State 状态接口
//
// 只有嵌入了 Base 的类型才能实现此接口。
type State interface {
	Producer

	// HandleActivateState 激活钩子，在订阅挂接之前调用
	HandleActivateState() error
	// HandleDeactivateState 停用钩子，在订阅摘除之前调用
	HandleDeactivateState() error

	core() *Base
}

// ChangeListener 事件源可选实现的能力：状态切换通知
//
// 如果新状态的某个订阅绑定在实现了此接口的事件源上，ChangeState 会在
// 新状态的激活钩子之后、订阅挂接之前调用 OnStateChanged（每个事件源一次）。
type ChangeListener interface {
	OnStateChanged(next State)
}

// LayerTerminatedHandler 状态可选实现的钩子：叠加层终止后回调
type LayerTerminatedHandler interface {
	HandleLayerTerminated(layer LayerState)
}

// Base 状态基础实现，具体状态嵌入它
type Base struct {
	manager Manager
	self    State
	layer   *Layer // 当此 Base 属于一个叠加层时非 nil
	phase   Phase  // 只记录 Constructed / Active / Retired
	layers  []LayerState
	exiting bool // exit 正在终止叠加层
}

func (b *Base) core() *Base { return b }

// Subscriptions 默认没有订阅
func (b *Base) Subscriptions() []Subscription { return nil }

// HandleActivateState 默认空实现
func (b *Base) HandleActivateState() error { return nil }

// HandleDeactivateState 默认空实现
func (b *Base) HandleDeactivateState() error { return nil }

// Phase 返回当前生命周期阶段
func (b *Base) Phase() Phase {
	if b.phase == PhaseActive && len(b.layers) > 0 {
		return PhaseActiveLayered
	}
	return b.phase
}

// IsActive 报告状态的订阅当前是否已挂接
func (b *Base) IsActive() bool {
	return b.phase == PhaseActive
}

// Layers 返回叠加在此状态上的层（包括尚未激活的预注册层）
func (b *Base) Layers() []LayerState {
	return slices.Clone(b.layers)
}

// bind 记录嵌入 Base 的外层状态，钩子和订阅生产者都通过它分派
func bind(s State) *Base {
	b := s.core()
	if b.self == nil {
		b.self = s
		b.manager.producer = s
	}
	return b
}

// SubscriptionsOf 返回状态缓存的订阅列表（首次调用时构建）
func SubscriptionsOf(s State) []Subscription {
	return bind(s).manager.SubscriptionList()
}

// ActivateAsRoot 激活状态机的初始状态
//
// 顺序：激活钩子 -> 挂接全部订阅 -> 激活预注册的叠加层。
// 每个状态机实例只应调用一次。
func ActivateAsRoot(s State) error {
	if s == nil {
		return fmt.Errorf("%w: nil root state", ErrInvalidTransition)
	}
	b := bind(s)
	if b.phase == PhaseActive {
		return fmt.Errorf("%w: %s is already active", ErrInvalidTransition, nameOf(s))
	}
	if b.layer != nil && b.layer.owner != nil {
		return fmt.Errorf("%w: %s is a layer of %s", ErrInvalidTransition, nameOf(s), nameOf(b.layer.owner.self))
	}

	log.Printf("[StateMachine] Activate root state: %s", nameOf(s))
	return b.enter(nil)
}

// ChangeState 从当前（接收者）状态切换到 next
//
// 顺序：
//  1. 终止接收者上的每个活动叠加层
//  2. 接收者的停用钩子
//  3. 摘除接收者的全部订阅，接收者进入 Retired
//  4. next 的激活钩子，随后通知 ChangeListener 事件源
//  5. 挂接 next 的全部订阅
//  6. 激活预注册在 next 上的叠加层
//
// 任何钩子返回错误都立即返回，不回滚。
func (b *Base) ChangeState(next State) error {
	if b.self == nil || b.phase != PhaseActive {
		return fmt.Errorf("%w: source state is not active", ErrInvalidTransition)
	}
	if b.layer != nil && b.layer.owner != nil {
		return fmt.Errorf("%w: layer %s must be terminated, not changed", ErrInvalidTransition, nameOf(b.self))
	}
	if next == nil {
		return fmt.Errorf("%w: nil target state", ErrInvalidTransition)
	}
	nb := bind(next)
	if nb == b || nb.phase == PhaseActive {
		return fmt.Errorf("%w: target %s is already active", ErrInvalidTransition, nameOf(next))
	}
	if nb.layer != nil && nb.layer.owner != nil {
		return fmt.Errorf("%w: target %s is a layer of %s", ErrInvalidTransition, nameOf(next), nameOf(nb.layer.owner.self))
	}

	log.Printf("[StateMachine] Change state: %s -> %s", nameOf(b.self), nameOf(next))

	if err := b.exit(); err != nil {
		return err
	}
	return nb.enter(nb.notifyChangeListeners)
}

// LayerNewState 在此状态上叠加一层
//
// 此状态活动时：立即调用层的激活钩子并挂接其订阅，然后加入层集合；
// 此状态自己的订阅不受影响。
// 此状态未活动时：只预注册，等此状态被激活时再激活该层。
func (b *Base) LayerNewState(l LayerState) error {
	if l == nil {
		return fmt.Errorf("%w: nil layer", ErrInvalidTransition)
	}
	lc := bindLayer(l)
	if lc.owner != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyLayered, nameOf(l))
	}
	if &lc.Base == b {
		return fmt.Errorf("%w: %s cannot be layered on itself", ErrInvalidTransition, nameOf(l))
	}
	if lc.Base.phase == PhaseActive {
		return fmt.Errorf("%w: layer %s is already active", ErrInvalidTransition, nameOf(l))
	}

	if b.phase != PhaseActive {
		lc.owner = b
		b.layers = append(b.layers, l)
		return nil
	}

	log.Printf("[StateMachine] Layer %s on %s", nameOf(l), nameOf(b.self))

	if err := lc.Base.enter(nil); err != nil {
		return err
	}
	lc.owner = b
	b.layers = append(b.layers, l)
	return nil
}

// NotifyLayerTerminated 通知此状态某个叠加层已结束，把它从层集合中移除
//
// 如果 l 仍是此状态上的活动层，先终止它（停用钩子、摘除订阅），
// 不会留下仍然挂接却不受管理的层。l 不在层集合中时为空操作。
func (b *Base) NotifyLayerTerminated(l LayerState) error {
	if l == nil {
		return nil
	}
	lc := l.layerCore()
	if lc.owner == b && lc.Base.phase == PhaseActive {
		return l.Terminate()
	}
	if lc.owner == b {
		lc.owner = nil
	}
	b.removeLayer(l)
	return nil
}

// removeLayer 从层集合中移除 l，此状态活动且不在拆除过程中时调用 LayerTerminatedHandler
func (b *Base) removeLayer(l LayerState) {
	i := slices.IndexFunc(b.layers, func(x LayerState) bool { return x == l })
	if i < 0 {
		return
	}
	b.layers = slices.Delete(b.layers, i, i+1)

	if h, ok := b.self.(LayerTerminatedHandler); ok && b.phase == PhaseActive && !b.exiting {
		h.HandleLayerTerminated(l)
	}
}

// enter 激活钩子 -> (通知) -> 挂接订阅 -> 激活预注册层
func (b *Base) enter(notify func()) error {
	if err := b.self.HandleActivateState(); err != nil {
		return err
	}
	if notify != nil {
		notify()
	}
	b.manager.AttachAll()
	b.phase = PhaseActive

	for _, l := range slices.Clone(b.layers) {
		lc := l.layerCore()
		if lc.Base.phase == PhaseActive {
			continue
		}
		if err := lc.Base.enter(nil); err != nil {
			return err
		}
	}
	return nil
}

// exit 终止所有叠加层 -> 停用钩子 -> 摘除订阅
// 拆除期间不调用 LayerTerminatedHandler
func (b *Base) exit() error {
	b.exiting = true
	defer func() { b.exiting = false }()

	for _, l := range slices.Clone(b.layers) {
		if err := l.Terminate(); err != nil {
			return err
		}
	}
	if err := b.self.HandleDeactivateState(); err != nil {
		return err
	}
	b.manager.DetachAll()
	b.phase = PhaseRetired
	return nil
}

func (b *Base) notifyChangeListeners() {
	var notified []ChangeListener
	for _, src := range eventSources(b.manager.SubscriptionList()) {
		cl, ok := src.(ChangeListener)
		if !ok {
			continue
		}
		if reflect.TypeOf(cl).Comparable() {
			if slices.Contains(notified, cl) {
				continue
			}
			notified = append(notified, cl)
		}
		cl.OnStateChanged(b.self)
	}
}

// Namer 状态可选实现，用于日志中的状态名
type Namer interface {
	StateName() string
}

// NameOf 返回状态的显示名
func NameOf(s State) string {
	return nameOf(s)
}

func nameOf(s any) string {
	if s == nil {
		return "<nil>"
	}
	if n, ok := s.(Namer); ok {
		return n.StateName()
	}
	name := fmt.Sprintf("%T", s)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
