package state

import "log"

// LayerState 叠加层状态接口
type LayerState interface {
	State
	Terminate() error

	layerCore() *Layer
}

// Layer 叠加层基础实现
//
// 叠加层可以覆盖在活动状态之上而不停用它，也可以独立终止。
// owner 只是非拥有的反向引用，用于终止时通知底层状态移除自己。
type Layer struct {
	Base

	owner *Base
	lself LayerState
}

func (l *Layer) layerCore() *Layer { return l }

// Owner 返回此层叠加在其上的状态，未叠加时返回 nil
func (l *Layer) Owner() State {
	if l.owner == nil {
		return nil
	}
	return l.owner.self
}

func bindLayer(l LayerState) *Layer {
	lc := l.layerCore()
	bind(l)
	lc.lself = l
	lc.Base.layer = lc
	return lc
}

// Terminate 终止此层
//
// 顺序：终止嵌套层 -> 停用钩子 -> 摘除订阅 -> 通知 owner 移除。
// 对非活动层再次调用是空操作；预注册但尚未激活的层只会从 owner 中移除。
func (l *Layer) Terminate() error {
	if l.Base.phase != PhaseActive {
		l.detachFromOwner()
		return nil
	}

	log.Printf("[StateMachine] Terminate layer: %s", nameOf(l.lself))

	if err := l.Base.exit(); err != nil {
		return err
	}
	l.detachFromOwner()
	return nil
}

func (l *Layer) detachFromOwner() {
	owner := l.owner
	if owner == nil {
		return
	}
	l.owner = nil
	owner.removeLayer(l.lself)
}
