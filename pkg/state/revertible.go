package state

import "fmt"

// Revertible 可返回状态
//
// 构造时记住一个返回目标，Revert 等价于 ChangeState(目标)。
// 典型用法是调用方把自己作为返回目标传入，形成一层深的"返回地址"；
// 更深的栈需要应用自己逐层串起返回目标。
type Revertible struct {
	Base

	target State
}

// NewRevertible 创建带返回目标的可返回状态（供具体状态嵌入）
func NewRevertible(target State) Revertible {
	return Revertible{target: target}
}

// SetRevertTarget 设置返回目标
func (r *Revertible) SetRevertTarget(target State) {
	r.target = target
}

// RevertTarget 返回当前的返回目标
func (r *Revertible) RevertTarget() State {
	return r.target
}

// Revert 切换回返回目标
func (r *Revertible) Revert() error {
	if r.target == nil {
		return fmt.Errorf("%w: %s", ErrNoRevertTarget, nameOf(r.self))
	}
	return r.ChangeState(r.target)
}
