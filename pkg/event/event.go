// Package event 提供最小的事件源抽象
//
// 事件源只暴露一对注册/注销操作，状态机把它当作不透明的能力使用：
//   - Register(listener): 注册监听器
//   - Unregister(listener): 注销监听器
//
// Event 是具体的多播事件源实现，按注册顺序同步通知所有监听器。
package event

import "slices"

// Listener 事件监听器
//
// Go 的函数值不可比较，因此监听器以指针身份区分：
// 同一个 *Listener 重复注册只会生效一次。
type Listener[T any] struct {
	fn func(T)
}

// NewListener 用回调函数创建监听器
// fn 为 nil 时返回 nil（表示空的处理器槽位）
func NewListener[T any](fn func(T)) *Listener[T] {
	if fn == nil {
		return nil
	}
	return &Listener[T]{fn: fn}
}

// Invoke 调用监听器的回调
func (l *Listener[T]) Invoke(value T) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(value)
}

// Source 事件源能力
type Source[T any] interface {
	Register(l *Listener[T])
	Unregister(l *Listener[T])
}

// Event 多播事件
//
// 零值可直接使用。注册是幂等的，注销不存在的监听器是空操作。
// 非并发安全：只能在派发线程（游戏主循环）上使用。
type Event[T any] struct {
	listeners []*Listener[T]
}

// Register 注册监听器（重复注册为空操作）
func (e *Event[T]) Register(l *Listener[T]) {
	if e == nil || l == nil {
		return
	}
	if slices.Contains(e.listeners, l) {
		return
	}
	e.listeners = append(e.listeners, l)
}

// Unregister 注销监听器（不存在时为空操作）
func (e *Event[T]) Unregister(l *Listener[T]) {
	if e == nil || l == nil {
		return
	}
	if i := slices.Index(e.listeners, l); i >= 0 {
		e.listeners = slices.Delete(e.listeners, i, i+1)
	}
}

// Emit 按注册顺序通知所有监听器
//
// 通知前先拷贝监听器列表：回调里新注册的监听器从下一次通知开始生效；
// 回调里被注销的监听器在本次通知中不再被调用。
func (e *Event[T]) Emit(value T) {
	if e == nil || len(e.listeners) == 0 {
		return
	}
	snapshot := slices.Clone(e.listeners)
	for _, l := range snapshot {
		if !slices.Contains(e.listeners, l) {
			continue
		}
		l.Invoke(value)
	}
}

// Len 返回当前注册的监听器数量
func (e *Event[T]) Len() int {
	if e == nil {
		return 0
	}
	return len(e.listeners)
}

// Has 报告监听器是否已注册
func (e *Event[T]) Has(l *Listener[T]) bool {
	if e == nil || l == nil {
		return false
	}
	return slices.Contains(e.listeners, l)
}
