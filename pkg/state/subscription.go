package state

import "github.com/decker502/uistate/pkg/event"

// Subscription 一个可整体挂接/摘除的 (事件源, 处理器) 绑定
type Subscription interface {
	Attach()
	Detach()
}

// sourced 可选接口：暴露订阅所绑定的事件源（用于状态变更通知）
type sourced interface {
	EventSource() any
}

// Binding 把处理器绑定到一个事件源
//
// 构造后不可变。事件源或处理器缺失时 Attach/Detach 为空操作，
// 这样组合订阅可以留出可选的事件槽位。
type Binding[T any] struct {
	source   event.Source[T]
	listener *event.Listener[T]
}

// Subscribe 创建一个订阅
//
// 监听器在这里创建一次并保存下来，之后的每次 Attach/Detach
// 都使用同一个监听器，保证能被正确注销。
func Subscribe[T any](source event.Source[T], handler func(T)) *Binding[T] {
	return &Binding[T]{
		source:   source,
		listener: event.NewListener(handler),
	}
}

// SubscribeFunc 为不关心事件参数的处理器创建订阅
func SubscribeFunc[T any](source event.Source[T], handler func()) *Binding[T] {
	if handler == nil {
		return Subscribe[T](source, nil)
	}
	return Subscribe(source, func(T) { handler() })
}

// Attach 注册处理器
func (b *Binding[T]) Attach() {
	if b.missing() {
		return
	}
	b.source.Register(b.listener)
}

// Detach 注销处理器
func (b *Binding[T]) Detach() {
	if b.missing() {
		return
	}
	b.source.Unregister(b.listener)
}

// EventSource 返回绑定的事件源（可能为 nil）
func (b *Binding[T]) EventSource() any {
	if b.source == nil {
		return nil
	}
	return b.source
}

// Listener 返回绑定的监听器
func (b *Binding[T]) Listener() *event.Listener[T] {
	return b.listener
}

func (b *Binding[T]) missing() bool {
	return b == nil || b.source == nil || b.listener == nil
}

// Composite 组合订阅，按顺序挂接/摘除其中每一项
//
// 其中的 nil 项会被跳过。
type Composite []Subscription

// Compose 创建组合订阅
func Compose(subs ...Subscription) Composite {
	return Composite(subs)
}

// Attach 按顺序挂接
func (c Composite) Attach() {
	for _, s := range c {
		if s != nil {
			s.Attach()
		}
	}
}

// Detach 按顺序摘除
func (c Composite) Detach() {
	for _, s := range c {
		if s != nil {
			s.Detach()
		}
	}
}

// eventSources 收集订阅绑定的所有事件源（展开组合订阅）
func eventSources(subs []Subscription) []any {
	var out []any
	for _, s := range subs {
		switch v := s.(type) {
		case Composite:
			out = append(out, eventSources(v)...)
		case sourced:
			if src := v.EventSource(); src != nil {
				out = append(out, src)
			}
		}
	}
	return out
}
