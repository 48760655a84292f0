package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/uistate/pkg/event"
	"github.com/decker502/uistate/pkg/state"
)

// Dropdown 枚举选择控件
//
// 点击按钮循环切换到下一个选项，选项变化时触发 Changed。
// 点击到切换的绑定本身也是一个订阅（Subscription），
// 只在所属状态活动时才生效。
type Dropdown[E comparable] struct {
	Button *Button

	Changed event.Event[E]

	prefix  string
	options []Option[E]
	index   int
	cycle   state.Subscription
}

// NewDropdown 创建下拉框，selected 不在选项中时选中第一个
func NewDropdown[E comparable](prefix string, rect Rect, options []Option[E], selected E) *Dropdown[E] {
	d := &Dropdown[E]{
		Button:  NewButton("", rect),
		prefix:  prefix,
		options: options,
	}
	d.Select(selected)
	d.cycle = state.SubscribeFunc[*Button](&d.Button.Clicked, d.Next)
	return d
}

// Subscription 返回"点击切换选项"的订阅
func (d *Dropdown[E]) Subscription() state.Subscription {
	return d.cycle
}

// Selected 返回当前选项的值
func (d *Dropdown[E]) Selected() E {
	if len(d.options) == 0 {
		var zero E
		return zero
	}
	return d.options[d.index].Value
}

// Select 选中指定值（不触发 Changed），值不存在时返回 false
func (d *Dropdown[E]) Select(v E) bool {
	for i, opt := range d.options {
		if opt.Value == v {
			d.index = i
			d.refreshLabel()
			return true
		}
	}
	d.index = 0
	d.refreshLabel()
	return false
}

// Next 切换到下一个选项并触发 Changed
func (d *Dropdown[E]) Next() {
	if len(d.options) == 0 {
		return
	}
	d.index = (d.index + 1) % len(d.options)
	d.refreshLabel()
	d.Changed.Emit(d.Selected())
}

// Update 转发指针输入给按钮
func (d *Dropdown[E]) Update(p Pointer) {
	d.Button.Update(p)
}

// Draw 绘制
func (d *Dropdown[E]) Draw(screen *ebiten.Image) {
	d.Button.Draw(screen)
}

func (d *Dropdown[E]) refreshLabel() {
	if len(d.options) == 0 {
		d.Button.Label = d.prefix
		return
	}
	d.Button.Label = d.prefix + d.options[d.index].Label
}

// BindDropdown 返回"点击切换 + 选项变化处理"的组合订阅
func BindDropdown[E comparable](d *Dropdown[E], onChange func(E)) state.Subscription {
	return state.Compose(d.cycle, state.Subscribe[E](&d.Changed, onChange))
}
