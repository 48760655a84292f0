package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/uistate/pkg/event"
	"github.com/decker502/uistate/pkg/state"
)

var (
	buttonNormalColor   = color.RGBA{R: 70, G: 90, B: 60, A: 255}
	buttonHoverColor    = color.RGBA{R: 100, G: 130, B: 80, A: 255}
	buttonDisabledColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

// Button 按钮控件
//
// Clicked 和 HoverChanged 是事件源，按钮只负责命中检测和触发事件，
// 点击后做什么由订阅它的状态决定。
type Button struct {
	Label   string
	Rect    Rect
	Enabled bool

	Clicked      event.Event[*Button]
	HoverChanged event.Event[bool]

	hovered bool
}

// NewButton 创建启用状态的按钮
func NewButton(label string, rect Rect) *Button {
	return &Button{
		Label:   label,
		Rect:    rect,
		Enabled: true,
	}
}

// Hovered 报告指针是否在按钮上
func (b *Button) Hovered() bool {
	return b.hovered
}

// Update 根据本帧的指针输入更新按钮并触发事件
// 禁用的按钮不响应点击，但仍然跟踪悬停
func (b *Button) Update(p Pointer) {
	inside := b.Rect.Contains(p.X, p.Y)
	if inside != b.hovered {
		b.hovered = inside
		b.HoverChanged.Emit(inside)
	}

	if inside && p.Pressed && b.Enabled {
		b.Clicked.Emit(b)
	}
}

// Draw 绘制按钮（纯色背景 + 调试字体文字）
func (b *Button) Draw(screen *ebiten.Image) {
	clr := buttonNormalColor
	switch {
	case !b.Enabled:
		clr = buttonDisabledColor
	case b.hovered:
		clr = buttonHoverColor
	}

	ebitenutil.DrawRect(screen, b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H, clr)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.Rect.X)+10, int(b.Rect.Y+b.Rect.H/2)-8)
}

// ButtonHandlers 按钮的处理器槽位，任一槽位都可以为 nil
type ButtonHandlers struct {
	OnClick func()
	OnHover func(hovered bool)
}

// BindButton 把处理器绑定到按钮的事件上，返回一个组合订阅
// 为 nil 的槽位对应的订阅是空操作
func BindButton(b *Button, h ButtonHandlers) state.Subscription {
	return state.Compose(
		state.SubscribeFunc[*Button](&b.Clicked, h.OnClick),
		state.Subscribe[bool](&b.HoverChanged, h.OnHover),
	)
}
