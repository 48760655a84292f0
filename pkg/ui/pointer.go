// Package ui 提供状态机使用的最小 UI 控件
//
// 控件本身就是事件源（按钮点击、悬停变化、下拉框选项变化），
// 具体状态在 Subscriptions 中把处理器绑定到这些事件上。
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 一帧的指针输入快照（鼠标或触摸）
type Pointer struct {
	X, Y    int
	Pressed bool // 本帧刚按下
}

// ReadPointer 从 ebiten 读取本帧的指针输入
// 触摸优先于鼠标（移动端）
func ReadPointer() Pointer {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return Pointer{X: x, Y: y, Pressed: true}
	}

	x, y := ebiten.CursorPosition()
	return Pointer{
		X:       x,
		Y:       y,
		Pressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}

// Rect 轴对齐矩形区域
type Rect struct {
	X, Y, W, H float64
}

// Contains 检查点是否在矩形内（左上闭、右下开）
func (r Rect) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx < r.X+r.W && fy >= r.Y && fy < r.Y+r.H
}
