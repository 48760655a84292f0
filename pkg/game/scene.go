package game

import (
	"github.com/decker502/uistate/pkg/ui"
)

// Tick 一帧的更新事件
type Tick struct {
	// DeltaTime 距离上一帧的时间（秒）
	DeltaTime float64
	// Pointer 本帧的指针输入
	Pointer ui.Pointer
}

// Saveable 是一个可选接口，用于支持状态在游戏关闭时保存
//
// 当前活动状态实现此接口时，会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 用户点击退出
type Saveable interface {
	// SaveOnExit 在退出时同步保存
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
