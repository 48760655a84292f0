// Package scenes 实现示例界面的各个状态
//
// 状态之间不直接调用彼此的更新和绘制：每个状态只声明它订阅哪些事件
// （SceneManager 的帧更新和绘制、按钮点击、后台任务完成），
// 由状态机在切换时挂接和摘除这些订阅。
package scenes

import (
	"log"

	"github.com/decker502/uistate/pkg/config"
	"github.com/decker502/uistate/pkg/game"
	"github.com/decker502/uistate/pkg/task"
	"github.com/decker502/uistate/pkg/ui"
)

// Env 各状态共享的依赖
type Env struct {
	Scenes   *game.SceneManager
	Runner   *task.Runner
	Saves    *game.SaveManager
	Settings *game.SettingsManager
	Layout   *config.Layout
	Game     *game.GameState

	// Notice 显示在主菜单底部的提示（如"已保存"）
	Notice string

	quits int
}

// RequestQuit 请求退出，由 App 在下一帧检查
func (e *Env) RequestQuit() {
	e.quits++
	log.Printf("[Scenes] Quit requested (%d)", e.quits)
}

// QuitRequested 报告是否已请求退出
func (e *Env) QuitRequested() bool {
	return e.quits > 0
}

// QuitRequests 返回请求退出的次数
func (e *Env) QuitRequests() int {
	return e.quits
}

// rect 把布局中的矩形转换为控件矩形
func rect(r config.Rect) ui.Rect {
	return ui.Rect(r)
}
