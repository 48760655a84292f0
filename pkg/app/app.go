// Package app 提供应用的核心包装器
//
// 该包把启动逻辑从 main 包提取出来：加载配置、打开存储、
// 创建状态机的根状态，并把 ebiten 的 Update/Draw 转换为 SceneManager 的事件。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/uistate/pkg/config"
	"github.com/decker502/uistate/pkg/game"
	"github.com/decker502/uistate/pkg/scenes"
	"github.com/decker502/uistate/pkg/task"
	"github.com/decker502/uistate/pkg/ui"
)

// App 应用包装器，实现 ebiten.Game 接口
type App struct {
	env    *scenes.Env
	queue  *task.Queue
	cancel context.CancelFunc

	verbose bool
	closed  bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化内嵌资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	layout, err := config.LoadLayout(cfg.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("布局配置加载失败: %w", err)
	}

	// 存储不可用时降级为内存存档
	gdataManager, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata not available: %v", err)
		gdataManager = nil
	}

	saves := game.NewSaveManager(gdataManager)
	saves.SetDelay(time.Duration(layout.Wait.DelayMs) * time.Millisecond)
	settings := game.NewSettingsManager(gdataManager)

	ctx, cancel := context.WithCancel(context.Background())
	queue := task.NewQueue()

	env := &scenes.Env{
		Scenes:   game.NewSceneManager(),
		Runner:   task.NewRunner(ctx, queue),
		Saves:    saves,
		Settings: settings,
		Layout:   layout,
		Game:     game.NewGameState(settings.GetSettings().Difficulty),
	}

	if err := env.Scenes.Start(scenes.NewMenuState(env)); err != nil {
		cancel()
		return nil, fmt.Errorf("根状态激活失败: %w", err)
	}

	log.Printf("[App] Started (app=%s, layout=%s)", cfg.AppName, cfg.LayoutPath)
	return &App{
		env:     env,
		queue:   queue,
		cancel:  cancel,
		verbose: cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
//
// 先在派发线程上执行后台任务的完成回调，再派发本帧的输入。
func (a *App) Update() error {
	a.queue.Drain()

	if ebiten.IsWindowBeingClosed() || a.env.QuitRequested() {
		a.Shutdown()
		return ebiten.Termination
	}

	a.env.Scenes.Update(game.Tick{
		DeltaTime: 1.0 / float64(ebiten.TPS()),
		Pointer:   ui.ReadPointer(),
	})
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.env.Scenes.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := a.env.Layout.Window
	return w.Width, w.Height
}

// Window 返回窗口配置
func (a *App) Window() config.WindowLayout {
	return a.env.Layout.Window
}

// Shutdown 退出前保存并等待后台任务结束
//
// 当前状态实现 game.Saveable 时调用 SaveOnExit。可以重复调用。
func (a *App) Shutdown() {
	if a.closed {
		return
	}
	a.closed = true

	if s, ok := a.env.Scenes.GetCurrentState().(game.Saveable); ok {
		if !s.SaveOnExit() {
			log.Printf("[App] Warning: save on exit failed")
		}
	}

	a.cancel()
	if err := a.env.Runner.Wait(); err != nil {
		log.Printf("[App] Background task error: %v", err)
	}
	log.Printf("[App] Shutdown complete")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.env.Scenes
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
