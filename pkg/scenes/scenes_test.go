package scenes

import (
	"context"
	"testing"

	"github.com/decker502/uistate/pkg/config"
	"github.com/decker502/uistate/pkg/game"
	"github.com/decker502/uistate/pkg/state"
	"github.com/decker502/uistate/pkg/task"
	"github.com/decker502/uistate/pkg/ui"
)

// testHarness 不经过 ebiten 主循环驱动状态机
type testHarness struct {
	env   *Env
	queue *task.Queue
	menu  *MenuState
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	queue := task.NewQueue()
	env := &Env{
		Scenes:   game.NewSceneManager(),
		Runner:   task.NewRunner(context.Background(), queue),
		Saves:    game.NewSaveManager(nil),
		Settings: game.NewSettingsManager(nil),
		Layout:   config.DefaultLayout(),
		Game:     game.NewGameState(game.DifficultyNormal),
	}
	menu := NewMenuState(env)
	if err := env.Scenes.Start(menu); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return &testHarness{env: env, queue: queue, menu: menu}
}

// click 在矩形中心点击一次
func (h *testHarness) click(r config.Rect) {
	h.env.Scenes.Update(game.Tick{
		DeltaTime: 1.0 / 60,
		Pointer:   ui.Pointer{X: int(r.X + r.W/2), Y: int(r.Y + r.H/2), Pressed: true},
	})
}

// settle 等待后台任务结束并在派发线程上处理完成事件
func (h *testHarness) settle(t *testing.T) {
	t.Helper()
	if err := h.env.Runner.Wait(); err != nil {
		t.Fatalf("Runner.Wait() error: %v", err)
	}
	h.queue.Drain()
}

// TestMenuQuit 测试每次点击退出按钮恰好调用一次退出处理，
// 主菜单被切换走之后点击不再生效
func TestMenuQuit(t *testing.T) {
	h := newHarness(t)
	quit := h.env.Layout.Menu.Quit

	h.click(h.env.Layout.Menu.Play)
	if h.env.QuitRequested() {
		t.Fatal("quit requested by the play button")
	}

	h.click(quit)
	if got := h.env.QuitRequests(); got != 1 {
		t.Fatalf("QuitRequests() after one click: got %d, want 1", got)
	}
	h.click(quit)
	if got := h.env.QuitRequests(); got != 2 {
		t.Fatalf("QuitRequests() after two clicks: got %d, want 2", got)
	}

	// 等待界面期间主菜单已拆除
	h.click(h.env.Layout.Menu.Save)
	if _, ok := h.env.Scenes.GetCurrentState().(*WaitState); !ok {
		t.Fatalf("current state: got %s, want Wait", state.NameOf(h.env.Scenes.GetCurrentState()))
	}
	h.click(quit)
	if got := h.env.QuitRequests(); got != 2 {
		t.Errorf("QuitRequests() while menu retired: got %d, want 2", got)
	}

	// 返回主菜单后重新生效
	h.settle(t)
	h.click(quit)
	if got := h.env.QuitRequests(); got != 3 {
		t.Errorf("QuitRequests() after revert: got %d, want 3", got)
	}
	if h.env.Game.Score != playScore {
		t.Errorf("Score: got %d, want %d", h.env.Game.Score, playScore)
	}
}

// TestSaveRevertsToMenu 测试 主菜单 -> 等待界面 -> 任务完成 -> 返回同一个主菜单
func TestSaveRevertsToMenu(t *testing.T) {
	h := newHarness(t)
	h.click(h.env.Layout.Menu.Play)

	h.click(h.env.Layout.Menu.Save)

	wait, ok := h.env.Scenes.GetCurrentState().(*WaitState)
	if !ok {
		t.Fatalf("current state: got %s, want Wait", state.NameOf(h.env.Scenes.GetCurrentState()))
	}
	if wait.RevertTarget() != h.menu {
		t.Error("wait state should revert to the menu that opened it")
	}
	if h.menu.Phase() != state.PhaseRetired {
		t.Errorf("menu phase while waiting: got %s, want Retired", h.menu.Phase())
	}

	// 等待期间主菜单不响应点击
	h.click(h.env.Layout.Menu.Play)
	if h.env.Game.Score != playScore {
		t.Errorf("retired menu handled a click: score %d", h.env.Game.Score)
	}

	h.settle(t)

	if h.env.Scenes.GetCurrentState() != h.menu {
		t.Fatalf("current state after completion: got %s, want Menu", state.NameOf(h.env.Scenes.GetCurrentState()))
	}
	if !h.menu.IsActive() || wait.IsActive() {
		t.Errorf("menu active=%v wait active=%v, want true false", h.menu.IsActive(), wait.IsActive())
	}
	if h.env.Game.SaveID == "" {
		t.Error("SaveID not set after save completed")
	}
	if h.env.Notice != "Game saved" {
		t.Errorf("Notice: got %q", h.env.Notice)
	}
	if !h.menu.load.Enabled {
		t.Error("load button should be enabled once a save exists")
	}

	// 返回后主菜单的订阅重新挂接
	h.click(h.env.Layout.Menu.Play)
	if h.env.Game.Score != 2*playScore {
		t.Errorf("Score after revert: got %d, want %d", h.env.Game.Score, 2*playScore)
	}
	if wait.Done().(interface{ Len() int }).Len() != 0 {
		t.Error("retired wait state still listens for completion")
	}
}

// TestLoadRestoresGame 测试读档恢复分数
func TestLoadRestoresGame(t *testing.T) {
	h := newHarness(t)

	if h.menu.load.Enabled {
		t.Fatal("load button should be disabled without a save")
	}

	h.click(h.env.Layout.Menu.Play)
	h.click(h.env.Layout.Menu.Save)
	h.settle(t)

	h.click(h.env.Layout.Menu.Play)
	h.click(h.env.Layout.Menu.Play)
	if h.env.Game.Score != 3*playScore {
		t.Fatalf("Score: got %d, want %d", h.env.Game.Score, 3*playScore)
	}

	h.click(h.env.Layout.Menu.Load)
	if w, ok := h.env.Scenes.GetCurrentState().(*WaitState); !ok || w.Kind() != WaitLoad {
		t.Fatalf("current state: got %s, want Wait(load)", state.NameOf(h.env.Scenes.GetCurrentState()))
	}
	h.settle(t)

	if h.env.Game.Score != playScore {
		t.Errorf("Score after load: got %d, want %d", h.env.Game.Score, playScore)
	}
	if h.env.Scenes.GetCurrentState() != h.menu {
		t.Error("load did not return to the menu")
	}
}

// TestLoadWithoutSave 测试没有存档时读档失败也会返回主菜单
func TestLoadWithoutSave(t *testing.T) {
	h := newHarness(t)

	wait := NewWaitState(h.env, WaitLoad, h.menu)
	if err := h.menu.ChangeState(wait); err != nil {
		t.Fatalf("ChangeState() error: %v", err)
	}
	h.settle(t)

	if h.env.Scenes.GetCurrentState() != h.menu {
		t.Error("failed load did not return to the menu")
	}
	if h.env.Notice != "No save found" {
		t.Errorf("Notice: got %q", h.env.Notice)
	}
}

// TestOptionsLayer 测试选项面板叠加在主菜单上
func TestOptionsLayer(t *testing.T) {
	h := newHarness(t)
	lo := h.env.Layout

	h.click(lo.Menu.Options)

	layers := h.menu.Layers()
	if len(layers) != 1 {
		t.Fatalf("menu layers: got %d, want 1", len(layers))
	}
	opts, ok := layers[0].(*OptionsLayer)
	if !ok {
		t.Fatalf("layer: got %s, want Options", state.NameOf(layers[0]))
	}
	if h.menu.Phase() != state.PhaseActiveLayered {
		t.Errorf("menu phase: got %s, want ActiveLayered", h.menu.Phase())
	}
	if opts.Selected() != game.DifficultyNormal {
		t.Errorf("initial difficulty: got %s, want normal", opts.Selected())
	}

	// 面板打开时主菜单不响应输入
	h.click(lo.Menu.Play)
	if h.env.Game.Score != 0 {
		t.Errorf("menu handled a click under the options layer: score %d", h.env.Game.Score)
	}

	h.click(lo.Options.Difficulty)
	if opts.Selected() != game.DifficultyHard {
		t.Errorf("difficulty after click: got %s, want hard", opts.Selected())
	}
	if h.env.Settings.GetSettings().Difficulty != game.DifficultyHard {
		t.Error("settings not updated")
	}

	h.click(lo.Options.Close)
	if len(h.menu.Layers()) != 0 || opts.IsActive() {
		t.Fatal("options layer not terminated")
	}
	if h.menu.Phase() != state.PhaseActive {
		t.Errorf("menu phase: got %s, want Active", h.menu.Phase())
	}
	if h.env.Notice != "Difficulty: Hard" {
		t.Errorf("Notice: got %q", h.env.Notice)
	}

	h.click(lo.Menu.Play)
	if h.env.Game.Score != playScore {
		t.Errorf("menu ignored a click after the layer closed: score %d", h.env.Game.Score)
	}
}

// TestSaveOnExit 测试退出时同步保存
func TestSaveOnExit(t *testing.T) {
	h := newHarness(t)
	h.click(h.env.Layout.Menu.Play)

	s, ok := h.env.Scenes.GetCurrentState().(game.Saveable)
	if !ok {
		t.Fatal("menu should be Saveable")
	}
	if !s.SaveOnExit() {
		t.Fatal("SaveOnExit() returned false")
	}

	data, err := h.env.Saves.Load(game.DefaultSlot)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if data.Score != playScore || data.ID != h.env.Game.SaveID {
		t.Errorf("saved data: got %+v", data)
	}
}
