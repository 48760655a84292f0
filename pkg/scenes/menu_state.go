package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/uistate/pkg/game"
	"github.com/decker502/uistate/pkg/state"
	"github.com/decker502/uistate/pkg/ui"
)

var menuBackgroundColor = color.RGBA{R: 30, G: 40, B: 30, A: 255}

// playScore 每次点击 Play 获得的分数
const playScore = 10

// MenuState 主菜单（根状态）
//
// 按钮：
//   - Play: 加分
//   - Save/Load: 切换到等待界面，后台存取完成后返回主菜单
//   - Options: 在主菜单上叠加选项面板
//   - Quit: 请求退出
type MenuState struct {
	state.Base

	env *Env

	play    *ui.Button
	save    *ui.Button
	load    *ui.Button
	options *ui.Button
	quit    *ui.Button
}

// NewMenuState 创建主菜单
func NewMenuState(env *Env) *MenuState {
	l := env.Layout.Menu
	return &MenuState{
		env:     env,
		play:    ui.NewButton("Play", rect(l.Play)),
		save:    ui.NewButton("Save", rect(l.Save)),
		load:    ui.NewButton("Load", rect(l.Load)),
		options: ui.NewButton("Options", rect(l.Options)),
		quit:    ui.NewButton("Quit", rect(l.Quit)),
	}
}

func (m *MenuState) StateName() string { return "Menu" }

// Subscriptions 帧更新、绘制和五个按钮的点击
func (m *MenuState) Subscriptions() []state.Subscription {
	return []state.Subscription{
		state.Subscribe[game.Tick](m.env.Scenes, m.update),
		state.Subscribe[*ebiten.Image](m.env.Scenes.Canvas(), m.draw),
		ui.BindButton(m.play, ui.ButtonHandlers{OnClick: m.onPlay}),
		ui.BindButton(m.save, ui.ButtonHandlers{OnClick: m.onSave}),
		ui.BindButton(m.load, ui.ButtonHandlers{OnClick: m.onLoad}),
		ui.BindButton(m.options, ui.ButtonHandlers{OnClick: m.onOptions}),
		ui.BindButton(m.quit, ui.ButtonHandlers{OnClick: m.env.RequestQuit}),
	}
}

// HandleActivateState 每次回到主菜单时刷新 Load 按钮
func (m *MenuState) HandleActivateState() error {
	m.load.Enabled = m.env.Saves.Exists(game.DefaultSlot)
	log.Printf("[MenuState] Activated (score=%d, load enabled=%v)", m.env.Game.Score, m.load.Enabled)
	return nil
}

// HandleLayerTerminated 选项面板关闭
func (m *MenuState) HandleLayerTerminated(layer state.LayerState) {
	log.Printf("[MenuState] Layer closed: %s", state.NameOf(layer))
	m.env.Notice = fmt.Sprintf("Difficulty: %s", m.env.Game.Difficulty.Label())
}

// SaveOnExit 退出时同步保存当前进度
func (m *MenuState) SaveOnExit() bool {
	saved, err := m.env.Saves.Save(game.DefaultSlot, m.env.Game.Snapshot())
	if err != nil {
		log.Printf("[MenuState] Save on exit failed: %v", err)
		return false
	}
	m.env.Game.SaveID = saved.ID
	return true
}

func (m *MenuState) buttons() []*ui.Button {
	return []*ui.Button{m.play, m.save, m.load, m.options, m.quit}
}

func (m *MenuState) update(tick game.Tick) {
	// 叠加层打开时主菜单保持挂接但不响应输入
	if m.Phase() == state.PhaseActiveLayered {
		return
	}
	for _, b := range m.buttons() {
		b.Update(tick.Pointer)
		if !m.IsActive() || m.Phase() == state.PhaseActiveLayered {
			return
		}
	}
}

func (m *MenuState) draw(screen *ebiten.Image) {
	screen.Fill(menuBackgroundColor)

	s := m.env.Layout.Menu.Score
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Score: %d  Difficulty: %s", m.env.Game.Score, m.env.Game.Difficulty.Label()), s.X, s.Y)
	if m.env.Notice != "" {
		ebitenutil.DebugPrintAt(screen, m.env.Notice, s.X, s.Y+20)
	}

	for _, b := range m.buttons() {
		b.Draw(screen)
	}
}

func (m *MenuState) onPlay() {
	m.env.Game.AddScore(playScore)
	m.env.Notice = ""
}

func (m *MenuState) onSave() {
	m.transition(NewWaitState(m.env, WaitSave, m))
}

func (m *MenuState) onLoad() {
	m.transition(NewWaitState(m.env, WaitLoad, m))
}

func (m *MenuState) onOptions() {
	if err := m.LayerNewState(NewOptionsLayer(m.env)); err != nil {
		log.Printf("[MenuState] Failed to open options: %v", err)
	}
}

func (m *MenuState) transition(next state.State) {
	if err := m.ChangeState(next); err != nil {
		log.Printf("[MenuState] Failed to change state: %v", err)
	}
}
