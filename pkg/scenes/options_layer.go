package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/uistate/pkg/game"
	"github.com/decker502/uistate/pkg/state"
	"github.com/decker502/uistate/pkg/ui"
)

var optionsPanelColor = color.RGBA{R: 40, G: 40, B: 60, A: 230}

// OptionsLayer 选项面板
//
// 作为叠加层覆盖在主菜单之上，主菜单保持活动（继续绘制）。
// 关闭按钮终止本层；本层停用时如果设置有变化则持久化。
type OptionsLayer struct {
	state.Layer

	env *Env

	difficulty *ui.Dropdown[game.Difficulty]
	close      *ui.Button
	dirty      bool
}

// NewOptionsLayer 创建选项面板，下拉框初始选中当前设置的难度
func NewOptionsLayer(env *Env) *OptionsLayer {
	l := env.Layout.Options
	opts := ui.Options(game.Difficulties, game.Difficulty.Label)
	return &OptionsLayer{
		env:        env,
		difficulty: ui.NewDropdown("Difficulty: ", rect(l.Difficulty), opts, env.Settings.GetSettings().Difficulty),
		close:      ui.NewButton("Close", rect(l.Close)),
	}
}

func (o *OptionsLayer) StateName() string { return "Options" }

// Selected 返回下拉框当前选中的难度
func (o *OptionsLayer) Selected() game.Difficulty {
	return o.difficulty.Selected()
}

// Subscriptions 帧更新、绘制、难度下拉框和关闭按钮
func (o *OptionsLayer) Subscriptions() []state.Subscription {
	return []state.Subscription{
		state.Subscribe[game.Tick](o.env.Scenes, o.update),
		state.Subscribe[*ebiten.Image](o.env.Scenes.Canvas(), o.draw),
		ui.BindDropdown(o.difficulty, o.onDifficulty),
		ui.BindButton(o.close, ui.ButtonHandlers{OnClick: o.onClose}),
	}
}

// HandleDeactivateState 持久化有变化的设置
// 保存失败不阻止面板关闭
func (o *OptionsLayer) HandleDeactivateState() error {
	if !o.dirty {
		return nil
	}
	o.dirty = false
	if err := o.env.Settings.Save(); err != nil {
		log.Printf("[OptionsLayer] Warning: failed to save settings: %v", err)
	}
	return nil
}

func (o *OptionsLayer) update(tick game.Tick) {
	o.difficulty.Update(tick.Pointer)
	if !o.IsActive() {
		return
	}
	o.close.Update(tick.Pointer)
}

func (o *OptionsLayer) draw(screen *ebiten.Image) {
	p := o.env.Layout.Options.Panel
	ebitenutil.DrawRect(screen, p.X, p.Y, p.W, p.H, optionsPanelColor)
	ebitenutil.DebugPrintAt(screen, "Options", int(p.X)+10, int(p.Y)+10)

	o.difficulty.Draw(screen)
	o.close.Draw(screen)
}

func (o *OptionsLayer) onDifficulty(d game.Difficulty) {
	o.env.Settings.SetDifficulty(d)
	o.env.Game.Difficulty = d
	o.dirty = true
	log.Printf("[OptionsLayer] Difficulty changed: %s", d)
}

func (o *OptionsLayer) onClose() {
	if err := o.Terminate(); err != nil {
		log.Printf("[OptionsLayer] Failed to close: %v", err)
	}
}
