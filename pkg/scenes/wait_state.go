package scenes

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/uistate/pkg/event"
	"github.com/decker502/uistate/pkg/game"
	"github.com/decker502/uistate/pkg/state"
	"github.com/decker502/uistate/pkg/task"
	"github.com/decker502/uistate/pkg/ui"
)

var (
	waitBackgroundColor = color.RGBA{R: 10, G: 10, B: 20, A: 255}
	waitBarColor        = color.RGBA{R: 100, G: 160, B: 90, A: 255}
)

const (
	waitBarWidth  = 120.0
	waitBarPeriod = 1.2 // 秒
)

// WaitKind 等待界面要执行的后台操作
type WaitKind int

const (
	WaitSave WaitKind = iota
	WaitLoad
)

func (k WaitKind) String() string {
	if k == WaitLoad {
		return "load"
	}
	return "save"
}

// WaitState 等待界面
//
// 激活时启动一个后台存取任务，并订阅该任务的完成事件；
// 完成后把结果交给游戏数据，然后返回到进入前的状态。
// 等待期间只订阅帧更新（用于动画）和绘制，不响应任何按钮。
type WaitState struct {
	state.Revertible

	env  *Env
	kind WaitKind

	done    event.Event[task.Result[game.SaveData]]
	elapsed float64
}

// NewWaitState 创建等待界面，完成后返回 back
func NewWaitState(env *Env, kind WaitKind, back state.State) *WaitState {
	return &WaitState{
		Revertible: state.NewRevertible(back),
		env:        env,
		kind:       kind,
	}
}

func (w *WaitState) StateName() string { return "Wait(" + w.kind.String() + ")" }

// Kind 返回后台操作类型
func (w *WaitState) Kind() WaitKind {
	return w.kind
}

// Done 返回后台任务的完成事件
func (w *WaitState) Done() event.Source[task.Result[game.SaveData]] {
	return &w.done
}

// Subscriptions 帧更新、绘制和任务完成
func (w *WaitState) Subscriptions() []state.Subscription {
	return []state.Subscription{
		state.Subscribe[game.Tick](w.env.Scenes, w.update),
		state.Subscribe[*ebiten.Image](w.env.Scenes.Canvas(), w.draw),
		state.Subscribe[task.Result[game.SaveData]](&w.done, w.onDone),
	}
}

// HandleActivateState 启动后台任务
// 存档在派发线程上拍快照，后台任务只接触快照
func (w *WaitState) HandleActivateState() error {
	w.elapsed = 0
	saves := w.env.Saves

	switch w.kind {
	case WaitSave:
		snapshot := w.env.Game.Snapshot()
		task.Go(w.env.Runner, "save "+game.DefaultSlot, func(ctx context.Context) (game.SaveData, error) {
			return saves.Save(game.DefaultSlot, snapshot)
		}, &w.done)
	case WaitLoad:
		task.Go(w.env.Runner, "load "+game.DefaultSlot, func(ctx context.Context) (game.SaveData, error) {
			return saves.Load(game.DefaultSlot)
		}, &w.done)
	default:
		return fmt.Errorf("unknown wait kind %d", w.kind)
	}
	return nil
}

func (w *WaitState) update(tick game.Tick) {
	w.elapsed += tick.DeltaTime
}

func (w *WaitState) draw(screen *ebiten.Image) {
	screen.Fill(waitBackgroundColor)

	dots := strings.Repeat(".", int(w.elapsed*3)%4)
	verb := "Saving"
	if w.kind == WaitLoad {
		verb = "Loading"
	}
	p := w.env.Layout.Wait.Message
	ebitenutil.DebugPrintAt(screen, verb+dots, p.X, p.Y)

	barW := waitBarWidth * ui.Pulse(w.elapsed, waitBarPeriod)
	ebitenutil.DrawRect(screen, float64(p.X), float64(p.Y+24), barW, 6, waitBarColor)
}

func (w *WaitState) onDone(r task.Result[game.SaveData]) {
	switch {
	case errors.Is(r.Err, game.ErrNoSave):
		w.env.Notice = "No save found"
	case r.Err != nil:
		w.env.Notice = fmt.Sprintf("%s failed: %v", w.kind, r.Err)
	case w.kind == WaitSave:
		w.env.Game.SaveID = r.Value.ID
		w.env.Notice = "Game saved"
	default:
		w.env.Game.Apply(r.Value)
		w.env.Notice = fmt.Sprintf("Loaded save from %s", r.Value.SavedAt.Local().Format("2006-01-02 15:04"))
	}

	if err := w.Revert(); err != nil {
		log.Printf("[WaitState] Failed to revert: %v", err)
	}
}
