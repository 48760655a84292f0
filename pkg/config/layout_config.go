package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/uistate/pkg/embedded"
)

// DefaultLayoutPath 内嵌的默认布局文件
const DefaultLayoutPath = "data/layout.yaml"

// Rect 布局中的矩形区域（屏幕坐标）
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Point 布局中的文字位置
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// WindowLayout 窗口配置
type WindowLayout struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// MenuLayout 主菜单按钮位置
type MenuLayout struct {
	Score   Point `yaml:"score"`
	Play    Rect  `yaml:"play"`
	Save    Rect  `yaml:"save"`
	Load    Rect  `yaml:"load"`
	Options Rect  `yaml:"options"`
	Quit    Rect  `yaml:"quit"`
}

// OptionsLayout 选项面板布局
type OptionsLayout struct {
	Panel      Rect `yaml:"panel"`
	Difficulty Rect `yaml:"difficulty"`
	Close      Rect `yaml:"close"`
}

// WaitLayout 等待界面布局
type WaitLayout struct {
	Message Point `yaml:"message"`
	// DelayMs 每次存取额外等待的毫秒数，让等待界面可见
	DelayMs int `yaml:"delayMs"`
}

// Layout 整个界面的布局配置
type Layout struct {
	Window  WindowLayout  `yaml:"window"`
	Menu    MenuLayout    `yaml:"menu"`
	Options OptionsLayout `yaml:"options"`
	Wait    WaitLayout    `yaml:"wait"`
}

// DefaultLayout 返回内置的默认布局（与 data/layout.yaml 一致）
// 用于内嵌资源不可用的场合（如单元测试）
func DefaultLayout() *Layout {
	return &Layout{
		Window: WindowLayout{Title: "uistate demo", Width: 640, Height: 480},
		Menu: MenuLayout{
			Score:   Point{X: 240, Y: 60},
			Play:    Rect{X: 240, Y: 120, W: 160, H: 40},
			Save:    Rect{X: 240, Y: 175, W: 160, H: 40},
			Load:    Rect{X: 240, Y: 230, W: 160, H: 40},
			Options: Rect{X: 240, Y: 285, W: 160, H: 40},
			Quit:    Rect{X: 240, Y: 340, W: 160, H: 40},
		},
		Options: OptionsLayout{
			Panel:      Rect{X: 160, Y: 100, W: 320, H: 240},
			Difficulty: Rect{X: 200, Y: 160, W: 240, H: 40},
			Close:      Rect{X: 200, Y: 260, W: 240, H: 40},
		},
		Wait: WaitLayout{
			Message: Point{X: 260, Y: 230},
			DelayMs: 600,
		},
	}
}

// LoadLayout 加载布局文件
//
// 路径存在于内嵌资源中时从内嵌资源读取，否则从文件系统读取。
// 读取后会做校验，不合法的布局返回错误。
func LoadLayout(path string) (*Layout, error) {
	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file %s: %w", path, err)
	}

	layout, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("invalid layout file %s: %w", path, err)
	}

	log.Printf("[Config] Loaded layout: %s (%dx%d)", path, layout.Window.Width, layout.Window.Height)
	return layout, nil
}

// ParseLayout 解析并校验 YAML 布局
// 文件中缺少的字段保留默认值
func ParseLayout(data []byte) (*Layout, error) {
	layout := DefaultLayout()
	if err := yaml.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return layout, nil
}

// Validate 校验窗口尺寸和每个按钮区域
func (l *Layout) Validate() error {
	if l.Window.Width <= 0 || l.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", l.Window.Width, l.Window.Height)
	}

	rects := []struct {
		name string
		r    Rect
	}{
		{"menu.play", l.Menu.Play},
		{"menu.save", l.Menu.Save},
		{"menu.load", l.Menu.Load},
		{"menu.options", l.Menu.Options},
		{"menu.quit", l.Menu.Quit},
		{"options.panel", l.Options.Panel},
		{"options.difficulty", l.Options.Difficulty},
		{"options.close", l.Options.Close},
	}

	var errs []error
	for _, item := range rects {
		if err := l.checkRect(item.r); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", item.name, err))
		}
	}
	if l.Wait.DelayMs < 0 {
		errs = append(errs, fmt.Errorf("wait.delayMs must not be negative, got %d", l.Wait.DelayMs))
	}
	return errors.Join(errs...)
}

func (l *Layout) checkRect(r Rect) error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("size must be positive, got %vx%v", r.W, r.H)
	}
	if r.X < 0 || r.Y < 0 || r.X+r.W > float64(l.Window.Width) || r.Y+r.H > float64(l.Window.Height) {
		return fmt.Errorf("rect %+v is outside the %dx%d window", r, l.Window.Width, l.Window.Height)
	}
	return nil
}
