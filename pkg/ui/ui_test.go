package ui

import (
	"math"
	"testing"
)

// TestRectContains 测试矩形命中检测
func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 30}

	tests := []struct {
		x, y int
		want bool
	}{
		{10, 20, true},   // 左上角
		{109, 49, true},  // 右下角内侧
		{110, 30, false}, // 右边界
		{50, 50, false},  // 下边界
		{9, 25, false},   // 左侧
		{60, 35, true},   // 中心
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

// TestButtonClick 测试按钮点击事件
func TestButtonClick(t *testing.T) {
	b := NewButton("Quit", Rect{X: 0, Y: 0, W: 100, H: 40})
	clicks := 0
	sub := BindButton(b, ButtonHandlers{OnClick: func() { clicks++ }})
	sub.Attach()

	b.Update(Pointer{X: 50, Y: 20, Pressed: true})
	b.Update(Pointer{X: 50, Y: 20, Pressed: false})
	b.Update(Pointer{X: 500, Y: 20, Pressed: true})
	if clicks != 1 {
		t.Errorf("clicks: got %d, want 1", clicks)
	}

	b.Enabled = false
	b.Update(Pointer{X: 50, Y: 20, Pressed: true})
	if clicks != 1 {
		t.Errorf("disabled button clicked: got %d, want 1", clicks)
	}

	b.Enabled = true
	sub.Detach()
	b.Update(Pointer{X: 50, Y: 20, Pressed: true})
	if clicks != 1 {
		t.Errorf("detached handler called: got %d, want 1", clicks)
	}
}

// TestButtonHover 测试悬停变化事件只在进入/离开时触发
func TestButtonHover(t *testing.T) {
	b := NewButton("Options", Rect{X: 0, Y: 0, W: 100, H: 40})
	var changes []bool
	sub := BindButton(b, ButtonHandlers{OnHover: func(h bool) { changes = append(changes, h) }})
	sub.Attach()

	b.Update(Pointer{X: 10, Y: 10})
	b.Update(Pointer{X: 20, Y: 10})
	b.Update(Pointer{X: 200, Y: 10})

	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Errorf("hover changes: got %v, want [true false]", changes)
	}
	if b.Hovered() {
		t.Error("Hovered: got true, want false")
	}
	if b.Clicked.Len() != 0 {
		t.Errorf("nil OnClick slot registered a listener: Len=%d", b.Clicked.Len())
	}
}

type hue int

const (
	red hue = iota
	green
	blue
)

// TestOptionsCached 测试同一枚举类型的选项只构建一次
func TestOptionsCached(t *testing.T) {
	resetOptionCache()
	defer resetOptionCache()

	built := 0
	values := func() []hue {
		built++
		return []hue{red, green, blue}
	}
	label := func(c hue) string { return [...]string{"Red", "Green", "Blue"}[c] }

	first := Options(values, label)
	second := Options(values, label)

	if built != 1 {
		t.Errorf("values() calls: got %d, want 1", built)
	}
	if len(second) != 3 || second[1].Label != "Green" || second[2].Value != blue {
		t.Errorf("options: got %+v", second)
	}

	// 返回的是副本
	first[0].Label = "changed"
	if third := Options(values, label); third[0].Label != "Red" {
		t.Errorf("cache mutated through returned slice: %q", third[0].Label)
	}
}

// TestDropdownCycle 测试下拉框循环切换
func TestDropdownCycle(t *testing.T) {
	opts := []Option[hue]{{red, "Red"}, {green, "Green"}, {blue, "Blue"}}
	d := NewDropdown("Color: ", Rect{W: 100, H: 30}, opts, blue)

	if d.Selected() != blue || d.Button.Label != "Color: Blue" {
		t.Fatalf("initial: got %v %q", d.Selected(), d.Button.Label)
	}

	var changed []hue
	sub := BindDropdown(d, func(c hue) { changed = append(changed, c) })
	sub.Attach()

	d.Update(Pointer{X: 5, Y: 5, Pressed: true})
	if d.Selected() != red {
		t.Errorf("after click: got %v, want red", d.Selected())
	}
	if len(changed) != 1 || changed[0] != red {
		t.Errorf("changed: got %v, want [red]", changed)
	}

	sub.Detach()
	d.Update(Pointer{X: 5, Y: 5, Pressed: true})
	if d.Selected() != red {
		t.Errorf("detached dropdown still cycles: got %v", d.Selected())
	}

	if d.Select(hue(9)) {
		t.Error("Select(unknown) returned true")
	}
	if d.Selected() != red {
		t.Errorf("Select(unknown) should fall back to first option, got %v", d.Selected())
	}
}

// TestDropdownEmpty 测试没有选项的下拉框
func TestDropdownEmpty(t *testing.T) {
	d := NewDropdown[hue]("Empty", Rect{W: 10, H: 10}, nil, red)
	d.Next()
	if d.Selected() != red {
		t.Errorf("Selected on empty dropdown: got %v, want zero value", d.Selected())
	}
	if d.Button.Label != "Empty" {
		t.Errorf("Label: got %q, want %q", d.Button.Label, "Empty")
	}
}

// TestPulse 测试往返缓动
func TestPulse(t *testing.T) {
	tests := []struct {
		elapsed, period, want float64
	}{
		{0, 1, 0},
		{0.25, 1, 0.5},
		{0.5, 1, 1},
		{0.75, 1, 0.5},
		{1, 1, 0},
		{1.5, 1, 1},
		{0.3, 0, 0},
	}

	for _, tt := range tests {
		got := Pulse(tt.elapsed, tt.period)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Pulse(%v, %v): got %v, want %v", tt.elapsed, tt.period, got, tt.want)
		}
	}
}
