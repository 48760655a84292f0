package ui

import "math"

// EaseInOutCubic 三次方缓入缓出
// 输入 t ∈ [0, 1]，开始慢、中间快、结束慢
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Pulse 返回往返循环的缓动进度 ∈ [0, 1]
// 每个 period 秒内从 0 缓动到 1 再回到 0，用于等待动画
func Pulse(elapsed, period float64) float64 {
	if period <= 0 {
		return 0
	}
	phase := math.Mod(elapsed, period) / period * 2
	if phase > 1 {
		phase = 2 - phase
	}
	return EaseInOutCubic(phase)
}
