package ui

import (
	"reflect"
	"slices"
	"sync"
)

// Option 下拉框的一个选项
type Option[E comparable] struct {
	Value E
	Label string
}

// optionCache 按枚举类型缓存选项列表
var optionCache sync.Map // reflect.Type -> []Option[E]

// Options 返回枚举类型 E 的选项列表
//
// 同一枚举类型只在第一次调用时构建选项（调用 values 和 label），
// 之后直接返回缓存的副本。
func Options[E comparable](values func() []E, label func(E) string) []Option[E] {
	key := reflect.TypeFor[E]()
	if cached, ok := optionCache.Load(key); ok {
		return slices.Clone(cached.([]Option[E]))
	}

	vs := values()
	opts := make([]Option[E], 0, len(vs))
	for _, v := range vs {
		opts = append(opts, Option[E]{Value: v, Label: label(v)})
	}

	actual, _ := optionCache.LoadOrStore(key, opts)
	return slices.Clone(actual.([]Option[E]))
}

// resetOptionCache 清空缓存（测试用）
func resetOptionCache() {
	optionCache.Range(func(k, _ any) bool {
		optionCache.Delete(k)
		return true
	})
}
