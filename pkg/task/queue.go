// Package task 后台任务与派发线程之间的边界
//
// 后台任务运行在独立的 goroutine 上，状态机不会等待它。任务完成后，
// 完成回调被投递到 Queue，由游戏主循环每帧调用 Drain 在派发线程上执行，
// 后台 goroutine 永远不直接接触订阅列表。
package task

import "sync"

// Queue 线程安全的回调队列
//
// 任意 goroutine 都可以 Post；Drain 只能在派发线程上调用。
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue 创建回调队列
func NewQueue() *Queue {
	return &Queue{}
}

// Post 投递一个回调，等待下一次 Drain 执行
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain 按投递顺序执行当前排队的所有回调，返回执行数量
//
// 回调执行期间新投递的回调留到下一次 Drain。
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Len 返回排队中的回调数量
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
