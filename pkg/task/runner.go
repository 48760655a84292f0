package task

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/decker502/uistate/pkg/event"
)

// Result 后台任务的结果
type Result[T any] struct {
	Name  string
	Value T
	Err   error
}

// Runner 启动后台任务并把完成通知投递回派发线程
//
// 不支持取消和超时：任务一旦启动，唯一的生命周期控制是
// 完成事件触发时是否还有状态订阅着它。没有监听器时结果被静默丢弃。
type Runner struct {
	queue *Queue
	group errgroup.Group
	ctx   context.Context
}

// NewRunner 创建任务运行器
//
// ctx 原样传给每个任务，通常是应用级别的根 context，由调用方取消。
// Wait 不会取消 ctx，Wait 之后 Runner 仍可继续启动任务。
func NewRunner(ctx context.Context, queue *Queue) *Runner {
	return &Runner{
		queue: queue,
		ctx:   ctx,
	}
}

// Queue 返回完成回调队列
func (r *Runner) Queue() *Queue {
	return r.queue
}

// Go 在后台运行 work，完成后在派发线程上触发 done
//
// 任务错误通过 Result.Err 交给订阅者处理，不会让 errgroup 失败，
// 一个任务失败不影响其他任务。
func Go[T any](r *Runner, name string, work func(ctx context.Context) (T, error), done *event.Event[Result[T]]) {
	log.Printf("[TaskRunner] Start task: %s", name)

	r.group.Go(func() error {
		value, err := work(r.ctx)
		if err != nil {
			log.Printf("[TaskRunner] Task %s failed: %v", name, err)
		} else {
			log.Printf("[TaskRunner] Task %s finished", name)
		}

		result := Result[T]{Name: name, Value: value, Err: err}
		r.queue.Post(func() {
			if done.Len() == 0 {
				log.Printf("[TaskRunner] Task %s completed with no listener, result dropped", name)
				return
			}
			done.Emit(result)
		})
		return nil
	})
}

// Wait 等待所有已启动的任务结束（用于退出时，可重复调用）
func (r *Runner) Wait() error {
	return r.group.Wait()
}
