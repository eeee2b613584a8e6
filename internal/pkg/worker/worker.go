package worker

import (
	"time"

	"laundry_lms/pkg/logger"

	"go.uber.org/zap"
)

// Task 异步任务
type Task struct {
	Name  string
	Run   func() error
	Retry int // 已重试次数
}

// Pool 通用协程池，承载脱离请求协程的任务（回执投递等）
type Pool struct {
	TaskQueue  chan Task
	RetryQueue chan Task // 重试队列
	WorkerNum  int
	MaxRetry   int // 最大重试次数
}

// NewPool 创建协程池
func NewPool(workerNum int, bufferSize int) *Pool {
	if workerNum <= 0 {
		workerNum = 4
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Pool{
		TaskQueue:  make(chan Task, bufferSize),
		RetryQueue: make(chan Task, bufferSize/2),
		WorkerNum:  workerNum,
		MaxRetry:   3,
	}
}

// Start 启动所有 worker
func (p *Pool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	// 启动重试处理协程
	go p.retryWorker()
	logger.Log.Info("Worker pool started", zap.Int("workers", p.WorkerNum))
}

func (p *Pool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.runTask(task); err != nil {
			logger.Log.Error("Task failed",
				zap.Int("worker", id),
				zap.String("task", task.Name),
				zap.Int("attempt", task.Retry),
				zap.Error(err),
			)

			// 如果未达到最大重试次数，加入重试队列
			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
				default:
					logger.Log.Warn("Retry queue full, task dropped", zap.String("task", task.Name))
				}
			} else {
				logger.Log.Warn("Task exceeded max retries, dropped", zap.String("task", task.Name))
			}
		}
	}
}

func (p *Pool) retryWorker() {
	for task := range p.RetryQueue {
		// 延迟重试，避免立即重试
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.TaskQueue <- task:
		default:
			logger.Log.Warn("Main queue full, retry dropped", zap.String("task", task.Name))
		}
	}
}

func (p *Pool) runTask(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Task panicked", zap.String("task", task.Name), zap.Any("panic", r))
			err = nil // panic 不进入重试
		}
	}()
	return task.Run()
}

// Dispatch 提交任务，队列满时丢弃并记录
// 实现 events.AsyncDispatcher
func (p *Pool) Dispatch(name string, fn func() error) {
	select {
	case p.TaskQueue <- Task{Name: name, Run: fn}:
	default:
		logger.Log.Warn("Worker pool queue full, dropping task", zap.String("task", name))
	}
}
