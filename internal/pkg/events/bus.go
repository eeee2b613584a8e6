package events

import (
	"sync"

	"go.uber.org/zap"
)

// Event 进程内事件，在包裹业务变更的事务提交之后才会被投递
type Event interface {
	Name() string
}

// Handler 事件处理函数
type Handler func(e Event)

// AsyncDispatcher 异步投递器
// 标记为 async 的订阅者通过它脱离调用方协程执行（例如 worker 池）
type AsyncDispatcher interface {
	Dispatch(name string, fn func() error)
}

type subscriber struct {
	name    string
	handler Handler
	async   bool
}

// Bus 进程内事件总线
// 每个订阅者独立隔离：单个订阅者 panic 或出错不影响其他订阅者，
// 也不会影响已提交的事务。投递是尽力而为的，进程重启后不保留未投递事件。
type Bus struct {
	mu         sync.RWMutex
	subs       map[string][]subscriber
	dispatcher AsyncDispatcher
	log        *zap.Logger
}

// NewBus 创建事件总线
func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		subs: make(map[string][]subscriber),
		log:  log,
	}
}

// SetAsyncDispatcher 设置异步投递器（可选，未设置时 async 订阅者直接起协程）
func (b *Bus) SetAsyncDispatcher(d AsyncDispatcher) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispatcher = d
}

// Subscribe 注册同步订阅者
func (b *Bus) Subscribe(eventName, subscriberName string, h Handler) {
	b.add(eventName, subscriber{name: subscriberName, handler: h})
}

// SubscribeAsync 注册异步订阅者，投递时不阻塞发布方，
// 与同步订阅者之间没有顺序保证
func (b *Bus) SubscribeAsync(eventName, subscriberName string, h Handler) {
	b.add(eventName, subscriber{name: subscriberName, handler: h, async: true})
}

func (b *Bus) add(eventName string, s subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], s)
}

// Publish 向所有订阅者投递事件
// 调用方必须保证底层事务已经提交
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := b.subs[e.Name()]
	dispatcher := b.dispatcher
	b.mu.RUnlock()

	for _, s := range subs {
		if s.async {
			s := s
			if dispatcher != nil {
				dispatcher.Dispatch(s.name, func() error {
					b.deliver(s, e)
					return nil
				})
			} else {
				go b.deliver(s, e)
			}
			continue
		}
		b.deliver(s, e)
	}
}

// deliver 单个订阅者的故障边界
func (b *Bus) deliver(s subscriber, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Event subscriber panicked",
				zap.String("event", e.Name()),
				zap.String("subscriber", s.name),
				zap.Any("panic", r),
			)
		}
	}()
	s.handler(e)
}
