package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	ProviderID uint
	ActorID    *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Sink persists audit events.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events off the request path. When the queue is full
// or the dispatcher is closed, events are dropped; audit must never fail a booking.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Uint("provider_id", ev.ProviderID),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains pending events and stops the worker. Later Dispatch calls are dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
