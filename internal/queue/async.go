package queue

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrBufferFull is returned by AsyncPublisher when its queue is saturated
// and the event was dropped.
var ErrBufferFull = errors.New("event buffer full")

// AsyncPublisher decouples request handling from broker latency: events are
// buffered and delivered by Run on a single goroutine.
type AsyncPublisher struct {
	next    Publisher
	events  chan CatalogChangedEvent
	timeout time.Duration
}

// NewAsyncPublisher buffers up to size events in front of next.
func NewAsyncPublisher(next Publisher, size int) *AsyncPublisher {
	if size < 1 {
		size = 1
	}
	return &AsyncPublisher{next: next, events: make(chan CatalogChangedEvent, size), timeout: 5 * time.Second}
}

// PublishCatalogChanged enqueues ev without blocking.
func (p *AsyncPublisher) PublishCatalogChanged(_ context.Context, ev CatalogChangedEvent) error {
	select {
	case p.events <- ev:
		return nil
	default:
		return ErrBufferFull
	}
}

// Run delivers buffered events until ctx is cancelled, then flushes what is
// left with a short grace period.
func (p *AsyncPublisher) Run(ctx context.Context) error {
	for {
		select {
		case ev := <-p.events:
			p.deliver(ctx, ev)
		case <-ctx.Done():
			p.drain()
			return nil
		}
	}
}

func (p *AsyncPublisher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	for {
		select {
		case ev := <-p.events:
			p.deliver(ctx, ev)
		default:
			return
		}
	}
}

func (p *AsyncPublisher) deliver(ctx context.Context, ev CatalogChangedEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.next.PublishCatalogChanged(ctx, ev); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event_id": ev.ID,
			"entity":   ev.Entity,
		}).Warn("catalog event not delivered")
	}
}
