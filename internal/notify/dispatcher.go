package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrQueueFull is returned by Enqueue when the buffer has no room.
	ErrQueueFull = errors.New("notify: queue full")
	// ErrClosed is returned by Enqueue after Close.
	ErrClosed = errors.New("notify: dispatcher closed")
)

// Notifier accepts messages for asynchronous delivery.
type Notifier interface {
	Enqueue(msg Message) error
}

// Dispatcher delivers messages with a fixed set of worker goroutines reading
// from a bounded queue. Delivery failures are logged and never reported back
// to the caller.
type Dispatcher struct {
	mailer      Mailer
	log         zerolog.Logger
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan Message
	wg     sync.WaitGroup
}

// NewDispatcher starts workers goroutines with a queue of the given size.
func NewDispatcher(mailer Mailer, log zerolog.Logger, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	d := &Dispatcher{
		mailer:      mailer,
		log:         log.With().Str("component", "notify").Logger(),
		sendTimeout: 30 * time.Second,
		queue:       make(chan Message, queueSize),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.run()
	}
	return d
}

// Enqueue schedules msg for delivery without blocking.
func (d *Dispatcher) Enqueue(msg Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	select {
	case d.queue <- msg:
		return nil
	default:
		d.log.Error().Str("to", msg.To).Msg("notification dropped, queue full")
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits for queued ones to be delivered,
// or for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.mailer.Send(ctx, msg); err != nil {
		d.log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("notification delivery failed")
		return
	}
	d.log.Debug().Str("to", msg.To).Msg("notification delivered")
}
