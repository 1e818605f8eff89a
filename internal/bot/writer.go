package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Versifine/relay/internal/protocol"
)

var ErrWriterClosed = errors.New("writer closed")

// Writer is the single owner of the outbound half. Any goroutine may Send;
// Run writes events in submission order.
type Writer struct {
	half *protocol.WriteHalf

	mu     sync.Mutex
	closed bool
	in     chan<- protocol.Outbound
	out    <-chan protocol.Outbound

	stop     chan struct{}
	stopOnce sync.Once
}

func NewWriter(half *protocol.WriteHalf) *Writer {
	stop := make(chan struct{})
	in, out := newQueue[protocol.Outbound](stop)
	return &Writer{
		half: half,
		in:   in,
		out:  out,
		stop: stop,
	}
}

// Send queues o without waiting for the write.
func (w *Writer) Send(o protocol.Outbound) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWriterClosed
	}
	select {
	case <-w.stop:
		return ErrWriterClosed
	default:
	}
	select {
	case w.in <- o:
		return nil
	case <-w.stop:
		return ErrWriterClosed
	}
}

// Close stops accepting events. Run returns after writing what was queued.
func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.in)
}

// Run drains the queue until Close, ctx cancellation or the first write
// error. Failed writes are not retried.
func (w *Writer) Run(ctx context.Context) error {
	defer w.stopOnce.Do(func() { close(w.stop) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case o, ok := <-w.out:
			if !ok {
				return nil
			}
			if err := w.half.WriteEvent(o); err != nil {
				return fmt.Errorf("write %T: %w", o, err)
			}
			slog.Debug("Sent packet", "kind", fmt.Sprintf("%T", o))
		}
	}
}
