package bot

import (
	"log/slog"

	"github.com/Versifine/relay/internal/protocol"
)

// ReadResult is one item from the reader bridge: a decoded event, or the
// error that ended the read loop.
type ReadResult struct {
	Event protocol.Inbound
	Err   error
}

// startReader runs the blocking read loop on its own goroutine. The first
// error is forwarded once, then the loop exits and the channel closes.
func startReader(half *protocol.ReadHalf, done <-chan struct{}) <-chan ReadResult {
	in, out := newQueue[ReadResult](done)
	go func() {
		defer close(in)
		for {
			ev, err := half.ReadEvent()
			select {
			case in <- ReadResult{Event: ev, Err: err}:
			case <-done:
				return
			}
			if err != nil {
				slog.Debug("Reader bridge stopped", "error", err)
				return
			}
		}
	}()
	return out
}
