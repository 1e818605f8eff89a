package bot

import (
	"context"
	"sync"

	"github.com/Versifine/relay/internal/protocol"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Dispatcher consumes the reader bridge until it fails or ctx ends.
type Dispatcher interface {
	Run(ctx context.Context, events <-chan ReadResult) error
}

// Server is a logged-in session in the Play state.
type Server struct {
	UUID     uuid.UUID
	Username string
	Version  int32
	Mods     []protocol.ModInfo

	encrypted bool
	threshold int

	reader *protocol.ReadHalf
	writer *Writer
	events <-chan ReadResult

	done      chan struct{}
	closeOnce sync.Once
}

func newServer(rh *protocol.ReadHalf, wh *protocol.WriteHalf, success protocol.LoginSuccess, n Negotiation) *Server {
	done := make(chan struct{})
	return &Server{
		UUID:      success.UUID,
		Username:  success.Username,
		Version:   n.Version,
		Mods:      n.Mods,
		encrypted: rh.Encrypted() && wh.Encrypted(),
		threshold: rh.Threshold(),
		reader:    rh,
		writer:    NewWriter(wh),
		events:    startReader(rh, done),
		done:      done,
	}
}

// Out is where handlers queue outbound events.
func (s *Server) Out() *Writer {
	return s.writer
}

func (s *Server) Encrypted() bool {
	return s.encrypted
}

func (s *Server) Threshold() int {
	return s.threshold
}

// Serve runs the writer task and d until either fails or ctx is cancelled.
// Cancellation is a clean shutdown and returns nil.
func (s *Server) Serve(ctx context.Context, d Dispatcher) error {
	defer s.Close()

	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, func() { _ = s.Close() })
	defer stop()

	g.Go(func() error {
		return s.writer.Run(gctx)
	})
	g.Go(func() error {
		defer s.writer.Close()
		return d.Run(gctx, s.events)
	})

	err := g.Wait()
	if ctx.Err() != nil {
		// the socket was closed on purpose; whatever failed afterwards is noise
		return nil
	}
	return err
}

// Close stops the reader bridge and closes the socket.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.reader.Close()
	})
	return err
}
