// Package step guards one-time session milestones with a monotonic counter.
package step

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Milestone numerals. They identify protocol progress points and are never
// reused; gaps between them are expected.
const (
	Compression    int32 = 8
	LoginSuccess   int32 = 9
	JoinGame       int32 = 10
	ClientSettings int32 = 15
	Respawn        int32 = 33
)

var ErrDoubleClaim = errors.New("step already claimed or passed")

// ConsistencyError reports a claim at or below the current milestone. It
// means a handshake ran twice or out of order and is always fatal.
type ConsistencyError struct {
	Step    int32
	Current int32
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("claim step %d: current step is %d", e.Step, e.Current)
}

func (e *ConsistencyError) Is(target error) bool {
	return target == ErrDoubleClaim
}

// Sequencer is safe for concurrent use. The zero value starts at step 0.
type Sequencer struct {
	current atomic.Int32
}

func New() *Sequencer {
	return &Sequencer{}
}

// Claim moves the counter to n iff n is strictly greater than the current
// value.
func (s *Sequencer) Claim(n int32) error {
	for {
		cur := s.current.Load()
		if n <= cur {
			return &ConsistencyError{Step: n, Current: cur}
		}
		if s.current.CompareAndSwap(cur, n) {
			return nil
		}
	}
}

func (s *Sequencer) Current() int32 {
	return s.current.Load()
}

// Reached reports whether step n has been claimed or passed.
func (s *Sequencer) Reached(n int32) bool {
	return s.current.Load() >= n
}
