package bot

// newQueue returns the two ends of an unbounded FIFO. Sends on in never wait
// for the consumer. out is closed once in is closed and the backlog drained.
// Closing done abandons the backlog and stops the queue; producers must then
// select on done themselves.
func newQueue[T any](done <-chan struct{}) (chan<- T, <-chan T) {
	in := make(chan T)
	out := make(chan T)
	go pump(in, out, done)
	return in, out
}

func pump[T any](in <-chan T, out chan<- T, done <-chan struct{}) {
	defer close(out)
	var backlog []T
	for in != nil || len(backlog) > 0 {
		var (
			send chan<- T
			next T
		)
		if len(backlog) > 0 {
			send = out
			next = backlog[0]
		}
		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			backlog = append(backlog, v)
		case send <- next:
			var zero T
			backlog[0] = zero
			backlog = backlog[1:]
		case <-done:
			return
		}
	}
}
