package scanner

import (
	"sync"

	"github.com/birendpatel/lemon/pkg/token"
)

// DefaultCapacity is the bounded channel size used when a caller has no
// particular memory budget in mind, matching the specification's default
// of 1024.
const DefaultCapacity = 1024

// Channel is the bounded, blocking FIFO between one scanner goroutine and
// the parser that consumes it. It wraps a native Go channel -- which
// already gives bounded capacity, blocking Send/Recv, and FIFO delivery
// for free -- with a sync.Once so that Close, unlike a bare channel
// close(), may be called any number of times without panicking.
type Channel struct {
	ch        chan token.Token
	closeOnce sync.Once
}

// NewChannel constructs a bounded channel with room for capacity
// in-flight tokens before Send blocks.
func NewChannel(capacity int) *Channel {
	if capacity < 1 {
		capacity = 1
	}

	return &Channel{ch: make(chan token.Token, capacity)}
}

// Send blocks until there is room in the channel, or the channel is
// closed (which panics, matching Go's own channel semantics -- sending on
// a closed channel is always a producer bug, never a condition to
// recover from silently).
func (c *Channel) Send(tok token.Token) {
	c.ch <- tok
}

// Recv blocks until a token is available or the channel is closed and
// drained; ok is false exactly when the channel has been closed and has
// no further buffered tokens, the "Closed" signal of the bounded-channel
// contract.
func (c *Channel) Recv() (tok token.Token, ok bool) {
	tok, ok = <-c.ch
	return tok, ok
}

// Close is idempotent: the first call closes the underlying channel, and
// every subsequent call is a no-op.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.ch)
	})
}
