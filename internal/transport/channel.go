package transport

import (
	"context"
	"fmt"
)

// Channel is an in-process endpoint backed by a buffered channel. It is the
// loopback transport used by tests and demos: whatever is sent to it can be
// read back from Messages.
type Channel struct {
	ch chan string
}

// NewChannel creates a channel endpoint with the given buffer capacity.
func NewChannel(buffer int) *Channel {
	return &Channel{ch: make(chan string, buffer)}
}

// Send hands the text to the channel. A full buffer fails the send instead
// of blocking the caller, mirroring a transport whose outbound queue is
// saturated.
func (c *Channel) Send(_ context.Context, text string) error {
	select {
	case c.ch <- text:
		return nil
	default:
		return fmt.Errorf("transport: channel endpoint buffer full (capacity %d)", cap(c.ch))
	}
}

// Messages exposes the receive side of the loopback.
func (c *Channel) Messages() <-chan string {
	return c.ch
}
