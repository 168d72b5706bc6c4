package wire

import "context"

// Envelope is the wire representation of one message instance. One transport
// message carries exactly one envelope; there is no versioning, framing, or
// length prefix beyond it.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Endpoint is a bidirectional socket's send primitive, as seen from this
// package: hand off one text message, fire and forget. A nil-free error
// means "handed to the transport", not "delivered".
type Endpoint interface {
	Send(ctx context.Context, text string) error
}
