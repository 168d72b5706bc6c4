package wire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vk/sockwire/internal/schema"
)

// Sender builds outbound envelopes for the events of one catalogue. It holds
// no mutable state and may be shared and used concurrently.
type Sender struct {
	reg *schema.Registry
}

// NewSender derives a sender from a catalogue.
func NewSender(reg *schema.Registry) *Sender {
	return &Sender{reg: reg}
}

// Send starts an envelope for the named event. The event must be part of the
// catalogue; an unknown name is a programming error and panics. The payload
// attached later is trusted to match the declared shape — validation is an
// inbound safeguard only.
func (s *Sender) Send(event string) Draft {
	if !s.reg.Has(event) {
		panic(fmt.Sprintf("wire: event %q is not part of the catalogue", event))
	}
	return Draft{event: event}
}

// Draft is an envelope whose event is chosen but which has no payload yet.
type Draft struct {
	event string
}

// Data attaches the payload and seals the message.
func (d Draft) Data(payload any) Message {
	return Message{env: Envelope{Event: d.event, Data: payload}}
}

// Message is a sealed envelope, ready to inspect, serialize, or address.
// Object and Stringify are side-effect free and usable standalone, e.g. for
// transports outside the To/Emit path.
type Message struct {
	env Envelope
}

// Object returns the in-memory envelope value.
func (m Message) Object() Envelope {
	return m.env
}

// Stringify returns the JSON text of the envelope. It fails only when the
// payload itself is not JSON-encodable, which is a caller error rather than
// a normal outcome.
func (m Message) Stringify() (string, error) {
	b, err := json.Marshal(m.env)
	if err != nil {
		return "", fmt.Errorf("wire: envelope for %q is not encodable: %w", m.env.Event, err)
	}
	return string(b), nil
}

// To binds the destination endpoints, deduplicated by identity: binding the
// same endpoint value twice sends exactly once. Endpoint implementations are
// expected to be pointer-shaped, so identity is Go interface equality.
func (m Message) To(endpoints ...Endpoint) Dispatch {
	distinct := make([]Endpoint, 0, len(endpoints))
	seen := make(map[Endpoint]struct{}, len(endpoints))
	for _, ep := range endpoints {
		if ep == nil {
			continue
		}
		if _, dup := seen[ep]; dup {
			continue
		}
		seen[ep] = struct{}{}
		distinct = append(distinct, ep)
	}
	return Dispatch{env: m.env, endpoints: distinct}
}

// Dispatch is an addressed message.
type Dispatch struct {
	env       Envelope
	endpoints []Endpoint
}

// Emit serializes the envelope once and hands it to every distinct bound
// endpoint: one outbound write per endpoint, no acknowledgment, no delivery
// guarantee. Transport send failures are collected per endpoint and joined.
func (d Dispatch) Emit(ctx context.Context) error {
	text, err := Message{env: d.env}.Stringify()
	if err != nil {
		return err
	}
	var errs []error
	for _, ep := range d.endpoints {
		if err := ep.Send(ctx, text); err != nil {
			errs = append(errs, fmt.Errorf("wire: sending %q: %w", d.env.Event, err))
		}
	}
	return errors.Join(errs...)
}
