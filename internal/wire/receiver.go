package wire

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/sockwire/internal/schema"
)

// Handler consumes the validated, typed payload of one event.
type Handler func(ctx context.Context, payload cty.Value)

// HandlerTable maps event names to handlers. It may cover any subset of the
// catalogue; recognized events without an entry are ignored silently on
// receipt.
type HandlerTable map[string]Handler

// Hooks are the receiver's only error-reporting channel: one optional
// callback per failure category, each given the relevant raw context. A
// missing hook swallows its category. At most one category fires per
// message, so there is no ordering dependency between them.
type Hooks struct {
	// OnNonJSONPayload fires when the inbound text is not valid JSON.
	OnNonJSONPayload func(ctx context.Context, text string, err error)
	// OnMalformedEnvelope fires when the decoded value is not an object
	// carrying a string "event" and a present "data" field.
	OnMalformedEnvelope func(ctx context.Context, decoded any)
	// OnUnrecognisedEvent fires when the event is not in the catalogue.
	OnUnrecognisedEvent func(ctx context.Context, event string)
	// OnInvalidPayload fires when the data fails the event's validator.
	OnInvalidPayload func(ctx context.Context, event string, raw json.RawMessage, err error)
}

// Outcome reports what a single Handle call did with its message.
type Outcome int

const (
	OutcomeDispatched Outcome = iota
	OutcomeIgnored
	OutcomeNonJSONPayload
	OutcomeMalformedEnvelope
	OutcomeUnrecognisedEvent
	OutcomeInvalidPayload
)

// String returns the outcome's name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeDispatched:
		return "dispatched"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeNonJSONPayload:
		return "non-json-payload"
	case OutcomeMalformedEnvelope:
		return "malformed-envelope"
	case OutcomeUnrecognisedEvent:
		return "unrecognised-event"
	case OutcomeInvalidPayload:
		return "invalid-payload"
	default:
		return "unknown"
	}
}

// Receiver parses, validates, and dispatches inbound message strings against
// one catalogue. Handler table and hooks are fixed at construction; the
// receiver itself is immutable and safe for concurrent, repeated use.
type Receiver struct {
	reg      *schema.Registry
	handlers HandlerTable
	hooks    Hooks
}

// NewReceiver builds a receiver from a handler table and optional hooks.
// The handler table is copied; hooks may be nil.
func NewReceiver(reg *schema.Registry, handlers HandlerTable, hooks *Hooks) *Receiver {
	table := make(HandlerTable, len(handlers))
	for name, h := range handlers {
		table[name] = h
	}
	r := &Receiver{reg: reg, handlers: table}
	if hooks != nil {
		r.hooks = *hooks
	}
	return r
}

// Handle processes one inbound message string. Failures originating from
// decoding or validating the message are classified, reported through the
// matching hook, and terminate processing for that message — no error
// escapes for them. Panics from hook or handler code propagate to the
// caller. Dispatch is synchronous: the handler has returned by the time
// Handle returns.
func (r *Receiver) Handle(ctx context.Context, text string) Outcome {
	raw := []byte(text)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			if r.hooks.OnNonJSONPayload != nil {
				r.hooks.OnNonJSONPayload(ctx, text, err)
			}
			return OutcomeNonJSONPayload
		}
		// Well-formed JSON, but the top level is not an object.
		return r.malformed(ctx, raw)
	}

	eventRaw, ok := fields["event"]
	if !ok {
		return r.malformed(ctx, raw)
	}
	var eventName *string
	if err := json.Unmarshal(eventRaw, &eventName); err != nil || eventName == nil {
		return r.malformed(ctx, raw)
	}
	event := *eventName

	// Presence is what matters for data: 0, false, and "" are all
	// legitimate payloads.
	data, ok := fields["data"]
	if !ok {
		return r.malformed(ctx, raw)
	}

	validator, known := r.reg.Validator(event)
	if !known {
		if r.hooks.OnUnrecognisedEvent != nil {
			r.hooks.OnUnrecognisedEvent(ctx, event)
		}
		return OutcomeUnrecognisedEvent
	}

	handler, ok := r.handlers[event]
	if !ok {
		// The catalogue may define events this side deliberately ignores.
		return OutcomeIgnored
	}

	payload, err := validator.Validate(data)
	if err != nil {
		if r.hooks.OnInvalidPayload != nil {
			r.hooks.OnInvalidPayload(ctx, event, data, err)
		}
		return OutcomeInvalidPayload
	}

	handler(ctx, payload)
	return OutcomeDispatched
}

// malformed reports a decoded value that lacks the envelope shape. The
// category is terminal: nothing downstream runs for this message.
func (r *Receiver) malformed(ctx context.Context, raw []byte) Outcome {
	if r.hooks.OnMalformedEnvelope != nil {
		var decoded any
		_ = json.Unmarshal(raw, &decoded)
		r.hooks.OnMalformedEnvelope(ctx, decoded)
	}
	return OutcomeMalformedEnvelope
}
