// Package schema defines the event catalogue shared by the two sides of a
// socket conversation: an immutable mapping from event name to the payload
// validator guarding that event.
//
// The catalogue is built once at startup and never mutated afterwards, which
// is what makes it safe to share between any number of senders and receivers
// without synchronization. Validators are backed by the cty type system: a
// declared cty.Type describes the payload shape statically, and validation
// turns a raw JSON payload into a typed cty.Value or a structured failure.
package schema
