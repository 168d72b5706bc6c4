// Package wire builds and dispatches envelopes, the two-field JSON messages
// that carry catalogued events between socket endpoints.
//
// The Sender side is a staged builder: choose the event, attach the payload,
// bind the destinations, emit. Each stage is a small immutable value exposing
// only the operations legal at that point, so a half-built message cannot be
// emitted and a serialized envelope can be obtained without emitting at all.
//
// The Receiver side is a single callable that takes one inbound message
// string per invocation, walks it through decode, shape check, event
// recognition, handler lookup, and payload validation, and dispatches the
// typed payload to the matching handler. Failures along the way are
// classified into four categories and reported only through optional hooks;
// none of them escapes the call. Defects in hook or handler code are not the
// receiver's problem and propagate untouched.
package wire
