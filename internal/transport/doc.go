// Package transport provides the concrete socket endpoints an envelope can
// be handed to: an in-process channel, a gorilla websocket connection, and a
// socket.io client socket.
//
// Endpoints deliberately know nothing about the envelope format; they move
// opaque text. Sending is a synchronous hand-off to the underlying transport
// primitive with no acknowledgment or delivery guarantee, and receiving is
// exposed as a callback fed with each inbound text message.
package transport
