package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocket wraps a gorilla websocket connection as an endpoint. gorilla
// permits one concurrent writer per connection, so sends are serialized with
// a mutex.
type WebSocket struct {
	conn *websocket.Conn

	writeMu sync.Mutex
}

// DialWebSocket connects to a ws:// or wss:// URL.
func DialWebSocket(ctx context.Context, url string) (*WebSocket, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: websocket dial %s: %w", url, err)
	}
	return &WebSocket{conn: conn}, nil
}

// NewWebSocket wraps an already-established connection, e.g. one produced by
// an HTTP upgrade on the server side.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	return &WebSocket{conn: conn}
}

// Send writes the text as one websocket text message.
func (w *WebSocket) Send(ctx context.Context, text string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		if err := w.conn.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("transport: websocket deadline: %w", err)
		}
	}
	if err := w.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("transport: websocket write: %w", err)
	}
	return nil
}

// Listen reads messages until the connection closes, handing each text to
// fn. It blocks, so callers that also send run it from its own goroutine. A
// normal peer close returns nil; cancelling ctx only takes effect once the
// next message arrives, so callers wanting a hard stop close the endpoint.
func (w *WebSocket) Listen(ctx context.Context, fn func(text string)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("transport: websocket read: %w", err)
		}
		fn(string(msg))
	}
}

// Close sends a normal close message and tears the connection down.
func (w *WebSocket) Close() error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	_ = w.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return w.conn.Close()
}
