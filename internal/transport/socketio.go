package transport

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/sockwire/internal/ctxlog"
)

// DefaultCarrierEvent is the socket.io event name envelope text travels
// under when none is configured.
const DefaultCarrierEvent = "message"

// SocketIOOptions configure DialSocketIO.
type SocketIOOptions struct {
	Namespace          string
	CarrierEvent       string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// SocketIO wraps a socket.io client socket as an endpoint. The envelope text
// is the single argument of a carrier event, which keeps socket.io's own
// event layer out of the catalogue's way.
type SocketIO struct {
	io      *socket.Socket
	carrier string
}

// DialSocketIO connects a socket.io client over websocket and waits for the
// handshake to settle before returning.
func DialSocketIO(ctx context.Context, rawURL string, opts SocketIOOptions) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("transport", "socketio", "url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to parse URL: %w", err)
	}

	sockOpts := socket.DefaultOptions()
	sockOpts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(opts.Namespace, sockOpts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				connectChan <- err
				return
			}
		}
		connectChan <- errors.New("connect_error")
	})

	io.Connect()

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("transport: socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("transport: socket.io connect: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("transport: timed out after %s waiting for socket.io connection", timeout)
	}

	carrier := opts.CarrierEvent
	if carrier == "" {
		carrier = DefaultCarrierEvent
	}
	return &SocketIO{io: io, carrier: carrier}, nil
}

// Send emits the envelope text as the single argument of the carrier event.
func (s *SocketIO) Send(_ context.Context, text string) error {
	if !s.io.Connected() {
		return fmt.Errorf("transport: socket.io client %s is not connected", s.io.Id())
	}
	s.io.Emit(s.carrier, text)
	return nil
}

// Listen subscribes to the carrier event and hands each argument to fn as
// text; non-string arguments are re-encoded so the receiver still sees JSON.
// It returns immediately — delivery happens on the socket's own goroutines.
func (s *SocketIO) Listen(fn func(text string)) {
	s.io.On(types.EventName(s.carrier), func(args ...any) {
		if len(args) == 0 {
			return
		}
		switch v := args[0].(type) {
		case string:
			fn(v)
		case []byte:
			fn(string(v))
		default:
			if b, err := json.Marshal(v); err == nil {
				fn(string(b))
			}
		}
	})
}

// Close disconnects the underlying socket.
func (s *SocketIO) Close() error {
	s.io.Disconnect()
	return nil
}
