package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/sockwire/internal/ctxlog"
	"github.com/vk/sockwire/internal/manifest"
	"github.com/vk/sockwire/internal/schema"
	"github.com/vk/sockwire/internal/wire"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *schema.Registry
	sender   *wire.Sender
	receiver *wire.Receiver
}

// NewApp is the constructor for the main application. It loads the event
// catalogue and wires the sender and receiver around it, with its own
// isolated logger. A catalogue that fails to load, or a ListenFor entry the
// catalogue does not define, is a fatal startup error and panics.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	registry, err := manifest.NewLoader().Load(ctx, cfg.SchemaPath)
	if err != nil {
		panic(fmt.Errorf("failed to load event catalogue: %w", err))
	}
	logger.Debug("Event catalogue loaded.", "events", registry.Events())

	handlers := buildHandlerTable(logger, registry, cfg.ListenFor)
	logger.Debug("Inbound handlers registered.", "count", len(handlers))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: registry,
		sender:   wire.NewSender(registry),
		receiver: wire.NewReceiver(registry, handlers, loggingHooks(logger)),
	}
}

// Registry returns the application's event catalogue. This is primarily for
// testing.
func (a *App) Registry() *schema.Registry {
	return a.registry
}

// buildHandlerTable registers a logging handler for each subscribed event,
// or for every catalogue event when no subset is configured.
func buildHandlerTable(logger *slog.Logger, registry *schema.Registry, listenFor []string) wire.HandlerTable {
	events := listenFor
	if len(events) == 0 {
		events = registry.Events()
	}

	handlers := make(wire.HandlerTable, len(events))
	for _, event := range events {
		if !registry.Has(event) {
			panic(fmt.Errorf("cannot listen for event %q: not in the catalogue", event))
		}
		handlers[event] = func(ctx context.Context, payload cty.Value) {
			b, err := ctyjson.Marshal(payload, payload.Type())
			if err != nil {
				logger.Error("Failed to render payload.", "event", event, "error", err)
				return
			}
			logger.Info("📨 Event received.", "event", event, "payload", string(b))
		}
	}
	return handlers
}

// loggingHooks reports each inbound failure category through the logger.
func loggingHooks(logger *slog.Logger) *wire.Hooks {
	return &wire.Hooks{
		OnNonJSONPayload: func(_ context.Context, text string, err error) {
			logger.Warn("Inbound message is not JSON.", "error", err, "text", text)
		},
		OnMalformedEnvelope: func(_ context.Context, decoded any) {
			logger.Warn("Inbound message is not an event envelope.", "decoded", decoded)
		},
		OnUnrecognisedEvent: func(_ context.Context, event string) {
			logger.Warn("Inbound event is not in the catalogue.", "event", event)
		},
		OnInvalidPayload: func(_ context.Context, event string, raw json.RawMessage, err error) {
			logger.Warn("Inbound payload failed validation.", "event", event, "error", err, "payload", string(raw))
		},
	}
}
