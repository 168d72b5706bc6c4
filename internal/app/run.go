package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/sockwire/internal/ctxlog"
	"github.com/vk/sockwire/internal/transport"
	"github.com/vk/sockwire/internal/wire"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if cfg.HealthcheckPort > 0 {
		stop := a.startHealthcheckServer(cfg.HealthcheckPort)
		defer stop()
	}

	a.logger.Info("Catalogue events registered:", "count", len(a.registry.Events()), "events", a.registry.Events())

	if cfg.URL == "" {
		a.logger.Info("🏁 No URL configured, catalogue check finished.")
		return nil
	}

	switch cfg.Transport {
	case "socketio":
		return a.runSocketIO(ctx, cfg)
	default:
		return a.runWebSocket(ctx, cfg)
	}
}

func (a *App) runWebSocket(ctx context.Context, cfg *Config) error {
	ws, err := transport.DialWebSocket(ctx, cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.URL, err)
	}
	defer ws.Close()
	a.logger.Info("🚀 Connected.", "transport", "websocket", "url", cfg.URL)

	if err := a.emitConfigured(ctx, cfg, ws); err != nil {
		return err
	}

	if !shouldListen(cfg) {
		a.logger.Info("🏁 Done.")
		return nil
	}

	a.logger.Info("👂 Listening for events...")
	return ws.Listen(ctx, a.handleInbound(ctx))
}

func (a *App) runSocketIO(ctx context.Context, cfg *Config) error {
	sio, err := transport.DialSocketIO(ctx, cfg.URL, transport.SocketIOOptions{
		CarrierEvent: cfg.CarrierEvent,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.URL, err)
	}
	defer sio.Close()
	a.logger.Info("🚀 Connected.", "transport", "socketio", "url", cfg.URL)

	if err := a.emitConfigured(ctx, cfg, sio); err != nil {
		return err
	}

	if !shouldListen(cfg) {
		a.logger.Info("🏁 Done.")
		return nil
	}

	a.logger.Info("👂 Listening for events...")
	sio.Listen(a.handleInbound(ctx))
	<-ctx.Done()
	return nil
}

// emitConfigured sends the configured event, if any. The payload is checked
// against the catalogue before it goes on the wire, so a shape mismatch is a
// local error instead of a silent drop on the peer.
func (a *App) emitConfigured(ctx context.Context, cfg *Config, endpoint wire.Endpoint) error {
	if cfg.EmitEvent == "" {
		return nil
	}

	validator, ok := a.registry.Validator(cfg.EmitEvent)
	if !ok {
		return fmt.Errorf("cannot emit event %q: not in the catalogue", cfg.EmitEvent)
	}
	raw := json.RawMessage(cfg.EmitData)
	if _, err := validator.Validate(raw); err != nil {
		return fmt.Errorf("payload for %q does not match its declared shape: %w", cfg.EmitEvent, err)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to decode payload for %q: %w", cfg.EmitEvent, err)
	}

	if err := a.sender.Send(cfg.EmitEvent).Data(payload).To(endpoint).Emit(ctx); err != nil {
		return err
	}
	a.logger.Info("📤 Event sent.", "event", cfg.EmitEvent)
	return nil
}

// handleInbound routes every inbound message string through the receiver.
func (a *App) handleInbound(ctx context.Context) func(text string) {
	return func(text string) {
		outcome := a.receiver.Handle(ctx, text)
		a.logger.Debug("Inbound message handled.", "outcome", outcome.String())
	}
}

// shouldListen reports whether the run subscribes to inbound events. The
// default run listens; an emit-only run (no explicit subscriptions) sends
// and disconnects.
func shouldListen(cfg *Config) bool {
	return len(cfg.ListenFor) > 0 || cfg.EmitEvent == ""
}
