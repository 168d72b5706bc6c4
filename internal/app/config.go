package app

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SchemaPath string // event catalogue: .hcl file or directory
	URL        string // peer to connect to; empty means catalogue check only

	Transport    string // "websocket" or "socketio"
	CarrierEvent string // socket.io event that carries envelope text

	EmitEvent string // event to send after connecting
	EmitData  string // its payload, as JSON text

	ListenFor []string // events to subscribe handlers for; empty means all

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates and normalizes a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SchemaPath == "" {
		return nil, errors.New("SchemaPath is a required configuration field and cannot be empty")
	}

	if cfg.Transport == "" {
		cfg.Transport = "websocket"
	}
	switch cfg.Transport {
	case "websocket", "socketio":
	default:
		return nil, fmt.Errorf("invalid transport %q: must be 'websocket' or 'socketio'", cfg.Transport)
	}

	if cfg.EmitData != "" && cfg.EmitEvent == "" {
		return nil, errors.New("EmitData is set but EmitEvent is empty")
	}
	if cfg.EmitEvent != "" {
		if cfg.EmitData == "" {
			return nil, fmt.Errorf("event %q needs a payload: EmitData is empty", cfg.EmitEvent)
		}
		if !json.Valid([]byte(cfg.EmitData)) {
			return nil, fmt.Errorf("payload for event %q is not valid JSON", cfg.EmitEvent)
		}
	}

	return &cfg, nil
}
