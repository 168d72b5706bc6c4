package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_RequiresSchemaPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SchemaPath")
}

func TestNewConfig_DefaultsTransport(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{SchemaPath: "events.hcl"})
	require.NoError(t, err)
	assert.Equal(t, "websocket", cfg.Transport)
}

func TestNewConfig_RejectsUnknownTransport(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{SchemaPath: "events.hcl", Transport: "carrier-pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transport")
}

func TestNewConfig_EmitValidation(t *testing.T) {
	t.Parallel()

	t.Run("data without event", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{SchemaPath: "events.hcl", EmitData: `"hi"`})
		assert.Error(t, err)
	})

	t.Run("event without data", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{SchemaPath: "events.hcl", EmitEvent: "message"})
		assert.Error(t, err)
	})

	t.Run("data is not JSON", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{SchemaPath: "events.hcl", EmitEvent: "message", EmitData: "{nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("valid pair", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(Config{SchemaPath: "events.hcl", EmitEvent: "message", EmitData: `"hi"`})
		require.NoError(t, err)
		assert.Equal(t, "message", cfg.EmitEvent)
	})
}
