package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew_CopiesDefinitions(t *testing.T) {
	t.Parallel()

	defs := map[string]PayloadValidator{
		"message": ForType(cty.String),
	}
	reg := New(defs)

	// Mutating the input map after construction must not leak into the
	// registry.
	defs["sneaky"] = ForType(cty.Bool)
	delete(defs, "message")

	assert.True(t, reg.Has("message"))
	assert.False(t, reg.Has("sneaky"))
}

func TestNew_NilValidatorPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		New(map[string]PayloadValidator{"broken": nil})
	})
}

func TestValidator_Lookup(t *testing.T) {
	t.Parallel()

	stringValidator := ForType(cty.String)
	reg := New(map[string]PayloadValidator{
		"message": stringValidator,
	})

	t.Run("known event", func(t *testing.T) {
		v, ok := reg.Validator("message")
		require.True(t, ok)
		assert.Equal(t, cty.String, v.Type())
	})

	t.Run("unknown event is a normal outcome", func(t *testing.T) {
		v, ok := reg.Validator("nope")
		assert.False(t, ok)
		assert.Nil(t, v)
	})
}

func TestEvents_Sorted(t *testing.T) {
	t.Parallel()

	reg := New(map[string]PayloadValidator{
		"typing":    AnyPayload(),
		"chat":      ForType(cty.String),
		"heartbeat": ForType(cty.Number),
	})

	assert.Equal(t, []string{"chat", "heartbeat", "typing"}, reg.Events())
}

func TestEvents_Empty(t *testing.T) {
	t.Parallel()

	reg := New(nil)
	assert.Empty(t, reg.Events())
	assert.False(t, reg.Has("anything"))
}
