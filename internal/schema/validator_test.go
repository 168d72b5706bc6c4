package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestForType_Primitives(t *testing.T) {
	t.Parallel()

	t.Run("string accepts a string", func(t *testing.T) {
		val, err := ForType(cty.String).Validate(json.RawMessage(`"hi"`))
		require.NoError(t, err)
		assert.True(t, cty.StringVal("hi").RawEquals(val))
	})

	t.Run("number accepts a number", func(t *testing.T) {
		val, err := ForType(cty.Number).Validate(json.RawMessage(`42`))
		require.NoError(t, err)
		assert.True(t, cty.NumberIntVal(42).RawEquals(val))
	})

	t.Run("bool accepts false", func(t *testing.T) {
		val, err := ForType(cty.Bool).Validate(json.RawMessage(`false`))
		require.NoError(t, err)
		assert.True(t, cty.False.RawEquals(val))
	})

	t.Run("number rejects a string", func(t *testing.T) {
		_, err := ForType(cty.Number).Validate(json.RawMessage(`"nope"`))
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, cty.Number, verr.WantType)
		assert.Equal(t, json.RawMessage(`"nope"`), verr.Raw)
		assert.NotNil(t, verr.Unwrap())
	})

	t.Run("string rejects a number", func(t *testing.T) {
		_, err := ForType(cty.String).Validate(json.RawMessage(`5`))
		assert.Error(t, err)
	})
}

func TestForType_Object(t *testing.T) {
	t.Parallel()

	chatType := cty.Object(map[string]cty.Type{
		"user": cty.String,
		"body": cty.String,
	})

	t.Run("conforming object", func(t *testing.T) {
		val, err := ForType(chatType).Validate(json.RawMessage(`{"user":"ada","body":"hello"}`))
		require.NoError(t, err)
		assert.Equal(t, "ada", val.GetAttr("user").AsString())
		assert.Equal(t, "hello", val.GetAttr("body").AsString())
	})

	t.Run("wrong attribute type", func(t *testing.T) {
		_, err := ForType(chatType).Validate(json.RawMessage(`{"user":1,"body":"hello"}`))
		require.Error(t, err)

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("non-object payload", func(t *testing.T) {
		_, err := ForType(chatType).Validate(json.RawMessage(`"hello"`))
		assert.Error(t, err)
	})
}

func TestForType_Collections(t *testing.T) {
	t.Parallel()

	val, err := ForType(cty.List(cty.Number)).Validate(json.RawMessage(`[1,2,3]`))
	require.NoError(t, err)
	require.Equal(t, 3, val.LengthInt())

	_, err = ForType(cty.List(cty.Number)).Validate(json.RawMessage(`[1,"two"]`))
	assert.Error(t, err)
}

func TestAnyPayload(t *testing.T) {
	t.Parallel()

	// Falsy values are still legitimate payloads; only malformed JSON is
	// rejected.
	for _, raw := range []string{`0`, `false`, `""`, `{"nested":[1,2]}`} {
		t.Run(raw, func(t *testing.T) {
			_, err := AnyPayload().Validate(json.RawMessage(raw))
			assert.NoError(t, err)
		})
	}

	assert.Equal(t, cty.DynamicPseudoType, AnyPayload().Type())
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	_, err := ForType(cty.Bool).Validate(json.RawMessage(`"yes"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bool")
}
