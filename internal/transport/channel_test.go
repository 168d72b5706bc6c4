package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_SendAndReceive(t *testing.T) {
	t.Parallel()

	ch := NewChannel(4)
	ctx := context.Background()

	require.NoError(t, ch.Send(ctx, `{"event":"message","data":"hi"}`))
	require.NoError(t, ch.Send(ctx, `{"event":"heartbeat","data":0}`))

	assert.Equal(t, `{"event":"message","data":"hi"}`, <-ch.Messages())
	assert.Equal(t, `{"event":"heartbeat","data":0}`, <-ch.Messages())
}

func TestChannel_FullBufferFailsInsteadOfBlocking(t *testing.T) {
	t.Parallel()

	ch := NewChannel(1)
	ctx := context.Background()

	require.NoError(t, ch.Send(ctx, "first"))
	err := ch.Send(ctx, "second")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffer full")

	// Draining frees the slot again.
	assert.Equal(t, "first", <-ch.Messages())
	assert.NoError(t, ch.Send(ctx, "third"))
}
