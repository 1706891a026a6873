package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"restaurant-pos/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHubBroadcastsEnvelope(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Role: constants.RoleKitchen}
	hub.Register(client)

	require.NoError(t, hub.Broadcast("orders.snapshot", []string{"a"}))

	select {
	case msg := <-client.Send:
		var env Envelope
		require.NoError(t, json.Unmarshal(msg, &env))
		assert.Equal(t, "orders.snapshot", env.Type)
		assert.Equal(t, []interface{}{"a"}, env.Payload)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubClosesClientsOnShutdown(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := &Client{Hub: hub, Send: make(chan []byte, 1), Role: constants.RolePickup}
	hub.Register(client)
	cancel()
	<-done

	_, open := <-client.Send
	assert.False(t, open)
}
