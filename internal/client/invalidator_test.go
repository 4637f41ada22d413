package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpt-event/internal/client"
	"lpt-event/internal/models"
)

func TestInvalidatorApply(t *testing.T) {
	cache := client.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, client.EventsKey, []byte(`[]`), 0))
	require.NoError(t, cache.Set(ctx, client.EventKey(7), []byte(`{}`), 0))
	require.NoError(t, cache.Set(ctx, client.EventKey(8), []byte(`{}`), 0))

	inv := client.NewInvalidator(cache, nil, nil)
	inv.Apply(ctx, models.EventChange{EventID: 7, Action: "updated"})

	data, _ := cache.Get(ctx, client.EventsKey)
	assert.Nil(t, data, "collection key must be evicted")
	data, _ = cache.Get(ctx, client.EventKey(7))
	assert.Nil(t, data, "id key must be evicted")
	data, _ = cache.Get(ctx, client.EventKey(8))
	assert.NotNil(t, data, "other events stay cached")
}
