package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCache_FetchesOnMissThenCaches(t *testing.T) {
	c := NewTokenCache(nil)
	calls := 0
	fetch := func(ctx context.Context) (string, time.Time, error) {
		calls++
		return "tok-1", time.Now().Add(time.Hour), nil
	}

	tok, err := c.Get(context.Background(), "razorpay:merchant-1", fetch)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, calls)

	tok2, err := c.Get(context.Background(), "razorpay:merchant-1", fetch)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok2)
	assert.Equal(t, 1, calls, "second Get should hit the local cache, not invoke fetch again")
}

func TestTokenCache_DistinctKeysFetchIndependently(t *testing.T) {
	c := NewTokenCache(nil)
	calls := 0
	fetch := func(ctx context.Context) (string, time.Time, error) {
		calls++
		return "tok", time.Now().Add(time.Hour), nil
	}

	_, err := c.Get(context.Background(), "merchant-a", fetch)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "merchant-b", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "each key should trigger its own fetch")
}

func TestTokenCache_PropagatesFetchError(t *testing.T) {
	c := NewTokenCache(nil)
	fetchErr := assert.AnError
	fetch := func(ctx context.Context) (string, time.Time, error) {
		return "", time.Time{}, fetchErr
	}

	_, err := c.Get(context.Background(), "merchant-c", fetch)
	assert.ErrorIs(t, err, fetchErr)
}

func TestTokenCache_ExpiryUnderBufferStillCachesBriefly(t *testing.T) {
	c := NewTokenCache(nil)
	calls := 0
	fetch := func(ctx context.Context) (string, time.Time, error) {
		calls++
		// expiry inside the buffer window: ttl computation clamps to 1 minute
		return "tok-short", time.Now().Add(time.Second), nil
	}

	tok, err := c.Get(context.Background(), "merchant-d", fetch)
	require.NoError(t, err)
	assert.Equal(t, "tok-short", tok)

	tok2, err := c.Get(context.Background(), "merchant-d", fetch)
	require.NoError(t, err)
	assert.Equal(t, "tok-short", tok2)
	assert.Equal(t, 1, calls)
}
