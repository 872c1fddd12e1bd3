package board

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCacheStoresEntry(t *testing.T) {
	cache := NewRenderCache(10 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
}

func TestRenderCacheExpires(t *testing.T) {
	cache := NewRenderCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestRenderCacheDisabledTTL(t *testing.T) {
	cache := NewRenderCache(0)
	calls := 0
	render := func() (string, error) {
		calls++
		return "uncached", nil
	}

	_, _ = cache.GetOrRender("key", render)
	_, _ = cache.GetOrRender("key", render)

	assert.Equal(t, 2, calls)
}

func TestRenderCachePropagatesErrors(t *testing.T) {
	cache := NewRenderCache(time.Minute)
	boom := errors.New("render failed")

	_, err := cache.GetOrRender("key", func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)

	// Failures are not cached; the next call retries.
	val, err := cache.GetOrRender("key", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", val)
}

func TestConfigHashDeterministic(t *testing.T) {
	a := configHash(map[string]any{"chart_type": "line", "decimals": 2})
	b := configHash(map[string]any{"chart_type": "line", "decimals": 2})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, configHash(map[string]any{"chart_type": "bar"}))
	assert.Equal(t, "empty", configHash(nil))
}
