package infra

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	status, healthy := Health{Cache: client}.Check(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, StatusOK, status["redis"])
	assert.Equal(t, StatusDisabled, status["postgres"])

	mr.Close()
	status, healthy = Health{Cache: client}.Check(context.Background())
	assert.False(t, healthy)
	assert.NotEqual(t, StatusOK, status["redis"])
}

func TestMissingURLs(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingURL)

	_, err = NewPostgresPool(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingURL)

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestPingWithRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	err := pingWithRetry(context.Background(), func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestPingWithRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pingWithRetry(ctx, func(context.Context) error { return errors.New("down") })
	assert.ErrorIs(t, err, context.Canceled)
}
