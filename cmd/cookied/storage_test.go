package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/easycookie/pkg/cookie"
)

func TestOpenStorage(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)

	b, err := openStorage(context.Background(), appConfig{StorageDriver: driverMemory}, log)
	require.NoError(t, err)
	assert.IsType(t, &cookie.MemoryStorage{}, b.storage)
	assert.Empty(t, b.checks)
	b.close()

	b, err = openStorage(context.Background(), appConfig{StorageDriver: driverMemory, OptionsCacheSize: 16}, log)
	require.NoError(t, err)
	assert.IsType(t, &cookie.CachedStorage{}, b.storage)
	b.close()

	_, err = openStorage(context.Background(), appConfig{StorageDriver: "etcd"}, log)
	assert.ErrorIs(t, err, errUnknownDriver)
}
