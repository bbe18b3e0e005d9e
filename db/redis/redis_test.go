package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestRedisDBConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	r := NewRedisDB(mr.Addr())
	require.NoError(t, r.Connect())
	require.NoError(t, r.Ping(context.Background()))
	require.NoError(t, r.Disconnect())
}
