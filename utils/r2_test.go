package utils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "lrbooking/config"
)

func TestLocalStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pdfs")
	store := &LocalStore{Dir: dir}
	ctx := context.Background()

	p, err := store.Save(ctx, "../PT100_invoice.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "PT100_invoice.pdf"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	require.NoError(t, store.Delete(ctx, p))
	require.NoError(t, store.Delete(ctx, p))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
}

func TestNewR2StoreNeedsConfig(t *testing.T) {
	_, err := NewR2Store(context.Background(), appconfig.R2Config{Bucket: "lr"})
	assert.Error(t, err)
}
