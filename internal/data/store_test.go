package data_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-dashboard/internal/data"
)

func TestStoreReload(t *testing.T) {
	t.Parallel()

	day := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	path := writeWorkbook(t, dayRows(day, "GEN", "A"))

	store, err := data.Open(path, "")
	require.NoError(t, err)

	var seen []uint64
	store.OnReload(func(gen uint64) { seen = append(seen, gen) })

	tbl, gen := store.Table()
	assert.Equal(t, 24, tbl.Len())
	assert.Equal(t, uint64(1), gen)

	require.NoError(t, store.Reload())
	_, gen = store.Table()
	assert.Equal(t, uint64(2), gen)
	assert.Equal(t, []uint64{2}, seen)

	// a broken file keeps the previous table
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))
	require.Error(t, store.Reload())
	tbl, gen = store.Table()
	assert.Equal(t, 24, tbl.Len())
	assert.Equal(t, uint64(2), gen)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	t.Parallel()

	day := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	path := writeWorkbook(t, dayRows(day, "GEN", "A"))

	store, err := data.Open(path, "")
	require.NoError(t, err)

	w, err := data.NewWatcher(store)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	require.Eventually(t, func() bool {
		_, gen := store.Table()
		return gen >= 2
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestStaticStore(t *testing.T) {
	t.Parallel()

	tbl, err := data.NewTable(nil)
	require.NoError(t, err)
	store := data.NewStaticStore(tbl)
	require.NoError(t, store.Reload())
	_, gen := store.Table()
	assert.Equal(t, uint64(1), gen)

	_, err = data.NewWatcher(store)
	require.Error(t, err)
}
