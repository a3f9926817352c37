package enrichment

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const objectMapTable = `{
  "0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
  "1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"},
  "2": {"cik_str": 320193, "ticker": "AAPL-B", "title": "Apple Inc."}
}`

const columnarTable = `{
  "fields": ["cik", "name", "ticker", "exchange"],
  "data": [
    [320193, "Apple Inc.", "AAPL", "Nasdaq"],
    [1318605, "Tesla, Inc.", "TSLA", "Nasdaq"],
    [34088, "EXXON MOBIL CORP", "XOM", "NYSE"]
  ]
}`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "company_tickers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMapperObjectMapLayout(t *testing.T) {
	m, err := NewStaticMapper(writeTable(t, objectMapTable))
	require.NoError(t, err)

	listing, err := m.Enrich(context.Background(), "320193")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", listing.Ticker)
	assert.Empty(t, listing.Exchange) // layout has no exchange column
}

func TestMapperColumnarLayout(t *testing.T) {
	m, err := NewStaticMapper(writeTable(t, columnarTable))
	require.NoError(t, err)

	listing, err := m.Enrich(context.Background(), "1318605")
	require.NoError(t, err)
	assert.Equal(t, "TSLA", listing.Ticker)
	assert.Equal(t, "NASDAQ", listing.Exchange)

	listing, err = m.Enrich(context.Background(), "34088")
	require.NoError(t, err)
	assert.Equal(t, "NYSE", listing.Exchange)
}

func TestMapperNormalisesCIK(t *testing.T) {
	m, err := NewStaticMapper(writeTable(t, objectMapTable))
	require.NoError(t, err)

	// Header-style zero-padded CIK hits the same entry.
	listing, err := m.Enrich(context.Background(), "0000320193")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", listing.Ticker)
}

func TestMapperMissIsNotAnError(t *testing.T) {
	m, err := NewStaticMapper(writeTable(t, objectMapTable))
	require.NoError(t, err)

	listing, err := m.Enrich(context.Background(), "999999999")
	require.NoError(t, err)
	assert.Empty(t, listing.Ticker)
	assert.Empty(t, listing.Exchange)
}

func TestMapperPrimaryTickerWins(t *testing.T) {
	m, err := NewStaticMapper(writeTable(t, objectMapTable))
	require.NoError(t, err)

	listing, err := m.Enrich(context.Background(), "320193")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", listing.Ticker)
}

func TestMapperRejectsGarbage(t *testing.T) {
	_, err := NewStaticMapper(writeTable(t, "not json at all"))
	assert.Error(t, err)
}

func TestMapperMissingFile(t *testing.T) {
	_, err := NewStaticMapper(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestMapperReloadsOnFileChange(t *testing.T) {
	path := writeTable(t, objectMapTable)

	m, err := NewMapper(path)
	require.NoError(t, err)
	defer func() { _ = m.Close() }()

	listing, err := m.Enrich(context.Background(), "1318605")
	require.NoError(t, err)
	assert.Empty(t, listing.Ticker)

	require.NoError(t, os.WriteFile(path, []byte(columnarTable), 0o644))

	require.Eventually(t, func() bool {
		listing, err := m.Enrich(context.Background(), "1318605")
		return err == nil && listing.Ticker == "TSLA"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestMapperKeepsTableOnBadReload(t *testing.T) {
	path := writeTable(t, objectMapTable)

	m, err := NewMapper(path)
	require.NoError(t, err)
	defer func() { _ = m.Close() }()

	require.NoError(t, os.WriteFile(path, []byte("broken {"), 0o644))

	// Give the watcher a moment; the previous table must survive.
	time.Sleep(200 * time.Millisecond)
	listing, err := m.Enrich(context.Background(), "320193")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", listing.Ticker)
}
