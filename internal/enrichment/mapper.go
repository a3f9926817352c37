package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
	"github.com/custodia-labs/filingwatch/internal/core/ports/driven"
	"github.com/custodia-labs/filingwatch/internal/logger"
)

// exchangeAliases normalises the exchange spellings that appear across
// SEC ticker tables.
var exchangeAliases = map[string]string{
	"nasdaq": "NASDAQ",
	"nyse":   "NYSE",
	"amex":   "NYSE American",
	"cboe":   "CBOE",
	"otc":    "OTC",
}

// Mapper resolves CIKs to listings from a local SEC ticker table.
//
// The table file is watched with fsnotify and reloaded on change, so a
// refreshed download takes effect without restarting the watcher. Lookup
// misses are not errors: plenty of filers (funds, private issuers) have
// no listed security.
type Mapper struct {
	mu      sync.RWMutex
	path    string
	byCIK   map[string]domain.Listing
	watcher *fsnotify.Watcher
}

// Compile-time check that Mapper implements the Enricher interface.
var _ driven.Enricher = (*Mapper)(nil)

// NewMapper loads the ticker table at path and starts watching it for
// changes. Close must be called to release the watch.
func NewMapper(path string) (*Mapper, error) {
	m := &Mapper{path: path}
	if err := m.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors and downloaders typically replace the
	// file, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	m.watcher = watcher
	go m.watch()

	return m, nil
}

// NewStaticMapper loads the table once without watching for changes.
func NewStaticMapper(path string) (*Mapper, error) {
	m := &Mapper{path: path}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Enrich returns the listing for a CIK. A miss returns a zero Listing
// and no error.
func (m *Mapper) Enrich(_ context.Context, cik string) (domain.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byCIK[normaliseCIK(cik)], nil
}

// Size returns the number of mapped CIKs.
func (m *Mapper) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byCIK)
}

// Close stops the file watch.
func (m *Mapper) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

func (m *Mapper) watch() {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := m.reload(); err != nil {
				logger.Warn("Ticker table reload failed, keeping previous table: %v", err)
				continue
			}
			logger.Debug("Ticker table reloaded: %d entries", m.Size())
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Ticker table watch error: %v", err)
		}
	}
}

func (m *Mapper) reload() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("read ticker table: %w", err)
	}

	byCIK, err := parseTickerTable(data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.byCIK = byCIK
	m.mu.Unlock()
	return nil
}

// tickerEntry is one value of the company_tickers.json object map.
type tickerEntry struct {
	CIK      json.Number `json:"cik_str"`
	Ticker   string      `json:"ticker"`
	Title    string      `json:"title"`
	Exchange string      `json:"exchange"`
}

// exchangeTable is the company_tickers_exchange.json columnar layout.
type exchangeTable struct {
	Fields []string            `json:"fields"`
	Data   [][]json.RawMessage `json:"data"`
}

// parseTickerTable accepts both SEC ticker table layouts: the object map
// of company_tickers.json and the fields/data columns of
// company_tickers_exchange.json.
func parseTickerTable(data []byte) (map[string]domain.Listing, error) {
	var table exchangeTable
	if err := json.Unmarshal(data, &table); err == nil && len(table.Fields) > 0 {
		return parseColumnar(table)
	}

	var entries map[string]tickerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse ticker table: %w", err)
	}

	// Keys are row numbers ("0", "1", ...); iterate in row order so the
	// first-listing-wins rule is deterministic.
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	byCIK := make(map[string]domain.Listing, len(entries))
	for _, k := range keys {
		e := entries[k]
		cik := normaliseCIK(e.CIK.String())
		if cik == "" || e.Ticker == "" {
			continue
		}
		addListing(byCIK, cik, e.Ticker, e.Exchange)
	}
	return byCIK, nil
}

func parseColumnar(table exchangeTable) (map[string]domain.Listing, error) {
	col := make(map[string]int, len(table.Fields))
	for i, f := range table.Fields {
		col[strings.ToLower(f)] = i
	}
	cikCol, ok := col["cik"]
	if !ok {
		return nil, fmt.Errorf("parse ticker table: no cik column")
	}
	tickerCol, ok := col["ticker"]
	if !ok {
		return nil, fmt.Errorf("parse ticker table: no ticker column")
	}
	exchangeCol, hasExchange := col["exchange"]

	byCIK := make(map[string]domain.Listing, len(table.Data))
	for _, row := range table.Data {
		if len(row) <= cikCol || len(row) <= tickerCol {
			continue
		}
		cik := normaliseCIK(rawString(row[cikCol]))
		ticker := rawString(row[tickerCol])
		if cik == "" || ticker == "" {
			continue
		}
		exchange := ""
		if hasExchange && len(row) > exchangeCol {
			exchange = rawString(row[exchangeCol])
		}
		addListing(byCIK, cik, ticker, exchange)
	}
	return byCIK, nil
}

// addListing records a listing, keeping the first ticker seen per CIK.
// SEC tables list a company's primary security first.
func addListing(byCIK map[string]domain.Listing, cik, ticker, exchange string) {
	if _, exists := byCIK[cik]; exists {
		return
	}
	byCIK[cik] = domain.Listing{
		Ticker:   strings.ToUpper(ticker),
		Exchange: normaliseExchange(exchange),
	}
}

// rawString renders a JSON value (string or number) as its plain text.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// normaliseCIK strips leading zeros so header CIKs ("0000320193") and
// index CIKs ("320193") hit the same key.
func normaliseCIK(cik string) string {
	cik = strings.TrimSpace(cik)
	cik = strings.TrimLeft(cik, "0")
	if cik == "" {
		return ""
	}
	if _, err := strconv.ParseUint(cik, 10, 64); err != nil {
		return ""
	}
	return cik
}

func normaliseExchange(exchange string) string {
	exchange = strings.TrimSpace(exchange)
	if canonical, ok := exchangeAliases[strings.ToLower(exchange)]; ok {
		return canonical
	}
	return exchange
}
