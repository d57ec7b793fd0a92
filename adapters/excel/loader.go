package excel

import (
	"os"
	"sync"

	"vansdash/domain/core"
	"vansdash/domain/table"
	"vansdash/internal/errors"

	"golang.org/x/sync/singleflight"
)

// Loader parses workbooks and memoizes the result by content hash.
// The cache is append-only and tables are immutable after load, so it
// is safe to share across requests.
type Loader struct {
	mu    sync.RWMutex
	cache map[core.SourceHash]*table.Table
	group singleflight.Group
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[core.SourceHash]*table.Table)}
}

// LoadFile reads the workbook at path and returns its record table.
// A missing file is a session-halting condition for the caller.
func (l *Loader) LoadFile(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WorkbookError("included file not found")
		}
		return nil, errors.Wrapf(err, "failed to read workbook %s", path)
	}
	return l.LoadBytes(data)
}

// LoadBytes parses an in-memory workbook, serving repeated loads of
// identical content from the cache. Concurrent first loads of the same
// content parse exactly once.
func (l *Loader) LoadBytes(data []byte) (*table.Table, error) {
	key := core.NewSourceHash(data)

	l.mu.RLock()
	if t, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return t, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.group.Do(key.String(), func() (interface{}, error) {
		t, err := Parse(data)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[key] = t
		l.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*table.Table), nil
}
