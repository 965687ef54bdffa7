package dataset

import (
	"encoding/csv"
	"fmt"
	"os"

	"ribeira/internal/cache"
	"ribeira/internal/log"
)

// loadResult memoizes both outcomes of a read: a file that failed to parse
// stays failed for the rest of the session, exactly like one that parsed.
type loadResult struct {
	table Table
	err   error
}

// Loader reads CSV files into Tables, memoizing by path for the process
// lifetime. A failed read returns an empty Table together with the error;
// callers continue with empty data rather than aborting.
type Loader struct {
	store  *cache.Store[loadResult]
	logger *log.Logger

	// onLoad, when set, observes each cold load (rows is -1 on failure).
	onLoad func(path string, rows int, err error)
	// onLookup, when set, observes cache hits and misses.
	onLookup func(path string, hit bool)
}

// NewLoader creates a Loader. logger must not be nil.
func NewLoader(logger *log.Logger) *Loader {
	return &Loader{
		store:  cache.NewStore[loadResult](),
		logger: logger.WithComponent(log.ComponentDataset),
	}
}

// Observe registers load and lookup hooks (used to feed metrics).
func (l *Loader) Observe(onLoad func(path string, rows int, err error), onLookup func(path string, hit bool)) {
	l.onLoad = onLoad
	l.onLookup = onLookup
}

// Load returns the Table for path. The second and later calls with the same
// path return the memoized result without touching the filesystem.
func (l *Loader) Load(path string) (Table, error) {
	if res, ok := l.store.Get(path); ok {
		if l.onLookup != nil {
			l.onLookup(path, true)
		}
		return res.table, res.err
	}
	if l.onLookup != nil {
		l.onLookup(path, false)
	}

	table, err := readCSV(path)
	if err != nil {
		l.logger.Error("failed loading source", log.FieldPath, path, log.FieldError, err)
		table = Table{}
	} else {
		l.logger.Info("source loaded", log.FieldPath, path, log.FieldRows, len(table.Rows))
	}
	l.store.Set(path, loadResult{table: table, err: err})
	if l.onLoad != nil {
		rows := len(table.Rows)
		if err != nil {
			rows = -1
		}
		l.onLoad(path, rows, err)
	}
	return table, err
}

func readCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are tolerated; short rows read as ""
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, nil
	}
	return NewTable(records[0], records[1:]), nil
}
