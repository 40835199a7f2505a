// Package ledger persists processed article records as one JSON array
// file, read in full at startup and rewritten in full on save. No
// incremental writes and no locking: concurrent runs race and the last
// writer wins.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/himanshu-yaduvanshi/article-automation/internal/pipeline"
)

// FileLedger implements pipeline.Ledger over a single JSON file.
type FileLedger struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	records []pipeline.ArticleRecord
}

// New builds a FileLedger rooted at path.
func New(path string, logger *zap.Logger) *FileLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileLedger{path: path, logger: logger}
}

// Load reads the full ledger file. A missing file is an error the
// caller must treat as fatal for the run, never silently an empty
// ledger: overwriting history because the file went missing would lose
// every prior record on the next save.
func (l *FileLedger) Load() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("read ledger %s: %w", l.path, err)
	}

	var records []pipeline.ArticleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode ledger %s: %w", l.path, err)
	}

	l.mu.Lock()
	l.records = records
	l.mu.Unlock()

	l.logger.Info("ledger loaded", zap.String("path", l.path), zap.Int("records", len(records)))
	return nil
}

// Append adds a record to the in-memory collection.
func (l *FileLedger) Append(record pipeline.ArticleRecord) {
	l.mu.Lock()
	l.records = append(l.records, record)
	l.mu.Unlock()
}

// Records returns a copy of the current collection in append order.
func (l *FileLedger) Records() []pipeline.ArticleRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]pipeline.ArticleRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Save rewrites the whole file indent-formatted.
func (l *FileLedger) Save() error {
	l.mu.Lock()
	records := l.records
	if records == nil {
		records = []pipeline.ArticleRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger %s: %w", l.path, err)
	}
	l.logger.Info("ledger saved", zap.String("path", l.path), zap.Int("records", len(records)))
	return nil
}
