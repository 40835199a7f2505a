package pipeline

import (
	"context"
	"time"
)

// Acquirer fetches a URL and reduces it to readable article text.
// A nil Document with a non-nil error means acquisition failed.
type Acquirer interface {
	Acquire(ctx context.Context, url string) (*Document, error)
}

// Extractor produces the raw feature payload for article text. It
// never fails: dispatch errors are absorbed and surface as the
// serialized all-empty schema, so callers only ever deal with
// malformed content, not transport problems.
type Extractor interface {
	Run(ctx context.Context, articleText string) string
}

// Ledger persists processed article records as one JSON array file.
type Ledger interface {
	Load() error
	Append(record ArticleRecord)
	Records() []ArticleRecord
	Save() error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
