package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/himanshu-yaduvanshi/article-automation/internal/pipeline"
)

func TestLoad_MissingFileIsFatal(t *testing.T) {
	t.Parallel()

	l := New(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	require.Error(t, l.Load())
}

func TestLoad_MalformedFileIsFatal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	l := New(path, zap.NewNop())
	require.Error(t, l.Load())
}

func TestAppendSave_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	l := New(path, zap.NewNop())
	require.NoError(t, l.Load())

	rec := pipeline.ArticleRecord{
		ID:                   "rec-1",
		ArticleURL:           "https://example.com/story",
		ArticleReceivedMonth: "June 2022",
		Features:             pipeline.FeaturesFromMap(map[string]string{"country": "Peru"}),
	}
	l.Append(rec)
	require.NoError(t, l.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []pipeline.ArticleRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	require.Equal(t, "https://example.com/story", decoded[0].ArticleURL)
	require.Equal(t, "Peru", decoded[0].Country)

	// Records written flat: feature keys sit beside metadata keys.
	var flat []map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	require.Contains(t, flat[0], "country")
	require.Contains(t, flat[0], "article_url")
	require.Contains(t, flat[0], "sector")
}

func TestLoad_ExistingRecordsPreserved(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output.json")
	seed := `[{"id": "old", "article_url": "https://example.com/old"}]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	l := New(path, zap.NewNop())
	require.NoError(t, l.Load())
	l.Append(pipeline.ArticleRecord{ID: "new", ArticleURL: "https://example.com/new"})
	require.NoError(t, l.Save())

	require.NoError(t, l.Load())
	records := l.Records()
	require.Len(t, records, 2)
	require.Equal(t, "old", records[0].ID)
	require.Equal(t, "new", records[1].ID)
}
