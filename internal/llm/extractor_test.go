package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	out string
	err error
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	return f.out, f.err
}

func TestBuildPrompt_Contract(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt("Country X received $5M from Country Y.")
	require.Contains(t, prompt, "Country X received $5M from Country Y.")
	require.Contains(t, prompt, "'Diplomatic', 'Information', 'Military', 'Economic', 'Financial Intelligence', 'Law Enforcement'")
	require.Contains(t, prompt, "start with {")
	require.Contains(t, prompt, "null is not allowed")
	require.Contains(t, prompt, "china_key_leaders_groups")
}

func TestRun_PassesThroughModelOutput(t *testing.T) {
	t.Parallel()

	e := NewFeatureExtractor(&fakeGenerator{out: `{"country": "Peru"}`}, zap.NewNop())
	require.Equal(t, `{"country": "Peru"}`, e.Run(context.Background(), "article text"))
}

func TestRun_DispatchFailureYieldsEmptyDefault(t *testing.T) {
	t.Parallel()

	e := NewFeatureExtractor(&fakeGenerator{err: errors.New("quota exceeded")}, zap.NewNop())
	raw := e.Run(context.Background(), "article text")

	var fields map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	require.Len(t, fields, 11)
	for k, v := range fields {
		require.Empty(t, v, "key %s", k)
	}
}
