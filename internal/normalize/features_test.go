package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseFeatures_WellFormed(t *testing.T) {
	t.Parallel()

	n := New(zap.NewNop())
	res := n.ParseFeatures(`{"article_date": "2023-12-25", "country": "Peru", "amount": "$5M"}`)
	require.False(t, res.Failed)
	require.Equal(t, map[string]string{
		"article_date": "2023-12-25",
		"country":      "Peru",
		"amount":       "$5M",
	}, res.Fields)
}

func TestParseFeatures_BlankInput(t *testing.T) {
	t.Parallel()

	n := New(zap.NewNop())
	for _, in := range []string{"", "   ", "\n"} {
		res := n.ParseFeatures(in)
		require.False(t, res.Failed)
		require.Empty(t, res.Fields)
		require.NotNil(t, res.Fields)
	}
}

func TestParseFeatures_FencedSingleQuoted(t *testing.T) {
	t.Parallel()

	n := New(zap.NewNop())
	raw := "```json\n{'article_date': '3rd June, 2022', 'country': 'Ecuador'}\n```"
	res := n.ParseFeatures(raw)
	require.False(t, res.Failed)
	require.Equal(t, "3rd June, 2022", res.Fields["article_date"])
	require.Equal(t, "Ecuador", res.Fields["country"])
}

func TestParseFeatures_RepairsKnownMisspellings(t *testing.T) {
	t.Parallel()

	n := New(zap.NewNop())
	res := n.ParseFeatures(`{"artical_date": "2021-05-01"}`)
	require.False(t, res.Failed)
	require.Equal(t, "2021-05-01", res.Fields["article_date"])
	_, present := res.Fields["artical_date"]
	require.False(t, present)
}

func TestParseFeatures_SmartQuotes(t *testing.T) {
	t.Parallel()

	n := New(zap.NewNop())
	res := n.ParseFeatures("{“article_date”: “2022-01-01”}")
	require.False(t, res.Failed)
	require.Equal(t, "2022-01-01", res.Fields["article_date"])
}

func TestParseFeatures_ScalarCoercion(t *testing.T) {
	t.Parallel()

	n := New(zap.NewNop())
	res := n.ParseFeatures(`{"amount": 5000000, "sector": null}`)
	require.False(t, res.Failed)
	require.Equal(t, "5000000", res.Fields["amount"])
	require.Equal(t, "", res.Fields["sector"])
}

func TestParseFeatures_GarbageFails(t *testing.T) {
	t.Parallel()

	n := New(zap.NewNop())
	res := n.ParseFeatures("the model had opinions instead of JSON")
	require.True(t, res.Failed)
	require.Empty(t, res.Fields)
	require.NotNil(t, res.Fields)
}
