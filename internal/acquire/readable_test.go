package acquire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>  Big Story  </title>
  <meta name="description" content="hidden">
  <style>body { color: red; }</style>
</head>
<body>
  <nav>Home | About | Contact</nav>
  <script>var tracker = "evil";</script>
  <article>
    <h1>Big   Story</h1>
    <p>Country X received
       $5M from Country Y.</p>
  </article>
</body>
</html>`

func TestReadable_StripsMarkupAndCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	doc, err := readable(strings.NewReader(samplePage), "https://example.com/story")
	require.NoError(t, err)
	require.Equal(t, "Big Story", doc.Title)
	require.Equal(t, "https://example.com/story", doc.SourceURL)
	require.Equal(t, "Big Story Country X received $5M from Country Y.", doc.Text)
	require.NotContains(t, doc.Text, "tracker")
	require.NotContains(t, doc.Text, "color: red")
	require.NotContains(t, doc.Text, "Home | About")
}

func TestReadable_MissingTitle(t *testing.T) {
	t.Parallel()

	doc, err := readable(strings.NewReader("<html><body><p>text</p></body></html>"), "https://example.com")
	require.NoError(t, err)
	require.Equal(t, untitled, doc.Title)
	require.Equal(t, "text", doc.Text)
}
