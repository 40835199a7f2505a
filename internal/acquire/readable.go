package acquire

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/himanshu-yaduvanshi/article-automation/internal/pipeline"
)

// untitled is reported when a page carries no <title>.
const untitled = "No Title"

// readable reduces an HTML document to its visible text and title.
// Scripts, styles, head metadata, and navigation are removed and all
// whitespace collapses to single spaces.
func readable(r io.Reader, sourceURL string) (*pipeline.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = untitled
	}

	doc.Find("script, style, head, title, meta, nav").Remove()
	text := strings.Join(strings.Fields(doc.Text()), " ")

	return &pipeline.Document{
		Text:      text,
		SourceURL: sourceURL,
		Title:     title,
	}, nil
}
