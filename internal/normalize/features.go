// Package normalize repairs the model's quasi-JSON feature payloads and
// canonicalizes date fields into DD-MM-YYYY form.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Normalizer cleans and parses extracted feature payloads.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
}

// New builds a Normalizer.
func New(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		logger: logger,
		now:    time.Now,
	}
}

// ParseResult is the typed outcome of parsing a raw feature payload.
// Failed marks content that could not be recognized; Fields is always
// non-nil so callers can index it without guarding.
type ParseResult struct {
	Fields map[string]string
	Failed bool
}

// textRepairs fixes known key misspellings emitted by the model and
// strips markdown fences and smart-quote variants before parsing.
var textRepairs = strings.NewReplacer(
	"artical_date", "article_date",
	"dimpfel_classifiation", "dimpfel_classification",
	"```json", "",
	"```", "",
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// ParseFeatures turns the model's raw output into a field mapping.
// Blank input parses to an empty mapping; unparseable input yields
// Failed with an empty mapping, logged and never raised.
func (n *Normalizer) ParseFeatures(raw string) ParseResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParseResult{Fields: map[string]string{}}
	}

	repaired := strings.TrimSpace(textRepairs.Replace(raw))

	fields, err := decodeFields(repaired)
	if err != nil {
		// The model regularly produces python-style single-quoted
		// objects despite the prompt. Normalize quotes and retry.
		if strings.Contains(repaired, "'") {
			if fields, retryErr := decodeFields(strings.ReplaceAll(repaired, "'", `"`)); retryErr == nil {
				return ParseResult{Fields: fields}
			}
		}
		n.logger.Warn("feature payload not parseable", zap.Error(err))
		return ParseResult{Fields: map[string]string{}, Failed: true}
	}
	return ParseResult{Fields: fields}
}

func decodeFields(s string) (map[string]string, error) {
	var loose map[string]any
	if err := json.Unmarshal([]byte(s), &loose); err != nil {
		return nil, fmt.Errorf("decode feature object: %w", err)
	}
	fields := make(map[string]string, len(loose))
	for k, v := range loose {
		fields[k] = stringify(v)
	}
	return fields, nil
}

// stringify flattens scalar JSON values; the schema asks for strings
// but models occasionally emit numbers for amounts or years.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
