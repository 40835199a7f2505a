package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/himanshu-yaduvanshi/article-automation/internal/metrics"
)

// featurePrompt is the fixed extraction instruction. The sector
// vocabulary is closed, blanks must be empty strings rather than null,
// and the raw response must begin with { and carry no markup.
const featurePrompt = `You are a helpful AI news expert and you need to extract the following information from the news article:

1. Article Date
2. Country
3. Region
4. Project Title
5. Sector
6. China Key Leaders/Groups
7. Country Key Leaders/Groups
8. Date
9. From
10. Recipient
11. Amount

Article Content:
%s

INSTRUCTION:
    - Sector will only be classified any of these: 'Diplomatic', 'Information', 'Military', 'Economic', 'Financial Intelligence', 'Law Enforcement'
    - For blank values, please provide an empty string only and null is not allowed.
    - Please provide the final output as a plain JSON object provided below without any markdown or additional text and start with {.
    - Do not wrap the json codes in JSON markers.
EXPECTED OUTPUT:
{
    "article_date": "",
    "country": "",
    "region": "",
    "project_title": "",
    "sector": "",
    "china_key_leaders_groups": "",
    "country_key_leaders_groups": "",
    "date": "",
    "from": "",
    "recipient": "",
    "amount": ""
}`

// defaultFeaturesJSON is the serialized all-empty schema substituted
// when dispatch fails, so downstream stages only ever deal with
// content-shape problems.
const defaultFeaturesJSON = `{"article_date": "", "country": "", "region": "", "project_title": "", "sector": "", "china_key_leaders_groups": "", "country_key_leaders_groups": "", "date": "", "from": "", "recipient": "", "amount": ""}`

// BuildPrompt embeds article text into the extraction instruction.
func BuildPrompt(articleText string) string {
	return fmt.Sprintf(featurePrompt, articleText)
}

// DefaultFeaturesJSON returns the all-empty schema payload.
func DefaultFeaturesJSON() string {
	return defaultFeaturesJSON
}

// FeatureExtractor implements pipeline.Extractor over a Generator.
type FeatureExtractor struct {
	gen    Generator
	logger *zap.Logger
}

// NewFeatureExtractor builds a FeatureExtractor.
func NewFeatureExtractor(gen Generator, logger *zap.Logger) *FeatureExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeatureExtractor{gen: gen, logger: logger}
}

// Run dispatches the extraction prompt. This is the single
// error-absorption point for provider failures: auth, quota, and
// timeout problems are logged and replaced with the all-empty schema.
func (e *FeatureExtractor) Run(ctx context.Context, articleText string) string {
	raw, err := e.gen.Generate(ctx, BuildPrompt(articleText))
	if err != nil {
		e.logger.Error("feature extraction dispatch failed", zap.Error(err))
		metrics.LLMFailure()
		return defaultFeaturesJSON
	}
	return raw
}
