// Package pipeline defines core types shared across subsystems and the
// per-article orchestration loop.
package pipeline

import (
	"time"
)

// ArticleTask is one unit of work: a URL paired with the date the
// newsletter carrying it was received. Immutable once dispatched.
type ArticleTask struct {
	URL          string    `json:"article_url"`
	ReceivedDate time.Time `json:"received_date"`
}

// Document is the readable text acquired for a URL. A nil *Document
// signals acquisition failure.
type Document struct {
	Text      string
	SourceURL string
	Title     string
}

// Features is the fixed 11-field extraction schema. Every field is
// always present in the output record; missing values are empty
// strings, never null.
type Features struct {
	ArticleDate             string `json:"article_date"`
	Country                 string `json:"country"`
	Region                  string `json:"region"`
	ProjectTitle            string `json:"project_title"`
	Sector                  string `json:"sector"`
	ChinaKeyLeadersGroups   string `json:"china_key_leaders_groups"`
	CountryKeyLeadersGroups string `json:"country_key_leaders_groups"`
	Date                    string `json:"date"`
	From                    string `json:"from"`
	Recipient               string `json:"recipient"`
	Amount                  string `json:"amount"`
}

// FeatureKeys lists the schema keys in prompt order.
var FeatureKeys = []string{
	"article_date",
	"country",
	"region",
	"project_title",
	"sector",
	"china_key_leaders_groups",
	"country_key_leaders_groups",
	"date",
	"from",
	"recipient",
	"amount",
}

// FeaturesFromMap maps loosely-parsed fields onto the fixed schema.
// Unknown keys are ignored; absent keys stay empty.
func FeaturesFromMap(m map[string]string) Features {
	return Features{
		ArticleDate:             m["article_date"],
		Country:                 m["country"],
		Region:                  m["region"],
		ProjectTitle:            m["project_title"],
		Sector:                  m["sector"],
		ChinaKeyLeadersGroups:   m["china_key_leaders_groups"],
		CountryKeyLeadersGroups: m["country_key_leaders_groups"],
		Date:                    m["date"],
		From:                    m["from"],
		Recipient:               m["recipient"],
		Amount:                  m["amount"],
	}
}

// ArticleRecord is one ledger entry: the normalized features merged
// flat with acquisition metadata. Struct embedding keeps the JSON
// object flat, matching ledgers written by earlier runs.
type ArticleRecord struct {
	Features

	ID                   string `json:"id"`
	ArticleReceivedMonth string `json:"article_received_month"`
	ArticleURL           string `json:"article_url"`
	PageSource           string `json:"page_source"`
	PageTitle            string `json:"page_title"`
	PageContent          string `json:"page_content"`
	ProcessedAt          string `json:"processed_at"`
	AcquisitionFailed    bool   `json:"acquisition_failed,omitempty"`
}
