package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"

	"github.com/himanshu-yaduvanshi/article-automation/internal/metrics"
)

const canonicalLayout = "02-01-2006"

var (
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)
	ordinalRe       = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
	bareYearRe      = regexp.MustCompile(`^\d{4}$`)
	monthYearRe     = regexp.MustCompile(`^(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{4})$`)
)

// dayNameNoise is the Spanish/Portuguese day-name and filler tokens the
// upstream feed injects ahead of actual dates.
var dayNameNoise = strings.NewReplacer(
	"de ", "",
	",", "",
	"lunes ", "",
	"martes ", "",
	"miércoles ", "",
	"jueves ", "",
	"viernes ", "",
	"sábado ", "",
	"domingo ", "",
)

// monthTranslations maps Spanish and Portuguese month names onto their
// English equivalents. Ordered pairs keep replacement deterministic.
var monthTranslations = []struct{ from, to string }{
	{"enero", "january"}, {"febrero", "february"}, {"marzo", "march"},
	{"abril", "april"}, {"mayo", "may"}, {"junio", "june"},
	{"julio", "july"}, {"agosto", "august"}, {"septiembre", "september"},
	{"octubre", "october"}, {"noviembre", "november"}, {"diciembre", "december"},
	{"janeiro", "january"}, {"fevereiro", "february"}, {"março", "march"},
	{"maio", "may"}, {"junho", "june"}, {"julho", "july"},
	{"setembro", "september"}, {"outubro", "october"}, {"novembro", "november"},
	{"dezembro", "december"},
}

// monthCase restores the capitalization time.Parse requires after the
// cleaning pass has lowercased everything. Full names listed first so
// they win over their three-letter prefixes.
var monthCase = strings.NewReplacer(
	"january", "January", "february", "February", "march", "March",
	"april", "April", "may", "May", "june", "June",
	"july", "July", "august", "August", "september", "September",
	"october", "October", "november", "November", "december", "December",
	"jan", "Jan", "feb", "Feb", "mar", "Mar", "apr", "Apr",
	"jun", "Jun", "jul", "Jul", "aug", "Aug", "sep", "Sep",
	"oct", "Oct", "nov", "Nov", "dec", "Dec",
)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// dateLayouts is tried in declaration order; the first successful parse
// wins even if a later layout would also match. Day-first layouts
// deliberately precede month-first ones: reordering would silently
// reinterpret ambiguous all-numeric dates in ledgers written by
// earlier runs.
var dateLayouts = []string{
	"02-01-2006",      // 25-12-2023
	"2006-01-02",      // 2023-12-25
	"02/01/2006",      // 25/12/2023
	"02.01.2006",      // 25.12.2023
	"2 January 2006",  // 25 December 2023
	"2 Jan 2006",      // 25 Dec 2023
	"2 Jan, 2006",     // 25 Dec, 2023
	"January 2 2006",  // December 25 2023
	"Jan 2 2006",      // Dec 25 2023
	"02-Jan-2006",     // 25-Dec-2023
	"2 1 2006",        // 25 12 2023
	"Jan-02-2006",     // Dec-25-2023
	"20060102",        // 20231225
	"02012006",        // 25122023
	"2 January, 2006", // 25 December, 2023
	"January 2, 2006", // December 25, 2023
	"2-January-2006",  // 25-December-2006
}

// StandardizeDate converts loosely-formatted date strings into
// canonical DD-MM-YYYY form. The second return is false for the null
// outcome (blank, "none", "null"). Strings that survive cleaning but
// defeat every parser are returned as-is rather than discarded:
// partial human-readable information beats silence. locale is accepted
// for parity with the extraction contract; the free-text fallback
// currently understands English forms only.
func (n *Normalizer) StandardizeDate(raw string, locale string) (string, bool) {
	cleaned, ok := n.cleanDate(raw)
	if !ok {
		return "", false
	}

	if v, hit := specialCase(cleaned, n.now()); hit {
		return v, true
	}

	translated := cleaned
	for _, tr := range monthTranslations {
		translated = strings.ReplaceAll(translated, tr.from, tr.to)
	}

	candidate := monthCase.Replace(translated)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format(canonicalLayout), true
		}
	}

	if t, err := dateparse.ParseAny(candidate); err == nil {
		return t.Format(canonicalLayout), true
	}

	metrics.DateUnparsed()
	n.logger.Warn("date not standardized, keeping original",
		zap.String("input", raw),
		zap.String("cleaned", translated),
		zap.String("locale", locale),
	)
	return translated, true
}

// cleanDate normalizes a raw date string ahead of parsing. The false
// return marks the null outcomes.
func (n *Normalizer) cleanDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	switch strings.ToLower(s) {
	case "none", "null":
		return "", false
	}

	// Ranges keep only the opening date.
	if idx := strings.Index(s, " to "); idx >= 0 {
		s = s[:idx]
	}

	s = parentheticalRe.ReplaceAllString(s, "")
	s = ordinalRe.ReplaceAllString(s, "$1")
	s = strings.ToLower(s)
	s = dayNameNoise.Replace(s)

	if bareYearRe.MatchString(s) {
		return "01-01-" + s, true
	}
	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("01-%02d-%s", monthNumbers[m[1]], m[2]), true
	}
	return s, true
}

// specialCase resolves relative phrases against the current clock plus
// two literal phrases observed in historical feeds. Relative outputs
// are intentionally not stable across days.
func specialCase(s string, now time.Time) (string, bool) {
	switch strings.ToLower(s) {
	case "last month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first.AddDate(0, -1, 0).Format(canonicalLayout), true
	case "last year":
		return now.AddDate(-1, 0, 0).Format(canonicalLayout), true
	case "2020 to present":
		return "01-01-2020", true
	case "2019 - last year":
		return "01-01-2019", true
	}
	return "", false
}
