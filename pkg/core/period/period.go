// Package period derives fiscal reporting periods from calendar dates
// scattered through the extracted document text.
package period

import (
	"regexp"
	"sort"
	"time"

	"wealthscribe/pkg/models"
)

var datePattern = regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`)

// Accepted layouts, tried in order. Day-first, matching the statements this
// pipeline targets. The first layout that parses a candidate wins; the
// candidate is never re-interpreted under a later layout.
var dateLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2-1-06",
	"2/1/06",
}

// Resolve scans text for dates and returns the most recent reporting
// period and the one ranked immediately after it. Duplicate dates count as
// separate entries; no de-duplication happens before taking the second
// rank. Either result may be nil.
func Resolve(text string) (latest, previous *models.ReportingPeriod) {
	candidates := datePattern.FindAllString(text, -1)

	var parsed []time.Time
	for _, c := range candidates {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				parsed = append(parsed, t)
				break
			}
		}
	}

	if len(parsed) == 0 {
		return nil, nil
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].After(parsed[j]) })

	latest = fromDate(parsed[0])
	if len(parsed) > 1 {
		previous = fromDate(parsed[1])
	}
	return latest, previous
}

func fromDate(t time.Time) *models.ReportingPeriod {
	return &models.ReportingPeriod{
		Quarter: (int(t.Month())-1)/3 + 1,
		Year:    t.Year(),
	}
}
