package contribution

import (
	"fmt"
	"sort"

	"github.com/SankarGaneshb/Virtuoso/services/account"
)

// FromManual maps manually submitted records into the common contribution
// shape. Manual records count as publications and are considered verified.
func FromManual(records []account.ManualContribution) []Contribution {
	out := make([]Contribution, 0, len(records))
	for _, m := range records {
		category := m.Category
		if category == "" {
			category = "article"
		}
		out = append(out, Contribution{
			ID:          fmt.Sprintf("manual-%s", m.ID),
			Platform:    PlatformPublication,
			Type:        category,
			Description: m.Title,
			Date:        m.CreatedAt.Format(DateLayout),
			Status:      "verified",
			URL:         m.URL,
		})
	}
	return out
}

// Merge combines fetched and manual contributions into one timeline sorted
// by date descending. Ties keep their incoming relative order; cross-source
// duplicates are kept as-is.
func Merge(fetched, manual []Contribution) []Contribution {
	merged := make([]Contribution, 0, len(fetched)+len(manual))
	merged = append(merged, fetched...)
	merged = append(merged, manual...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})

	return merged
}
