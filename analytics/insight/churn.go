package insight

import (
	"fmt"
	"time"

	"clinic-insight-server/models"
	model "clinic-insight-server/models/insight"
)

// Days-without-visit boundaries for the churn levels.
const (
	churnHighDays   = 90
	churnMediumDays = 60
)

// ChurnRiskFor classifies one customer's churn risk from the elapsed
// days since their last visit: >= 90 high, >= 60 medium, else low. The
// reason embeds the exact day count.
func ChurnRiskFor(c models.Customer, now time.Time) model.ChurnRiskResult {
	days := 0
	if lastVisit, err := time.Parse(dateLayout, c.LastVisitDate); err == nil {
		days = daysBetween(lastVisit, now)
	}

	var risk, reason string
	switch {
	case days >= churnHighDays:
		risk = model.ChurnHigh
		reason = fmt.Sprintf("no visit in %d days; high churn risk", days)
	case days >= churnMediumDays:
		risk = model.ChurnMedium
		reason = fmt.Sprintf("no visit in %d days; proactive outreach recommended", days)
	default:
		risk = model.ChurnLow
		reason = fmt.Sprintf("visited %d days ago; stable", days)
	}

	return model.ChurnRiskResult{
		CustomerID: c.ID,
		Risk:       risk,
		Reason:     reason,
	}
}

// ChurnRisks classifies every customer in the snapshot.
func ChurnRisks(customers []models.Customer, now time.Time) []model.ChurnRiskResult {
	results := make([]model.ChurnRiskResult, 0, len(customers))
	for _, c := range customers {
		results = append(results, ChurnRiskFor(c, now))
	}
	return results
}

// HighRiskCustomers returns only the high-risk classifications.
func HighRiskCustomers(customers []models.Customer, now time.Time) []model.ChurnRiskResult {
	var out []model.ChurnRiskResult
	for _, r := range ChurnRisks(customers, now) {
		if r.Risk == model.ChurnHigh {
			out = append(out, r)
		}
	}
	return out
}

// ChurnRisksByLevel groups classifications by risk level. Every level is
// present in the result, possibly empty.
func ChurnRisksByLevel(customers []models.Customer, now time.Time) map[string][]model.ChurnRiskResult {
	grouped := make(map[string][]model.ChurnRiskResult, len(model.ChurnLevels))
	for _, level := range model.ChurnLevels {
		grouped[level] = []model.ChurnRiskResult{}
	}
	for _, r := range ChurnRisks(customers, now) {
		grouped[r.Risk] = append(grouped[r.Risk], r)
	}
	return grouped
}
