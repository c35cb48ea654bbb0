package models

import "fmt"

// Customer is an aggregated visit/spend snapshot for one clinic customer.
// Visit and spend totals are accumulated upstream from completed
// appointments only.
type Customer struct {
	ID            string  `json:"id"`
	Name          string  `json:"name,omitempty"`
	TotalVisits   int     `json:"total_visits"`
	TotalSpend    float64 `json:"total_spend"`
	LastVisitDate string  `json:"last_visit_date"` // YYYY-MM-DD
}

func (c *Customer) ToString() string {
	return fmt.Sprintf("Customer(id=%s, visits=%d, spend=%.0f, last=%s)",
		c.ID, c.TotalVisits, c.TotalSpend, c.LastVisitDate)
}
