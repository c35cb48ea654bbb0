package insight

import (
	"math"
	"sort"
	"strings"

	"clinic-insight-server/models"
	model "clinic-insight-server/models/insight"
)

// CompletedInRange keeps the completed appointments whose date falls in
// [start, end], both inclusive. Past and future dates are treated alike;
// only the status and range matter.
func CompletedInRange(appointments []models.AppointmentRecord, start, end string) []models.AppointmentRecord {
	var out []models.AppointmentRecord
	for _, a := range appointments {
		if strings.ToLower(a.Status) != models.StatusCompleted {
			continue
		}
		if a.Date < start || a.Date > end {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FirstVisitMap records each customer's earliest completed appointment
// date over the full history, unconstrained by period.
func FirstVisitMap(appointments []models.AppointmentRecord) map[string]string {
	firstVisit := make(map[string]string)
	for _, a := range appointments {
		if strings.ToLower(a.Status) != models.StatusCompleted || a.CustomerID == "" {
			continue
		}
		if existing, seen := firstVisit[a.CustomerID]; !seen || a.Date < existing {
			firstVisit[a.CustomerID] = a.Date
		}
	}
	return firstVisit
}

// CustomerOverview splits the period's visiting customers into new and
// returning. A customer is returning iff their first completed visit is
// strictly before the period start; a first visit on or after the start
// makes them new.
func CustomerOverview(appointments []models.AppointmentRecord, start, end string) model.CustomerOverview {
	inRange := CompletedInRange(appointments, start, end)

	idSet := make(map[string]struct{})
	for _, a := range inRange {
		if a.CustomerID != "" {
			idSet[a.CustomerID] = struct{}{}
		}
	}
	customerIDs := make([]string, 0, len(idSet))
	for id := range idSet {
		customerIDs = append(customerIDs, id)
	}
	sort.Strings(customerIDs)

	firstVisit := FirstVisitMap(appointments)

	var newIDs, returningIDs []string
	for _, id := range customerIDs {
		first, seen := firstVisit[id]
		if !seen {
			continue
		}
		if first >= start {
			newIDs = append(newIDs, id)
		} else {
			returningIDs = append(returningIDs, id)
		}
	}

	total := len(customerIDs)
	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(len(returningIDs)) / float64(total) * 100))
	}

	return model.CustomerOverview{
		NewCustomers:         len(newIDs),
		ReturningCustomers:   len(returningIDs),
		TotalCustomers:       total,
		ReturningVisitRate:   rate,
		NewCustomerIDs:       newIDs,
		ReturningCustomerIDs: returningIDs,
	}
}

// BuildCustomerSnapshots aggregates completed appointments into customer
// visit/spend snapshots, the input shape the RFM and churn paths expect.
func BuildCustomerSnapshots(appointments []models.AppointmentRecord) []models.Customer {
	byID := make(map[string]*models.Customer)
	for _, a := range appointments {
		if strings.ToLower(a.Status) != models.StatusCompleted || a.CustomerID == "" {
			continue
		}
		c, exists := byID[a.CustomerID]
		if !exists {
			c = &models.Customer{ID: a.CustomerID}
			byID[a.CustomerID] = c
		}
		c.TotalVisits++
		c.TotalSpend += a.Amount
		if a.Date > c.LastVisitDate {
			c.LastVisitDate = a.Date
		}
	}

	customers := make([]models.Customer, 0, len(byID))
	for _, c := range byID {
		customers = append(customers, *c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers
}
