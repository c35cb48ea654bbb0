package insight

import (
	"fmt"
	"testing"
	"time"

	"clinic-insight-server/models"
	model "clinic-insight-server/models/insight"
)

func churnNow() time.Time {
	return time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)
}

func customerLastSeen(id string, daysAgo int) models.Customer {
	return models.Customer{
		ID:            id,
		LastVisitDate: churnNow().AddDate(0, 0, -daysAgo).Format("2006-01-02"),
	}
}

func TestChurnRiskFor_Boundaries(t *testing.T) {
	tests := []struct {
		daysAgo  int
		expected string
	}{
		{95, model.ChurnHigh},
		{90, model.ChurnHigh},
		{89, model.ChurnMedium},
		{60, model.ChurnMedium},
		{59, model.ChurnLow},
		{0, model.ChurnLow},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%d days", test.daysAgo), func(t *testing.T) {
			result := ChurnRiskFor(customerLastSeen("c1", test.daysAgo), churnNow())
			if result.Risk != test.expected {
				t.Errorf("Expected %s at %d days, got %s", test.expected, test.daysAgo, result.Risk)
			}
		})
	}
}

func TestChurnRiskFor_ReasonEmbedsDayCount(t *testing.T) {
	result := ChurnRiskFor(customerLastSeen("c1", 95), churnNow())

	if result.Reason != "no visit in 95 days; high churn risk" {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}

	result = ChurnRiskFor(customerLastSeen("c2", 70), churnNow())
	if result.Reason != "no visit in 70 days; proactive outreach recommended" {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}

	result = ChurnRiskFor(customerLastSeen("c3", 10), churnNow())
	if result.Reason != "visited 10 days ago; stable" {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}
}

func TestHighRiskCustomers_FiltersOnlyHigh(t *testing.T) {
	customers := []models.Customer{
		customerLastSeen("c1", 100),
		customerLastSeen("c2", 70),
		customerLastSeen("c3", 5),
	}

	high := HighRiskCustomers(customers, churnNow())

	if len(high) != 1 {
		t.Fatalf("Expected 1 high-risk customer, got %d", len(high))
	}
	if high[0].CustomerID != "c1" {
		t.Errorf("Expected c1, got %s", high[0].CustomerID)
	}
}

func TestChurnRisksByLevel_AllLevelsPresent(t *testing.T) {
	grouped := ChurnRisksByLevel([]models.Customer{customerLastSeen("c1", 100)}, churnNow())

	if len(grouped) != len(model.ChurnLevels) {
		t.Fatalf("Expected %d levels, got %d", len(model.ChurnLevels), len(grouped))
	}
	if len(grouped[model.ChurnHigh]) != 1 {
		t.Errorf("Expected 1 high entry, got %d", len(grouped[model.ChurnHigh]))
	}
	if len(grouped[model.ChurnMedium]) != 0 || len(grouped[model.ChurnLow]) != 0 {
		t.Errorf("Expected empty medium/low buckets")
	}
}
