package revenue

import (
	"testing"

	"clinic-insight-server/models"
	revenuemodel "clinic-insight-server/models/revenue"
	"clinic-insight-server/models/sandbox"
)

func completed(id, date string, amount float64) models.AppointmentRecord {
	return models.AppointmentRecord{
		AppointmentID: id,
		Date:          date,
		Time:          "14:00",
		Status:        models.StatusCompleted,
		Amount:        amount,
	}
}

func TestDailyRevenue_CompletedOnlyAndCatalogFallback(t *testing.T) {
	appointments := []models.AppointmentRecord{
		completed("a1", "2025-01-06", 5000),
		{AppointmentID: "a2", Date: "2025-01-06", Status: models.StatusCancelled, Amount: 9999},
		{AppointmentID: "a3", Date: "2025-01-06", Status: models.StatusBooked, Amount: 9999},
		// no recorded amount: falls back to the catalog price
		{AppointmentID: "a4", Date: "2025-01-07", Status: models.StatusCompleted, ServiceItem: "Hydra Facial"},
		// neither amount nor catalog entry: contributes zero
		{AppointmentID: "a5", Date: "2025-01-07", Status: models.StatusCompleted, ServiceItem: "Mystery"},
	}
	services := []models.ServiceInfo{
		{ServiceName: "Hydra Facial", Category: "facial", Price: 4500},
	}

	daily := DailyRevenue(appointments, services, sandbox.Inactive())

	if daily["2025-01-06"] != 5000 {
		t.Errorf("Expected 5000 on 01-06, got %.0f", daily["2025-01-06"])
	}
	if daily["2025-01-07"] != 4500 {
		t.Errorf("Expected 4500 on 01-07, got %.0f", daily["2025-01-07"])
	}
}

func TestDailyRevenue_SandboxGrowthScalesCatalogPrice(t *testing.T) {
	appointments := []models.AppointmentRecord{
		{AppointmentID: "a1", Date: "2025-01-06", Status: models.StatusCompleted, ServiceItem: "Hydra Facial"},
	}
	services := []models.ServiceInfo{
		{ServiceName: "Hydra Facial", Category: "facial", Price: 4000},
	}
	sb := sandbox.State{
		Active:        true,
		ServiceGrowth: map[string]float64{"facial": 0.25},
	}

	daily := DailyRevenue(appointments, services, sb)

	if daily["2025-01-06"] != 5000 {
		t.Errorf("Expected 5000 with 25%% growth, got %.0f", daily["2025-01-06"])
	}
}

func TestCheckMilestones_YoYOutranksOtherBaselines(t *testing.T) {
	appointments := []models.AppointmentRecord{
		completed("a1", "2024-01-09", 4000), // same day last year
		completed("a2", "2025-01-01", 5000),
		completed("a3", "2025-01-08", 6000),
		completed("a4", "2025-01-09", 7000), // target: beats all three baselines
	}

	m := CheckMilestones("2025-01-09", appointments, nil, sandbox.Inactive())

	if m == nil {
		t.Fatal("Expected a milestone, got nil")
	}
	if m.Priority != revenuemodel.PriorityYoY {
		t.Errorf("Expected YoY priority %d, got %d", revenuemodel.PriorityYoY, m.Priority)
	}
	if m.Title != "daily revenue NT$ 7.0k" {
		t.Errorf("Unexpected title: %s", m.Title)
	}
	if m.Date != "2025-01-09" {
		t.Errorf("Unexpected date: %s", m.Date)
	}
}

func TestCheckMilestones_WeekPeakWhenNoYoYData(t *testing.T) {
	appointments := []models.AppointmentRecord{
		completed("a1", "2025-01-08", 6000),
		completed("a2", "2025-01-09", 7000),
	}

	m := CheckMilestones("2025-01-09", appointments, nil, sandbox.Inactive())

	if m == nil {
		t.Fatal("Expected a milestone, got nil")
	}
	if m.Priority != revenuemodel.PriorityWeekPeak {
		t.Errorf("Expected week-peak priority %d, got %d", revenuemodel.PriorityWeekPeak, m.Priority)
	}
}

func TestCheckMilestones_MonthAvgUsesFixedThirtyDayDenominator(t *testing.T) {
	// One historical day at 6000 eight days back: outside the 7-day peak
	// window, inside the 30-day average. avg30 = 6000/30 = 200.
	appointments := []models.AppointmentRecord{
		completed("a1", "2025-01-01", 6000),
		completed("a2", "2025-01-09", 500),
	}

	m := CheckMilestones("2025-01-09", appointments, nil, sandbox.Inactive())

	if m == nil {
		t.Fatal("Expected a milestone, got nil")
	}
	if m.Priority != revenuemodel.PriorityMonthAvg {
		t.Errorf("Expected month-average priority %d, got %d", revenuemodel.PriorityMonthAvg, m.Priority)
	}
}

func TestCheckMilestones_ZeroBaselinesNeverBeaten(t *testing.T) {
	// First day of business: no history at all, so no baseline applies.
	appointments := []models.AppointmentRecord{
		completed("a1", "2025-01-09", 7000),
	}

	if m := CheckMilestones("2025-01-09", appointments, nil, sandbox.Inactive()); m != nil {
		t.Errorf("Expected nil milestone with zero baselines, got %+v", m)
	}
}

func TestCheckMilestones_NoRevenueReturnsNil(t *testing.T) {
	appointments := []models.AppointmentRecord{
		completed("a1", "2025-01-08", 6000),
		{AppointmentID: "a2", Date: "2025-01-09", Status: models.StatusCancelled, Amount: 7000},
	}

	if m := CheckMilestones("2025-01-09", appointments, nil, sandbox.Inactive()); m != nil {
		t.Errorf("Expected nil milestone on a zero-revenue day, got %+v", m)
	}
}

func TestCheckMilestones_EqualPeakFallsThroughToMonthAverage(t *testing.T) {
	// Matching the 7-day peak is not beating it; the check falls through
	// to the 30-day average, which 7000 does clear.
	appointments := []models.AppointmentRecord{
		completed("a1", "2025-01-08", 7000),
		completed("a2", "2025-01-09", 7000),
	}

	m := CheckMilestones("2025-01-09", appointments, nil, sandbox.Inactive())

	if m == nil {
		t.Fatal("Expected a milestone, got nil")
	}
	if m.Priority != revenuemodel.PriorityMonthAvg {
		t.Errorf("Expected month-average priority %d, got %d", revenuemodel.PriorityMonthAvg, m.Priority)
	}
}

func TestCheckMilestones_UnparseableDateReturnsNil(t *testing.T) {
	if m := CheckMilestones("not-a-date", nil, nil, sandbox.Inactive()); m != nil {
		t.Errorf("Expected nil for unparseable date, got %+v", m)
	}
}
