package forecast

import (
	"math"
	"testing"

	"clinic-insight-server/models"
)

func record(date, status string) models.AppointmentRecord {
	return models.AppointmentRecord{Date: date, Status: status}
}

func TestBuildConfig_RealizationRate(t *testing.T) {
	appointments := []models.AppointmentRecord{
		record("2025-01-06", models.StatusCompleted),
		record("2025-01-06", models.StatusCheckedIn),
		record("2025-01-07", models.StatusBooked),
		record("2025-01-07", models.StatusNoShow),
		record("2025-01-07", models.StatusCancelled), // excluded from denominator
	}

	cfg := BuildConfig(appointments, "2025-01-01", "2025-01-31")

	// realized 2 of 4 non-cancelled
	if cfg.RealizationRate != 0.5 {
		t.Errorf("Expected realization rate 0.5, got %.2f", cfg.RealizationRate)
	}
}

func TestBuildConfig_AverageExcludesAbsentDays(t *testing.T) {
	// Realized visits on two days only; absent days do not drag the
	// average down.
	appointments := []models.AppointmentRecord{
		record("2025-01-06", models.StatusCompleted),
		record("2025-01-06", models.StatusCompleted),
		record("2025-01-08", models.StatusCompleted),
		record("2025-01-10", models.StatusBooked), // not realized
	}

	cfg := BuildConfig(appointments, "2025-01-01", "2025-01-31")

	if cfg.AverageDailyBase != 1.5 {
		t.Errorf("Expected average daily base 1.5, got %.2f", cfg.AverageDailyBase)
	}
}

func TestBuildConfig_MonthsWithoutDataDefaultToOne(t *testing.T) {
	appointments := []models.AppointmentRecord{
		record("2025-01-06", models.StatusCompleted),
		record("2025-01-07", models.StatusCompleted),
	}

	cfg := BuildConfig(appointments, "2025-01-01", "2025-12-31")

	if cfg.MonthlyFactors[2] != 1.0 {
		t.Errorf("Expected neutral factor for February, got %.2f", cfg.MonthlyFactors[2])
	}
	if len(cfg.MonthlyFactors) != 12 {
		t.Errorf("Expected 12 monthly factors, got %d", len(cfg.MonthlyFactors))
	}
	if len(cfg.DayWeights) != 7 {
		t.Errorf("Expected 7 day weights, got %d", len(cfg.DayWeights))
	}
}

func TestBuildConfig_DayWeightsRelativeToBase(t *testing.T) {
	// Mondays carry 3 realized visits, Tuesdays 1; base is 2.
	appointments := []models.AppointmentRecord{
		record("2025-01-06", models.StatusCompleted), // Monday
		record("2025-01-06", models.StatusCompleted),
		record("2025-01-06", models.StatusCompleted),
		record("2025-01-07", models.StatusCompleted), // Tuesday
	}

	cfg := BuildConfig(appointments, "2025-01-01", "2025-01-31")

	if cfg.AverageDailyBase != 2.0 {
		t.Fatalf("Expected base 2.0, got %.2f", cfg.AverageDailyBase)
	}
	if math.Abs(cfg.DayWeights[1]-1.5) > 1e-9 { // Monday
		t.Errorf("Expected Monday weight 1.5, got %.2f", cfg.DayWeights[1])
	}
	if math.Abs(cfg.DayWeights[2]-0.5) > 1e-9 { // Tuesday
		t.Errorf("Expected Tuesday weight 0.5, got %.2f", cfg.DayWeights[2])
	}
}

func TestBuildConfig_MonthlyFactorsAverageToOne(t *testing.T) {
	// Equal day coverage in January (2/day) and February (4/day); factors
	// over months with data should center on 1.0.
	var appointments []models.AppointmentRecord
	for _, date := range []string{"2025-01-06", "2025-01-07", "2025-01-08"} {
		appointments = append(appointments, record(date, models.StatusCompleted), record(date, models.StatusCompleted))
	}
	for _, date := range []string{"2025-02-03", "2025-02-04", "2025-02-05"} {
		for i := 0; i < 4; i++ {
			appointments = append(appointments, record(date, models.StatusCompleted))
		}
	}

	cfg := BuildConfig(appointments, "2025-01-01", "2025-02-28")

	if cfg.AverageDailyBase != 3.0 {
		t.Fatalf("Expected base 3.0, got %.2f", cfg.AverageDailyBase)
	}
	mean := (cfg.MonthlyFactors[1] + cfg.MonthlyFactors[2]) / 2
	if math.Abs(mean-1.0) > 1e-9 {
		t.Errorf("Expected populated monthly factors to average 1.0, got %.4f", mean)
	}
}

func TestBuildConfig_EmptyInput(t *testing.T) {
	cfg := BuildConfig(nil, "2025-01-01", "2025-01-31")

	if cfg.RealizationRate != 0 {
		t.Errorf("Expected zero realization rate, got %.2f", cfg.RealizationRate)
	}
	if cfg.AverageDailyBase != 0 {
		t.Errorf("Expected zero base, got %.2f", cfg.AverageDailyBase)
	}
	for m := 1; m <= 12; m++ {
		if cfg.MonthlyFactors[m] != 1.0 {
			t.Errorf("Expected neutral factor for month %d, got %.2f", m, cfg.MonthlyFactors[m])
		}
	}
}

func TestBuildConfig_WindowFilter(t *testing.T) {
	appointments := []models.AppointmentRecord{
		record("2024-12-31", models.StatusCompleted), // before window
		record("2025-01-06", models.StatusCompleted),
		record("2025-02-01", models.StatusCompleted), // after window
	}

	cfg := BuildConfig(appointments, "2025-01-01", "2025-01-31")

	if cfg.AverageDailyBase != 1.0 {
		t.Errorf("Expected base 1.0 from the single in-window day, got %.2f", cfg.AverageDailyBase)
	}
}
