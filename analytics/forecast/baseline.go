package forecast

import (
	"strings"
	"time"

	"clinic-insight-server/models"
	model "clinic-insight-server/models/forecast"
)

const dateLayout = "2006-01-02"

// BuildConfig derives the forecast baselines from historical records in
// the [start, end] window.
//
// realizationRate is realized / (total - cancelled), where realized means
// completed or checked-in. Daily counts come from realized records only;
// days with no realized record are absent, not zero, so averageDailyBase
// reads "mean over days the clinic actually saw realized visits". That is
// deliberately different from the milestone detector's 30-day average,
// which counts absent days as zero revenue.
func BuildConfig(appointments []models.AppointmentRecord, start, end string) model.Config {
	totalNonCancelled := 0
	realized := 0
	dailyCounts := make(map[string]int)

	for _, a := range appointments {
		if a.Date < start || a.Date > end {
			continue
		}
		status := strings.ToLower(a.Status)
		if status == models.StatusCancelled {
			continue
		}
		totalNonCancelled++
		if status == models.StatusCompleted || status == models.StatusCheckedIn {
			realized++
			dailyCounts[a.Date]++
		}
	}

	cfg := model.Config{
		MonthlyFactors: neutralFactors(1, 12),
		DayWeights:     neutralFactors(0, 6),
	}
	if totalNonCancelled > 0 {
		cfg.RealizationRate = float64(realized) / float64(totalNonCancelled)
	}
	if len(dailyCounts) == 0 {
		return cfg
	}

	sum := 0
	for _, c := range dailyCounts {
		sum += c
	}
	cfg.AverageDailyBase = float64(sum) / float64(len(dailyCounts))

	monthSums := make(map[int]int)
	monthDays := make(map[int]int)
	daySums := make(map[int]int)
	dayDays := make(map[int]int)

	for dateStr, count := range dailyCounts {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			continue
		}
		m := int(date.Month())
		d := int(date.Weekday())
		monthSums[m] += count
		monthDays[m]++
		daySums[d] += count
		dayDays[d]++
	}

	for m := 1; m <= 12; m++ {
		if monthDays[m] > 0 && cfg.AverageDailyBase > 0 {
			avg := float64(monthSums[m]) / float64(monthDays[m])
			cfg.MonthlyFactors[m] = avg / cfg.AverageDailyBase
		}
	}
	for d := 0; d <= 6; d++ {
		if dayDays[d] > 0 && cfg.AverageDailyBase > 0 {
			avg := float64(daySums[d]) / float64(dayDays[d])
			cfg.DayWeights[d] = avg / cfg.AverageDailyBase
		}
	}
	return cfg
}

func neutralFactors(from, to int) map[int]float64 {
	factors := make(map[int]float64, to-from+1)
	for i := from; i <= to; i++ {
		factors[i] = 1.0
	}
	return factors
}
