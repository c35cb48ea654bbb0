package forecast

import (
	"math"
	"strings"
	"time"

	"clinic-insight-server/models"
	model "clinic-insight-server/models/forecast"
	"clinic-insight-server/models/sandbox"
)

// defaultDemandBaseline is used when the lookback window before the
// estimation start holds no demand at all.
const defaultDemandBaseline = 15.0

const demandLookbackDays = 30

// Estimate produces one point per day in [start, end]. Days up to and
// including today carry observed actual/demand counts; later days carry
// an estimated visit count built from the demand baseline scaled by the
// seasonal factors in cfg and, when the sandbox is active, its growth
// assumption.
func Estimate(appointments []models.AppointmentRecord, cfg model.Config, sb sandbox.State, start, end, today string) ([]model.EstimationPoint, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, err
	}

	// Demand counts every booking attempt, cancelled included; actual
	// counts only realized visits.
	actualByDate := make(map[string]int)
	demandByDate := make(map[string]int)
	for _, a := range appointments {
		demandByDate[a.Date]++
		status := strings.ToLower(a.Status)
		if status == models.StatusCompleted || status == models.StatusCheckedIn {
			actualByDate[a.Date]++
		}
	}

	baseline := demandBaseline(demandByDate, startDate)
	growth := growthFactor(sb)

	var points []model.EstimationPoint
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(dateLayout)
		point := model.EstimationPoint{
			Date:      dateStr,
			DayOfWeek: int(d.Weekday()),
		}
		if dateStr <= today {
			point.Actual = actualByDate[dateStr]
			point.Demand = demandByDate[dateStr]
		} else {
			point.IsEstimation = true
			monthFactor := factorOrOne(cfg.MonthlyFactors, int(d.Month()))
			dayWeight := factorOrOne(cfg.DayWeights, int(d.Weekday()))
			point.Estimated = math.Round(baseline * growth * monthFactor * dayWeight)
		}
		points = append(points, point)
	}
	return points, nil
}

// demandBaseline averages daily demand over the 30 days before start,
// counting only days that saw at least one record.
func demandBaseline(demandByDate map[string]int, start time.Time) float64 {
	sum := 0
	days := 0
	for i := 1; i <= demandLookbackDays; i++ {
		dateStr := start.AddDate(0, 0, -i).Format(dateLayout)
		if c, ok := demandByDate[dateStr]; ok {
			sum += c
			days++
		}
	}
	if days == 0 {
		return defaultDemandBaseline
	}
	return float64(sum) / float64(days)
}

// growthFactor applies the sandbox growth assumption as a single
// multiplier: the mean growth across adjusted service categories.
func growthFactor(sb sandbox.State) float64 {
	if !sb.Active || len(sb.ServiceGrowth) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, g := range sb.ServiceGrowth {
		sum += g
	}
	return 1.0 + sum/float64(len(sb.ServiceGrowth))
}

func factorOrOne(factors map[int]float64, key int) float64 {
	if f, ok := factors[key]; ok {
		return f
	}
	return 1.0
}
