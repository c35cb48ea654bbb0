package revenue

import (
	"strings"
	"time"

	"clinic-insight-server/models"
	model "clinic-insight-server/models/revenue"
	"clinic-insight-server/models/sandbox"
	"clinic-insight-server/util"
)

const dateLayout = "2006-01-02"

// DailyRevenue builds the date -> revenue map over completed appointments
// only. The recorded amount wins; when it is absent the catalog price of
// the booked service is used, scaled by the sandbox growth rate for its
// category when the simulation is active. Records whose monetary value
// cannot be resolved contribute zero.
func DailyRevenue(
	appointments []models.AppointmentRecord,
	services []models.ServiceInfo,
	sb sandbox.State,
) map[string]float64 {

	catalog := make(map[string]models.ServiceInfo, len(services))
	for _, s := range services {
		catalog[s.ServiceName] = s
	}

	daily := make(map[string]float64)
	for _, a := range appointments {
		if strings.ToLower(a.Status) != models.StatusCompleted || a.Date == "" {
			continue
		}
		amount := a.Amount
		if amount == 0 {
			if svc, found := catalog[a.ServiceItem]; found {
				amount = svc.Price * (1 + sb.GrowthFor(svc.Category))
			}
		}
		daily[a.Date] += amount
	}
	return daily
}

// CheckMilestones tests the target date's revenue against three
// historical baselines, each excluding the target date itself:
//
//	priority 3: same calendar date one year earlier (YoY)
//	priority 2: highest single day of the trailing 7 days
//	priority 1: trailing 30-day average, absent days counted as zero
//
// The first baseline beaten wins; a zero baseline never counts as beaten.
// A day with no revenue returns nil.
func CheckMilestones(
	targetDate string,
	appointments []models.AppointmentRecord,
	services []models.ServiceInfo,
	sb sandbox.State,
) *model.Milestone {

	target, err := time.Parse(dateLayout, targetDate)
	if err != nil {
		return nil
	}

	daily := DailyRevenue(appointments, services, sb)

	todayRevenue := daily[targetDate]
	if todayRevenue <= 0 {
		return nil
	}

	// Trailing 30-day average. Days without data count as zero revenue,
	// so the denominator is always 30.
	sum30 := 0.0
	for i := 1; i <= 30; i++ {
		sum30 += daily[target.AddDate(0, 0, -i).Format(dateLayout)]
	}
	avg30 := sum30 / 30

	max7 := 0.0
	for i := 1; i <= 7; i++ {
		if v := daily[target.AddDate(0, 0, -i).Format(dateLayout)]; v > max7 {
			max7 = v
		}
	}

	lastYear := daily[target.AddDate(-1, 0, 0).Format(dateLayout)]

	title := "daily revenue " + util.FormatCompactNT(todayRevenue)

	if lastYear > 0 && todayRevenue > lastYear {
		return &model.Milestone{
			Triggered:   true,
			Date:        targetDate,
			Title:       title,
			Description: "today's revenue beat the same day last year (YoY); strong growth momentum",
			Priority:    model.PriorityYoY,
		}
	}
	if max7 > 0 && todayRevenue > max7 {
		return &model.Milestone{
			Triggered:   true,
			Date:        targetDate,
			Title:       title,
			Description: "today's revenue beat last week's single-day peak",
			Priority:    model.PriorityWeekPeak,
		}
	}
	if avg30 > 0 && todayRevenue > avg30 {
		return &model.Milestone{
			Triggered:   true,
			Date:        targetDate,
			Title:       title,
			Description: "today's revenue runs above the 30-day daily average",
			Priority:    model.PriorityMonthAvg,
		}
	}
	return nil
}
