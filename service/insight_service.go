package services

import (
	"fmt"
	"time"

	"clinic-insight-server/analytics/aggregate"
	"clinic-insight-server/analytics/forecast"
	"clinic-insight-server/analytics/insight"
	"clinic-insight-server/analytics/revenue"
	"clinic-insight-server/analytics/risk"
	"clinic-insight-server/config"
	"clinic-insight-server/dao/redis"
	"clinic-insight-server/models"
	forecastmodel "clinic-insight-server/models/forecast"
	insightmodel "clinic-insight-server/models/insight"
	revenuemodel "clinic-insight-server/models/revenue"
	riskmodel "clinic-insight-server/models/risk"
	"clinic-insight-server/models/sandbox"
)

const dateLayout = "2006-01-02"

// InsightService runs the analytics engines over the records stored in
// the DAO. All report methods take their time window explicitly so
// results are reproducible.
type InsightService struct {
	clinicDao *redis.RedisClinicDAO
}

// NewInsightService constructs a new InsightService with its DAO dependency.
func NewInsightService(clinicDao *redis.RedisClinicDAO) *InsightService {
	return &InsightService{clinicDao: clinicDao}
}

// StaffRiskReport builds the weekly staffing risk report for the
// [startDate, endDate] window.
func (is *InsightService) StaffRiskReport(startDate, endDate string, sb sandbox.State) (*riskmodel.Report, error) {
	appointments, services, err := is.loadRecords()
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return nil, fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}

	var windowed []models.AppointmentRecord
	for _, a := range appointments {
		if a.Date >= startDate && a.Date <= endDate {
			windowed = append(windowed, a)
		}
	}

	utilization := aggregate.BuildRoleUtilization(windowed, services, config.DefaultStaffCounts, days, sb)
	aggregates := aggregate.BuildWeeklyAggregates(windowed, services)
	windowLabel := startDate + "_" + endDate

	return risk.Analyze(utilization, aggregates, windowLabel)
}

// CachedStaffRiskReport returns the most recently cached risk report,
// or nil when nothing has been cached yet.
func (is *InsightService) CachedStaffRiskReport() (*riskmodel.Report, error) {
	windows, err := is.clinicDao.ListCachedRiskWindows()
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}
	// windows sort lexicographically, which for YYYY-MM-DD labels is
	// chronological; the last one is the current week.
	return is.clinicDao.GetRiskReport(windows[len(windows)-1])
}

// RevenueMilestone checks the target date against the revenue baselines.
// A nil milestone means nothing was beaten.
func (is *InsightService) RevenueMilestone(targetDate string, sb sandbox.State) (*revenuemodel.Milestone, error) {
	appointments, services, err := is.loadRecords()
	if err != nil {
		return nil, err
	}
	return revenue.CheckMilestones(targetDate, appointments, services, sb), nil
}

// CustomerSegments partitions the stored customer base into RFM value
// segments.
func (is *InsightService) CustomerSegments() (map[string][]models.Customer, error) {
	customers, err := is.clinicDao.ListCustomers()
	if err != nil {
		return nil, err
	}
	return insight.SegmentCustomers(customers), nil
}

// ChurnRisks scores every stored customer's churn risk as of now.
func (is *InsightService) ChurnRisks(now time.Time) ([]insightmodel.ChurnRiskResult, error) {
	customers, err := is.clinicDao.ListCustomers()
	if err != nil {
		return nil, err
	}
	return insight.ChurnRisks(customers, now), nil
}

// CustomerOverview splits the window's visitors into new vs. returning.
func (is *InsightService) CustomerOverview(startDate, endDate string) (insightmodel.CustomerOverview, error) {
	appointments, err := is.clinicDao.ListAppointments()
	if err != nil {
		return insightmodel.CustomerOverview{}, err
	}
	return insight.CustomerOverview(appointments, startDate, endDate), nil
}

// ForecastConfig derives the demand baselines from the stored history
// window, caching the result per window.
func (is *InsightService) ForecastConfig(startDate, endDate string) (forecastmodel.Config, error) {
	if cached, err := is.clinicDao.GetForecastConfig(startDate, endDate); err == nil {
		return *cached, nil
	}

	appointments, err := is.clinicDao.ListAppointments()
	if err != nil {
		return forecastmodel.Config{}, err
	}
	cfg := forecast.BuildConfig(appointments, startDate, endDate)
	if err := is.clinicDao.SetForecastConfig(startDate, endDate, cfg); err != nil {
		return forecastmodel.Config{}, err
	}
	return cfg, nil
}

// ForecastEstimate builds the daily estimation series for [startDate,
// endDate], using baselines derived from the trailing history.
func (is *InsightService) ForecastEstimate(startDate, endDate, today string, sb sandbox.State) ([]forecastmodel.EstimationPoint, error) {
	appointments, err := is.clinicDao.ListAppointments()
	if err != nil {
		return nil, err
	}
	cfg := forecast.BuildConfig(appointments, historyStart(startDate), today)
	return forecast.Estimate(appointments, cfg, sb, startDate, endDate, today)
}

func (is *InsightService) loadRecords() ([]models.AppointmentRecord, []models.ServiceInfo, error) {
	appointments, err := is.clinicDao.ListAppointments()
	if err != nil {
		return nil, nil, err
	}
	services, err := is.clinicDao.ListServices()
	if err != nil {
		return nil, nil, err
	}
	return appointments, services, nil
}

// historyStart is one year before the estimation start, enough history
// to populate every monthly factor.
func historyStart(startDate string) string {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return startDate
	}
	return start.AddDate(-1, 0, 0).Format(dateLayout)
}
