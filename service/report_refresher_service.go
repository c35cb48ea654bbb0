package services

import (
	"log"
	"time"

	"clinic-insight-server/analytics/insight"
	"clinic-insight-server/analytics/revenue"
	"clinic-insight-server/api/records"
	"clinic-insight-server/dao/redis"
	"clinic-insight-server/models/sandbox"
	"clinic-insight-server/util"
)

// ReportRefresherService periodically pulls fresh records from the
// clinic records API and recomputes the cached reports.
type ReportRefresherService struct {
	clinicDao      *redis.RedisClinicDAO
	recordsAPI     records.ClinicRecordsAPI
	insightService *InsightService
}

// NewReportRefresherService constructs a new Refresher with dependencies.
func NewReportRefresherService(
	clinicDao *redis.RedisClinicDAO,
	recordsAPI records.ClinicRecordsAPI,
	insightService *InsightService,
) *ReportRefresherService {
	return &ReportRefresherService{
		clinicDao:      clinicDao,
		recordsAPI:     recordsAPI,
		insightService: insightService,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
func (rr *ReportRefresherService) StartPeriodicJob(interval time.Duration) {
	go rr.startPeriodicJob(interval)
}

func (rr *ReportRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[ReportRefresherService] Running periodic report refresher job.")
		if err := rr.RefreshReports(time.Now()); err != nil {
			log.Printf("[ReportRefresherService] RefreshReports returned error: %v", err)
		} else {
			log.Println("[ReportRefresherService] RefreshReports completed successfully.")
		}
	}
}

// RefreshReports orchestrates the three steps: fetch fresh records,
// upsert them into the store, recompute the cached reports.
func (rr *ReportRefresherService) RefreshReports(now time.Time) error {
	weekStart, weekEnd := weekRange(now)
	today := now.Format(dateLayout)

	// 1) Fetch records covering the current reporting horizon.
	fetchStart := now.AddDate(-1, 0, 0).Format(dateLayout)
	if err := rr.ingestRecords(fetchStart, weekEnd); err != nil {
		return err
	}

	// 2) Recompute and cache this week's risk report.
	report, err := rr.insightService.StaffRiskReport(weekStart, weekEnd, sandbox.Inactive())
	if err != nil {
		return err
	}
	if err := rr.clinicDao.SetRiskReport(weekStart+"_"+weekEnd, report); err != nil {
		return err
	}
	log.Printf("[ReportRefresherService] Cached risk report for window %s_%s", weekStart, weekEnd)

	// 3) Recompute today's milestone; drop the stale cache entry when
	// today no longer qualifies.
	milestone, err := rr.insightService.RevenueMilestone(today, sandbox.Inactive())
	if err != nil {
		return err
	}
	if milestone == nil {
		if err := rr.clinicDao.DeleteMilestone(today); err != nil {
			log.Printf("[ReportRefresherService] Failed to delete stale milestone for %s: %v", today, err)
		}
	} else {
		if err := rr.clinicDao.SetMilestone(milestone); err != nil {
			return err
		}
		log.Printf("[ReportRefresherService] Cached milestone for %s (priority %d)", today, milestone.Priority)
	}

	// 4) Re-render the dashboard charts.
	rr.renderCharts(now)
	return nil
}

// renderCharts writes the revenue and estimation charts next to the
// binary. Chart failures are logged rather than returned: the cached
// JSON reports are the primary output of a refresh.
func (rr *ReportRefresherService) renderCharts(now time.Time) {
	appointments, err := rr.clinicDao.ListAppointments()
	if err != nil {
		log.Printf("[ReportRefresherService] Skipping charts, could not list appointments: %v", err)
		return
	}
	services, err := rr.clinicDao.ListServices()
	if err != nil {
		log.Printf("[ReportRefresherService] Skipping charts, could not list services: %v", err)
		return
	}

	daily := revenue.DailyRevenue(appointments, services, sandbox.Inactive())
	if err := util.PlotRevenueSeries(daily, "revenue_series.html"); err != nil {
		log.Printf("[ReportRefresherService] Failed to render revenue chart: %v", err)
	}

	today := now.Format(dateLayout)
	horizonEnd := now.AddDate(0, 0, 13).Format(dateLayout)
	points, err := rr.insightService.ForecastEstimate(today, horizonEnd, today, sandbox.Inactive())
	if err != nil {
		log.Printf("[ReportRefresherService] Failed to build estimation series: %v", err)
		return
	}
	if err := util.PlotEstimation(points, "appointment_estimation.html"); err != nil {
		log.Printf("[ReportRefresherService] Failed to render estimation chart: %v", err)
	}
}

// ingestRecords pulls appointments, the service catalog and customer
// snapshots from the records API and upserts them into the store. A
// missing customer feed is tolerated: snapshots can be rebuilt from the
// appointment history.
func (rr *ReportRefresherService) ingestRecords(startDate, endDate string) error {
	appointments, err := rr.recordsAPI.GetAppointments(startDate, endDate)
	if err != nil {
		return err
	}
	log.Printf("[ReportRefresherService] Fetched %d appointment records", len(appointments))
	for _, a := range appointments {
		if err := rr.clinicDao.UpsertAppointment(a); err != nil {
			log.Printf("[ReportRefresherService] Upsert failed for appointment %s: %v", a.AppointmentID, err)
		}
	}

	services, err := rr.recordsAPI.GetServices()
	if err != nil {
		return err
	}
	for _, s := range services {
		if err := rr.clinicDao.UpsertService(s); err != nil {
			log.Printf("[ReportRefresherService] Upsert failed for service %s: %v", s.ServiceName, err)
		}
	}

	customers, err := rr.recordsAPI.GetCustomers()
	if err != nil {
		log.Printf("[ReportRefresherService] Customer feed unavailable, rebuilding snapshots: %v", err)
		stored, listErr := rr.clinicDao.ListAppointments()
		if listErr != nil {
			return listErr
		}
		customers = insight.BuildCustomerSnapshots(stored)
	}
	for _, c := range customers {
		if err := rr.clinicDao.UpsertCustomer(c); err != nil {
			log.Printf("[ReportRefresherService] Upsert failed for customer %s: %v", c.ID, err)
		}
	}
	return nil
}

// weekRange returns the Monday..Sunday window containing t.
func weekRange(t time.Time) (string, string) {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	monday := t.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(dateLayout), sunday.Format(dateLayout)
}
