package redis

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"clinic-insight-server/db"
	"clinic-insight-server/models"
	forecastmodel "clinic-insight-server/models/forecast"
	revenuemodel "clinic-insight-server/models/revenue"
	riskmodel "clinic-insight-server/models/risk"
)

const APPOINTMENT_KEY_FORMAT_V1 = "appointment_v1:%s"
const SERVICE_KEY_FORMAT_V1 = "service_v1:%s"
const CUSTOMER_KEY_FORMAT_V1 = "customer_v1:%s"

// RISK_REPORT_KEY_FORMAT is used to cache risk reports per week window.
const RISK_REPORT_KEY_FORMAT = "risk_report_v1:%s"
const MILESTONE_KEY_FORMAT = "milestone_v1:%s"
const FORECAST_CONFIG_KEY_FORMAT = "forecast_config_v1:%s_%s"

// RedisClinicDAO handles clinic record operations using Redis.
type RedisClinicDAO struct {
	client db.RedisClient
}

// NewRedisClinicDAO initializes a RedisClinicDAO with the Redis client.
func NewRedisClinicDAO(client db.RedisClient) *RedisClinicDAO {
	return &RedisClinicDAO{client: client}
}

// UpsertAppointment stores an appointment record keyed by its ID.
func (dao *RedisClinicDAO) UpsertAppointment(a models.AppointmentRecord) error {
	key := fmt.Sprintf(APPOINTMENT_KEY_FORMAT_V1, a.AppointmentID)
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal appointment %s: %w", a.AppointmentID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set appointment in redis: %w", err)
	}
	return nil
}

// ListAppointments returns all stored appointment records, ordered by
// date, time, then ID so callers see a stable sequence.
func (dao *RedisClinicDAO) ListAppointments() ([]models.AppointmentRecord, error) {
	pattern := fmt.Sprintf(APPOINTMENT_KEY_FORMAT_V1, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment keys: %w", err)
	}

	records := make([]models.AppointmentRecord, 0, len(keys))
	for _, k := range keys {
		str, err := dao.client.Get(k)
		if err != nil {
			log.Printf("[RedisClinicDAO] Skipping key %s due to error: %v", k, err)
			continue
		}
		var r models.AppointmentRecord
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal appointment JSON: %w", err)
		}
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		if records[i].Time != records[j].Time {
			return records[i].Time < records[j].Time
		}
		return records[i].AppointmentID < records[j].AppointmentID
	})
	return records, nil
}

// UpsertService stores a service catalog entry keyed by its name.
func (dao *RedisClinicDAO) UpsertService(s models.ServiceInfo) error {
	key := fmt.Sprintf(SERVICE_KEY_FORMAT_V1, s.ServiceName)
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal service %s: %w", s.ServiceName, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set service in redis: %w", err)
	}
	return nil
}

// ListServices returns the stored service catalog, ordered by name.
func (dao *RedisClinicDAO) ListServices() ([]models.ServiceInfo, error) {
	pattern := fmt.Sprintf(SERVICE_KEY_FORMAT_V1, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list service keys: %w", err)
	}

	services := make([]models.ServiceInfo, 0, len(keys))
	for _, k := range keys {
		str, err := dao.client.Get(k)
		if err != nil {
			log.Printf("[RedisClinicDAO] Skipping key %s due to error: %v", k, err)
			continue
		}
		var s models.ServiceInfo
		if err := json.Unmarshal([]byte(str), &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal service JSON: %w", err)
		}
		services = append(services, s)
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].ServiceName < services[j].ServiceName
	})
	return services, nil
}

// UpsertCustomer stores a customer snapshot keyed by its ID.
func (dao *RedisClinicDAO) UpsertCustomer(c models.Customer) error {
	key := fmt.Sprintf(CUSTOMER_KEY_FORMAT_V1, c.ID)
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal customer %s: %w", c.ID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set customer in redis: %w", err)
	}
	return nil
}

// ListCustomers returns all stored customer snapshots, ordered by ID.
func (dao *RedisClinicDAO) ListCustomers() ([]models.Customer, error) {
	pattern := fmt.Sprintf(CUSTOMER_KEY_FORMAT_V1, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer keys: %w", err)
	}

	customers := make([]models.Customer, 0, len(keys))
	for _, k := range keys {
		str, err := dao.client.Get(k)
		if err != nil {
			log.Printf("[RedisClinicDAO] Skipping key %s due to error: %v", k, err)
			continue
		}
		var c models.Customer
		if err := json.Unmarshal([]byte(str), &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal customer JSON: %w", err)
		}
		customers = append(customers, c)
	}

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].ID < customers[j].ID
	})
	return customers, nil
}

// SetRiskReport caches a risk report under its week window label.
func (dao *RedisClinicDAO) SetRiskReport(window string, report *riskmodel.Report) error {
	key := fmt.Sprintf(RISK_REPORT_KEY_FORMAT, window)
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal risk report for window %s: %w", window, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set risk report in redis: %w", err)
	}
	return nil
}

// GetRiskReport retrieves the cached risk report for a week window.
func (dao *RedisClinicDAO) GetRiskReport(window string) (*riskmodel.Report, error) {
	key := fmt.Sprintf(RISK_REPORT_KEY_FORMAT, window)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get risk report from redis: %w", err)
	}
	var report riskmodel.Report
	if err := json.Unmarshal([]byte(str), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal risk report JSON: %w", err)
	}
	return &report, nil
}

// ListCachedRiskWindows returns the window labels of all cached risk reports.
func (dao *RedisClinicDAO) ListCachedRiskWindows() ([]string, error) {
	// pattern matches the prefix used in SetRiskReport
	pattern := "risk_report_v1:*"
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list risk report keys: %w", err)
	}

	windows := make([]string, 0, len(keys))
	for _, k := range keys {
		// strip the prefix to get the raw window label
		windows = append(windows, strings.TrimPrefix(k, "risk_report_v1:"))
	}
	sort.Strings(windows)
	return windows, nil
}

// SetMilestone caches the milestone detected for a date.
func (dao *RedisClinicDAO) SetMilestone(m *revenuemodel.Milestone) error {
	key := fmt.Sprintf(MILESTONE_KEY_FORMAT, m.Date)
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal milestone for %s: %w", m.Date, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set milestone in redis: %w", err)
	}
	return nil
}

// GetMilestone retrieves the cached milestone for a date.
func (dao *RedisClinicDAO) GetMilestone(date string) (*revenuemodel.Milestone, error) {
	key := fmt.Sprintf(MILESTONE_KEY_FORMAT, date)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get milestone from redis: %w", err)
	}
	var m revenuemodel.Milestone
	if err := json.Unmarshal([]byte(str), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal milestone JSON: %w", err)
	}
	return &m, nil
}

func (dao *RedisClinicDAO) DeleteMilestone(date string) error {
	key := fmt.Sprintf(MILESTONE_KEY_FORMAT, date)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete milestone key %s: %w", key, err)
	}
	log.Printf("[RedisClinicDAO] Deleted milestone cache for %s", date)
	return nil
}

// SetForecastConfig caches the forecast baselines for a history window.
func (dao *RedisClinicDAO) SetForecastConfig(start, end string, cfg forecastmodel.Config) error {
	key := fmt.Sprintf(FORECAST_CONFIG_KEY_FORMAT, start, end)
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal forecast config for %s_%s: %w", start, end, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set forecast config in redis: %w", err)
	}
	return nil
}

// GetForecastConfig retrieves the cached forecast baselines for a window.
func (dao *RedisClinicDAO) GetForecastConfig(start, end string) (*forecastmodel.Config, error) {
	key := fmt.Sprintf(FORECAST_CONFIG_KEY_FORMAT, start, end)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast config from redis: %w", err)
	}
	var cfg forecastmodel.Config
	if err := json.Unmarshal([]byte(str), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal forecast config JSON: %w", err)
	}
	return &cfg, nil
}
