package records

import (
	"clinic-insight-server/models"
)

// ClinicRecordsAPI defines the interface for fetching clinic records
// from the upstream records service
type ClinicRecordsAPI interface {
	GetAppointments(startDate, endDate string) ([]models.AppointmentRecord, error)
	GetServices() ([]models.ServiceInfo, error)
	GetCustomers() ([]models.Customer, error)
	SetCredentials(apiKey string)
}
