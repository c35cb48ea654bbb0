package records

import (
	"fmt"

	"clinic-insight-server/config"
	"clinic-insight-server/models"
	"clinic-insight-server/util"
)

// ClinicRecordsApiClientMock serves fixture records from disk
type ClinicRecordsApiClientMock struct {
}

// NewClinicRecordsApiClientMock creates a new instance of ClinicRecordsApiClientMock
func NewClinicRecordsApiClientMock() *ClinicRecordsApiClientMock {
	return &ClinicRecordsApiClientMock{}
}

// SetCredentials is a no-op for the mock
func (c *ClinicRecordsApiClientMock) SetCredentials(apiKey string) {
}

// GetAppointments returns the fixture records that fall within the date range
func (c *ClinicRecordsApiClientMock) GetAppointments(startDate, endDate string) ([]models.AppointmentRecord, error) {
	records, err := util.ReadAppointmentsFromJSON(config.GetResourcePath(config.APPOINTMENTS_RESOURCE))
	if err != nil {
		fmt.Println("Could not read appointments fixture from json")
		return nil, err
	}

	filtered := make([]models.AppointmentRecord, 0, len(records))
	for _, r := range records {
		if r.Date >= startDate && r.Date <= endDate {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// GetServices returns the fixture service catalog
func (c *ClinicRecordsApiClientMock) GetServices() ([]models.ServiceInfo, error) {
	services, err := util.ReadServicesFromJSON(config.GetResourcePath(config.SERVICES_RESOURCE))
	if err != nil {
		fmt.Println("Could not read services fixture from json")
		return nil, err
	}
	return services, nil
}

// GetCustomers returns the fixture customer snapshots
func (c *ClinicRecordsApiClientMock) GetCustomers() ([]models.Customer, error) {
	customers, err := util.ReadCustomersFromJSON(config.GetResourcePath(config.CUSTOMERS_RESOURCE))
	if err != nil {
		fmt.Println("Could not read customers fixture from json")
		return nil, err
	}
	return customers, nil
}
