package records

import (
	"net/url"

	"clinic-insight-server/api"
	"clinic-insight-server/models"
)

// ClinicRecordsApiClient embeds the common HTTPClient
type ClinicRecordsApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
	apiKey          string
}

// NewClinicRecordsApiClient creates a new instance of ClinicRecordsApiClient
func NewClinicRecordsApiClient(httpClient *api.HTTPClient) *ClinicRecordsApiClient {
	return &ClinicRecordsApiClient{
		HTTPClient: httpClient,
	}
}

// SetCredentials stores the API key sent with every request
func (c *ClinicRecordsApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

func (c *ClinicRecordsApiClient) headers() map[string]string {
	return map[string]string{"X-Api-Key": c.apiKey}
}

// GetAppointments retrieves appointment records within a date range
func (c *ClinicRecordsApiClient) GetAppointments(startDate, endDate string) ([]models.AppointmentRecord, error) {
	var response []models.AppointmentRecord
	endpoint := "/appointments?start=" + url.QueryEscape(startDate) + "&end=" + url.QueryEscape(endDate)
	err := c.Request("GET", endpoint, c.headers(), nil, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetServices retrieves the service catalog
func (c *ClinicRecordsApiClient) GetServices() ([]models.ServiceInfo, error) {
	var response []models.ServiceInfo
	err := c.Request("GET", "/services", c.headers(), nil, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetCustomers retrieves customer snapshots
func (c *ClinicRecordsApiClient) GetCustomers() ([]models.Customer, error) {
	var response []models.Customer
	err := c.Request("GET", "/customers", c.headers(), nil, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}
