package util

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"clinic-insight-server/models"
)

// ReadAppointmentsFromJSON loads appointment records from JSON on disk.
func ReadAppointmentsFromJSON(filePath string) ([]models.AppointmentRecord, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var records []models.AppointmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal appointment records: %w", err)
	}
	return records, nil
}

// ReadServicesFromJSON loads the service catalog from JSON on disk.
func ReadServicesFromJSON(filePath string) ([]models.ServiceInfo, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var services []models.ServiceInfo
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("failed to unmarshal service catalog: %w", err)
	}
	return services, nil
}

// ReadCustomersFromJSON loads customer snapshots from JSON on disk.
func ReadCustomersFromJSON(filePath string) ([]models.Customer, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var customers []models.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customers: %w", err)
	}
	return customers, nil
}

// PrintAppointmentsPartially prints key fields of the first few records.
func PrintAppointmentsPartially(records []models.AppointmentRecord) {
	fmt.Printf("Appointments loaded: %d\n", len(records))
	for i, r := range records {
		if i >= 3 {
			break
		}
		fmt.Printf("  %s %s %s (%s) - %s\n", r.Date, r.Time, r.ServiceItem, r.Status, r.CustomerID)
	}
}
