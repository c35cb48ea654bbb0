package config

import (
	"os"
	"path/filepath"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Report refresher config
const REPORT_REFRESHER_SCHEDULE_MINUTES = 60

// Clinic Records API
const CLINIC_RECORDS_API_KEY = "crk_9c2a417bd53e4b0f8a12e6d0f47ab3c1"
const CLINIC_RECORDS_ENDPOINT_BASE_V1 = "https://records.clinic-insight.app/api/v1"

// HTTP server
const SERVER_ADDRESS = ":8080"

// Staffing defaults used for capacity when no roster override is given
var DefaultStaffCounts = map[string]int{
	"doctor":     3,
	"nurse":      4,
	"therapist":  4,
	"consultant": 2,
}

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const APPOINTMENTS_RESOURCE = "appointments.json"
const SERVICES_RESOURCE = "services.json"
const CUSTOMERS_RESOURCE = "customers.json"

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
