package models

// Service intensity classifications from the services catalog.
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// ServiceInfo describes one entry of the clinic's services catalog.
type ServiceInfo struct {
	ServiceName    string  `json:"service_name"`
	Category       string  `json:"category"` // laser / inject / rf / consult / drip / facial ...
	Price          float64 `json:"price"`
	Duration       int     `json:"duration"`    // operating time in minutes
	BufferTime     int     `json:"buffer_time"` // turnaround buffer in minutes
	IntensityLevel string  `json:"intensity_level,omitempty"`
	ExecutorRole   string  `json:"executor_role,omitempty"`
}

// WorkMinutes is the total slot time one booking of this service occupies.
func (s *ServiceInfo) WorkMinutes() int {
	return s.Duration + s.BufferTime
}
