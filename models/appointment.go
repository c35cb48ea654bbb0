package models

import "fmt"

// Appointment status values as they appear in the clinic export.
// Status comparisons are always done on the lower-cased value.
const (
	StatusBooked    = "booked"
	StatusCheckedIn = "checked_in"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
	StatusPaid      = "paid"
)

// AppointmentRecord represents one row of the clinic's appointment data.
type AppointmentRecord struct {
	AppointmentID string `json:"appointment_id"`
	Date          string `json:"date"` // YYYY-MM-DD
	Time          string `json:"time"` // HH:mm or HH:mm:ss
	Status        string `json:"status"`

	DoctorName        string `json:"doctor_name,omitempty"`
	AssistantRole     string `json:"assistant_role,omitempty"`
	ServiceItem       string `json:"service_item,omitempty"`
	PurchasedServices string `json:"purchased_services,omitempty"` // ";"-separated list
	CustomerID        string `json:"customer_id,omitempty"`

	IsNew     string  `json:"is_new,omitempty"`
	Room      string  `json:"room,omitempty"`
	Equipment string  `json:"equipment,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
}

func (a *AppointmentRecord) ToString() string {
	return fmt.Sprintf("AppointmentRecord(id=%s, date=%s, time=%s, status=%s, service=%s)",
		a.AppointmentID, a.Date, a.Time, a.Status, a.ServiceItem)
}
