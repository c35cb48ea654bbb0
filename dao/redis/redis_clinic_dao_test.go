package redis

import (
	"context"
	"encoding/json"
	"testing"

	"clinic-insight-server/db"
	"clinic-insight-server/models"
	revenuemodel "clinic-insight-server/models/revenue"
	riskmodel "clinic-insight-server/models/risk"
)

func TestRedisClinicDAO_UpsertAppointment_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisClinicDAO(mockClient)

	record := models.AppointmentRecord{
		AppointmentID: "appt123",
		Date:          "2025-01-06",
		Time:          "14:30",
		Status:        models.StatusCompleted,
		ServiceItem:   "Hydra Facial",
		CustomerID:    "c001",
	}

	// Act
	err := dao.UpsertAppointment(record)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Verify data stored in mock Redis
	storedValue, err := mockClient.Get("appointment_v1:appt123")
	if err != nil {
		t.Fatalf("Expected data to be stored, got error: %v", err)
	}

	var stored models.AppointmentRecord
	if err := json.Unmarshal([]byte(storedValue), &stored); err != nil {
		t.Fatalf("Failed to unmarshal stored appointment: %v", err)
	}
	if stored.AppointmentID != record.AppointmentID {
		t.Errorf("Expected AppointmentID %s, got %s", record.AppointmentID, stored.AppointmentID)
	}
}

func TestRedisClinicDAO_ListAppointments_Ordered(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisClinicDAO(mockClient)

	later := models.AppointmentRecord{AppointmentID: "b2", Date: "2025-01-07", Time: "10:00"}
	earlier := models.AppointmentRecord{AppointmentID: "a1", Date: "2025-01-06", Time: "14:30"}
	sameDay := models.AppointmentRecord{AppointmentID: "a9", Date: "2025-01-06", Time: "09:00"}
	_ = dao.UpsertAppointment(later)
	_ = dao.UpsertAppointment(earlier)
	_ = dao.UpsertAppointment(sameDay)

	// Act
	records, err := dao.ListAppointments()

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].AppointmentID != "a9" || records[1].AppointmentID != "a1" || records[2].AppointmentID != "b2" {
		t.Errorf("Unexpected order: %s, %s, %s",
			records[0].AppointmentID, records[1].AppointmentID, records[2].AppointmentID)
	}
}

func TestRedisClinicDAO_ListAppointments_Empty(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisClinicDAO(mockClient)

	// Act
	records, err := dao.ListAppointments()

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestRedisClinicDAO_RiskReport_RoundTrip(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisClinicDAO(mockClient)

	window := "2025-01-06_2025-01-12"
	report := &riskmodel.Report{
		Utilization: []riskmodel.RoleUtilization{
			{Role: "doctor", UsedHours: 25, TotalHours: 24, PctDisplay: 100, PctRaw: 104.17, OverloadHours: 1},
		},
		Summary: riskmodel.Summary{WindowLabel: window},
	}

	if err := dao.SetRiskReport(window, report); err != nil {
		t.Fatalf("SetRiskReport failed: %v", err)
	}

	// Act
	got, err := dao.GetRiskReport(window)

	// Assert
	if err != nil {
		t.Fatalf("GetRiskReport failed: %v", err)
	}
	if got.Summary.WindowLabel != window {
		t.Errorf("Expected window %s, got %s", window, got.Summary.WindowLabel)
	}
	if len(got.Utilization) != 1 || got.Utilization[0].PctRaw != 104.17 {
		t.Errorf("Unexpected utilization: %+v", got.Utilization)
	}

	windows, err := dao.ListCachedRiskWindows()
	if err != nil {
		t.Fatalf("ListCachedRiskWindows failed: %v", err)
	}
	if len(windows) != 1 || windows[0] != window {
		t.Errorf("Unexpected cached windows: %v", windows)
	}
}

func TestRedisClinicDAO_Milestone_DeleteRemovesKey(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisClinicDAO(mockClient)

	m := &revenuemodel.Milestone{
		Triggered: true,
		Date:      "2025-01-09",
		Title:     "daily revenue NT$ 4.5萬",
		Priority:  revenuemodel.PriorityYoY,
	}
	if err := dao.SetMilestone(m); err != nil {
		t.Fatalf("SetMilestone failed: %v", err)
	}

	got, err := dao.GetMilestone("2025-01-09")
	if err != nil {
		t.Fatalf("GetMilestone failed: %v", err)
	}
	if got.Priority != revenuemodel.PriorityYoY {
		t.Errorf("Expected priority %d, got %d", revenuemodel.PriorityYoY, got.Priority)
	}

	// Act
	if err := dao.DeleteMilestone("2025-01-09"); err != nil {
		t.Fatalf("DeleteMilestone failed: %v", err)
	}

	// Assert
	if _, err := dao.GetMilestone("2025-01-09"); err == nil {
		t.Errorf("Expected GetMilestone to fail after delete")
	}
}
