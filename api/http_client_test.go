package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-insight-server/models"
)

func TestHTTPClient_Request_DecodesAppointments(t *testing.T) {
	// Mock records server serving an appointment payload
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/appointments" {
			t.Errorf("Expected endpoint '/appointments', got '%s'", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "crk_test" {
			t.Errorf("Expected X-Api-Key header 'crk_test', got '%s'", r.Header.Get("X-Api-Key"))
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[
			{"appointment_id": "a001", "date": "2025-01-06", "time": "13:30", "status": "completed", "service_item": "Picosecond Laser"},
			{"appointment_id": "a002", "date": "2025-01-06", "time": "14:00", "status": "cancelled"}
		]`))
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL)
	var response []models.AppointmentRecord

	// Act
	err := client.Request("GET", "/appointments", map[string]string{"X-Api-Key": "crk_test"}, nil, &response)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 appointment records, got %d", len(response))
	}
	if response[0].AppointmentID != "a001" || response[0].ServiceItem != "Picosecond Laser" {
		t.Errorf("Unexpected first record: %+v", response[0])
	}
	if response[1].Status != "cancelled" {
		t.Errorf("Expected second record cancelled, got '%s'", response[1].Status)
	}
}

func TestHTTPClient_Request_SendsJSONBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", r.Header.Get("Content-Type"))
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"accepted": true}`))
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL)
	var response map[string]bool

	// Act
	err := client.Request("POST", "/records/sync", nil, map[string]string{"clinic": "main"}, &response)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !response["accepted"] {
		t.Errorf("Expected accepted response, got %+v", response)
	}
}

func TestHTTPClient_Request_ErrorCarriesStatusAndBody(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL)
	var response []models.AppointmentRecord

	// Act
	err := client.Request("GET", "/appointments", map[string]string{"X-Api-Key": "bad"}, nil, &response)

	// Assert
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("Expected error to carry the status, got '%s'", err.Error())
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("Expected error to carry the response body, got '%s'", err.Error())
	}
}
