package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"clinic-insight-server/models/sandbox"
	services "clinic-insight-server/service"
)

const (
	START_QUERY_ARG = "start"
	END_QUERY_ARG   = "end"
	DATE_QUERY_ARG  = "date"
)

const dateLayout = "2006-01-02"

type ReportHandler struct {
	insightService *services.InsightService
}

func NewReportHandler(insightService *services.InsightService) *ReportHandler {
	return &ReportHandler{insightService: insightService}
}

// GetStaffRiskReport handles GET /v1/reports/risk.
// With ?start=YYYY-MM-DD&end=YYYY-MM-DD the report is computed for that
// window; without parameters the most recently cached weekly report is
// served.
func (h *ReportHandler) GetStaffRiskReport(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	start := vals.Get(START_QUERY_ARG)
	end := vals.Get(END_QUERY_ARG)

	if start == "" && end == "" {
		report, err := h.insightService.CachedStaffRiskReport()
		if err != nil {
			log.Println("Error loading cached risk report:", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if report == nil {
			http.Error(w, "No cached risk report available", http.StatusNotFound)
			return
		}
		writeJSON(w, report)
		return
	}

	if !validDateArg(start) {
		http.Error(w, "Invalid argument "+START_QUERY_ARG, http.StatusBadRequest)
		return
	}
	if !validDateArg(end) {
		http.Error(w, "Invalid argument "+END_QUERY_ARG, http.StatusBadRequest)
		return
	}

	report, err := h.insightService.StaffRiskReport(start, end, sandbox.Inactive())
	if err != nil {
		log.Println("Error building risk report:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

// GetRevenueMilestone handles GET /v1/reports/milestone.
// expects ?date=YYYY-MM-DD, defaulting to today.
func (h *ReportHandler) GetRevenueMilestone(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get(DATE_QUERY_ARG)
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	if !validDateArg(date) {
		http.Error(w, "Invalid argument "+DATE_QUERY_ARG, http.StatusBadRequest)
		return
	}

	milestone, err := h.insightService.RevenueMilestone(date, sandbox.Inactive())
	if err != nil {
		log.Println("Error checking milestone:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if milestone == nil {
		// No milestone today is a normal outcome, not an error.
		writeJSON(w, map[string]bool{"triggered": false})
		return
	}
	writeJSON(w, milestone)
}

// GetCustomerSegments handles GET /v1/customers/segments
func (h *ReportHandler) GetCustomerSegments(w http.ResponseWriter, r *http.Request) {
	segments, err := h.insightService.CustomerSegments()
	if err != nil {
		log.Println("Error segmenting customers:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, segments)
}

// GetChurnRisks handles GET /v1/customers/churn
func (h *ReportHandler) GetChurnRisks(w http.ResponseWriter, r *http.Request) {
	risks, err := h.insightService.ChurnRisks(time.Now())
	if err != nil {
		log.Println("Error scoring churn risks:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, risks)
}

// GetCustomerOverview handles GET /v1/customers/overview
// expects ?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ReportHandler) GetCustomerOverview(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parseWindowArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	overview, err := h.insightService.CustomerOverview(start, end)
	if err != nil {
		log.Println("Error building customer overview:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, overview)
}

// GetForecastConfig handles GET /v1/forecast/config
// expects ?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ReportHandler) GetForecastConfig(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parseWindowArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	cfg, err := h.insightService.ForecastConfig(start, end)
	if err != nil {
		log.Println("Error building forecast config:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, cfg)
}

// GetForecastEstimate handles GET /v1/forecast/estimate
// expects ?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ReportHandler) GetForecastEstimate(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parseWindowArgs(r.URL.Query(), w)
	if !ok {
		return
	}

	points, err := h.insightService.ForecastEstimate(start, end, time.Now().Format(dateLayout), sandbox.Inactive())
	if err != nil {
		log.Println("Error building estimation series:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, points)
}

func (h *ReportHandler) parseWindowArgs(vals url.Values, w http.ResponseWriter) (start, end string, ok bool) {
	start = vals.Get(START_QUERY_ARG)
	if !validDateArg(start) {
		http.Error(w, "Invalid argument "+START_QUERY_ARG, http.StatusBadRequest)
		return
	}
	end = vals.Get(END_QUERY_ARG)
	if !validDateArg(end) {
		http.Error(w, "Invalid argument "+END_QUERY_ARG, http.StatusBadRequest)
		return
	}
	ok = true
	return
}

func validDateArg(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// Ping handles GET /ping
func (h *ReportHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, map[string]string{"status": "pong"})
}
