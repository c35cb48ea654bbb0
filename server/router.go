package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ReportRoutes is the set of handlers the router wires up.
type ReportRoutes interface {
	GetStaffRiskReport(w http.ResponseWriter, r *http.Request)
	GetRevenueMilestone(w http.ResponseWriter, r *http.Request)
	GetCustomerSegments(w http.ResponseWriter, r *http.Request)
	GetChurnRisks(w http.ResponseWriter, r *http.Request)
	GetCustomerOverview(w http.ResponseWriter, r *http.Request)
	GetForecastConfig(w http.ResponseWriter, r *http.Request)
	GetForecastEstimate(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	reportHandler ReportRoutes
	router        *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	reportHandler ReportRoutes,
	router *mux.Router) *Router {
	return &Router{
		reportHandler: reportHandler,
		router:        router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?start={YYYY-MM-DD}&end={YYYY-MM-DD}, cached report without args
	r.router.HandleFunc("/v1/reports/risk", r.reportHandler.GetStaffRiskReport).Methods("GET")

	// expects ?date={YYYY-MM-DD}, defaults to today
	r.router.HandleFunc("/v1/reports/milestone", r.reportHandler.GetRevenueMilestone).Methods("GET")

	r.router.HandleFunc("/v1/customers/segments", r.reportHandler.GetCustomerSegments).Methods("GET")
	r.router.HandleFunc("/v1/customers/churn", r.reportHandler.GetChurnRisks).Methods("GET")

	// expects ?start={YYYY-MM-DD}&end={YYYY-MM-DD}
	r.router.HandleFunc("/v1/customers/overview", r.reportHandler.GetCustomerOverview).Methods("GET")
	r.router.HandleFunc("/v1/forecast/config", r.reportHandler.GetForecastConfig).Methods("GET")
	r.router.HandleFunc("/v1/forecast/estimate", r.reportHandler.GetForecastEstimate).Methods("GET")

	r.router.HandleFunc("/ping", r.reportHandler.Ping).Methods("GET")
}
