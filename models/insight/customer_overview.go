package insight

// CustomerOverview summarizes the new-vs-returning split for a period.
// A customer counts as returning iff their first completed appointment is
// strictly before the period start; otherwise they are new in the period.
type CustomerOverview struct {
	NewCustomers         int      `json:"new_customers"`
	ReturningCustomers   int      `json:"returning_customers"`
	TotalCustomers       int      `json:"total_customers"`
	ReturningVisitRate   int      `json:"returning_visit_rate"` // rounded percentage 0-100
	NewCustomerIDs       []string `json:"new_customer_ids"`
	ReturningCustomerIDs []string `json:"returning_customer_ids"`
}
