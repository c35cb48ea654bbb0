package forecast

// Config holds the demand-forecast baselines derived from historical
// appointment records. Monthly factors and day weights are multiplicative
// ratios relative to the global daily mean, 1.0 when a month or weekday
// has no data.
type Config struct {
	RealizationRate  float64         `json:"realization_rate"` // 0-1
	MonthlyFactors   map[int]float64 `json:"monthly_factors"`  // 1 (Jan) .. 12 (Dec)
	DayWeights       map[int]float64 `json:"day_weights"`      // 0 (Sun) .. 6 (Sat)
	AverageDailyBase float64         `json:"average_daily_base"`
}

// EstimationPoint is one day of the demand estimation series. History
// rows carry the observed actual/demand counts; future rows carry the
// projected estimate.
type EstimationPoint struct {
	Date         string  `json:"date"`
	Actual       int     `json:"actual,omitempty"` // completed + checked_in
	Demand       int     `json:"demand,omitempty"` // all statuses
	Estimated    float64 `json:"estimated,omitempty"`
	IsEstimation bool    `json:"is_estimation"`
	DayOfWeek    int     `json:"day_of_week"` // 0 (Sun) .. 6 (Sat)
}
