package risk

// Alert severity levels.
const (
	LevelRed    = "red"
	LevelYellow = "yellow"
)

// Alert types emitted by the risk analyzer.
const (
	TypeCapacity        = "capacity"
	TypeHighFocusStreak = "high_focus_streak"
	TypeComboCongestion = "combo_congestion"
	TypeVolatility      = "volatility"
)

// RoleUtilization is one per-role utilization snapshot for a reporting
// period. PctRaw is uncapped and may exceed 100; PctDisplay is rounded and
// capped at 100 for rendering. OverloadHours is non-zero only when
// UsedHours exceeds TotalHours.
type RoleUtilization struct {
	Role          string  `json:"role"`
	UsedHours     float64 `json:"used_hours"`
	TotalHours    float64 `json:"total_hours"`
	PctDisplay    float64 `json:"pct_display"`
	PctRaw        float64 `json:"pct_raw"`
	OverloadHours float64 `json:"overload_hours,omitempty"`
}

// RoleDayAggregate is the per (date, role) workload aggregate.
type RoleDayAggregate struct {
	Date             string  `json:"date"`
	Role             string  `json:"role"`
	TotalVisits      int     `json:"total_visits"`
	ComboVisits      int     `json:"combo_visits"`
	ComboRatio       float64 `json:"combo_ratio"` // percentage 0-100
	HighFocusMinutes int     `json:"high_focus_minutes"`
	TotalMinutes     int     `json:"total_minutes"`
	Cancelled        int     `json:"cancelled"`
	NoShow           int     `json:"no_show"`
}

// TopSlot is a (date, time bucket, role) with the highest demand
// concentration in the window.
type TopSlot struct {
	Date             string  `json:"date"`
	TimeBucket       string  `json:"time_bucket"`
	Role             string  `json:"role"`
	TotalMinutes     int     `json:"total_minutes"`
	HighFocusMinutes int     `json:"high_focus_minutes"`
	ComboRatio       float64 `json:"combo_ratio"`
}

// WeeklyAggregates bundles the aggregator output consumed by the analyzer.
type WeeklyAggregates struct {
	ByRoleDay []RoleDayAggregate `json:"by_role_day"`
	TopSlots  []TopSlot          `json:"top_slots"`
}

// Alert is one prioritized risk finding.
type Alert struct {
	Level        string `json:"level"` // red | yellow
	Type         string `json:"type"`
	When         string `json:"when"`
	Who          string `json:"who"`
	Evidence     string `json:"evidence"`
	WhyItMatters string `json:"why_it_matters"`
}

// ActionItem is one recommended adjustment derived from the alerts.
type ActionItem struct {
	Action  string `json:"action"`
	Target  string `json:"target"`
	Purpose string `json:"purpose"`
}

// ReviewItem points a human auditor at one (date, role) that contributed
// to an alert.
type ReviewItem struct {
	Date       string `json:"date"`
	TimeBucket string `json:"time_bucket"`
	Role       string `json:"role"`
	RiskType   string `json:"risk_type"`
	Reason     string `json:"reason"`
}

// Summary is the report header block.
type Summary struct {
	WindowLabel   string   `json:"window_label"`
	CapacityNotes []string `json:"capacity_notes"` // at most 2
	RiskNotes     []string `json:"risk_notes"`     // at most 2
}

// Report is the full staff risk analysis output. All lists are ordered
// most severe first and hard-capped: alerts 5, actions 5, review list 8.
type Report struct {
	Summary     Summary           `json:"summary"`
	Utilization []RoleUtilization `json:"utilization,omitempty"`
	Alerts      []Alert           `json:"alerts"`
	Actions     []ActionItem      `json:"actions"`
	ReviewList  []ReviewItem      `json:"review_list"`
}
