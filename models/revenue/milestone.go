package revenue

// Milestone priorities, highest wins when several baselines are beaten
// on the same day.
const (
	PriorityMonthAvg = 1
	PriorityWeekPeak = 2
	PriorityYoY      = 3
)

// Milestone is a triggered revenue highlight for one day. A nil milestone
// means no baseline was beaten, which is a meaningful "nothing to report"
// and distinct from a computation failure.
type Milestone struct {
	Triggered   bool   `json:"triggered"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"` // 3: YoY, 2: week peak, 1: 30-day average
}
