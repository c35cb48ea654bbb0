package risk

import (
	"fmt"
	"sort"
	"strings"

	model "clinic-insight-server/models/risk"
)

// Threshold constants for the individual risk rules. The exact numbers
// are tunable; the report shapes and caps are the contract.
const (
	capacityRedPct    = 100.0
	capacityYellowPct = 90.0

	comboRedRatio    = 45.0
	comboYellowRatio = 35.0

	focusRedMinutes    = 180
	focusYellowMinutes = 120

	volatilityRedRate    = 30.0
	volatilityYellowRate = 20.0

	maxAlerts     = 5
	maxActions    = 5
	maxReviewList = 8
	maxNotes      = 2
)

// whenEntireWindow marks alerts that apply to the whole reporting window
// rather than a single day.
const whenEntireWindow = "entire window"

// scoredAlert pairs an alert with the magnitude of its deviation, used
// for ordering after the severity sort.
type scoredAlert struct {
	alert     model.Alert
	magnitude float64
}

// Analyze evaluates the utilization snapshot and weekly aggregates
// against the risk rules and builds the capped, priority-ordered report.
// The result is deterministic for identical inputs. Negative hours are a
// programmer error and surface as an error rather than a silent skip.
func Analyze(
	utilization []model.RoleUtilization,
	aggregates model.WeeklyAggregates,
	windowLabel string,
) (*model.Report, error) {

	for _, u := range utilization {
		if u.TotalHours < 0 || u.UsedHours < 0 {
			return nil, fmt.Errorf("invalid utilization for role %q: negative hours", u.Role)
		}
	}

	var alerts []scoredAlert
	alerts = append(alerts, analyzeCapacity(utilization)...)
	alerts = append(alerts, analyzeComboRisk(aggregates.ByRoleDay)...)
	alerts = append(alerts, analyzeHighFocusRisk(aggregates.ByRoleDay)...)
	alerts = append(alerts, analyzeVolatility(aggregates.ByRoleDay)...)

	deduped := deduplicateAlerts(alerts)
	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].alert.Level != deduped[j].alert.Level {
			return deduped[i].alert.Level == model.LevelRed
		}
		return deduped[i].magnitude > deduped[j].magnitude
	})
	if len(deduped) > maxAlerts {
		deduped = deduped[:maxAlerts]
	}

	sorted := make([]model.Alert, len(deduped))
	for i, s := range deduped {
		sorted[i] = s.alert
	}

	return &model.Report{
		Summary:     generateSummary(utilization, sorted, windowLabel),
		Utilization: utilization,
		Alerts:      sorted,
		Actions:     generateActions(sorted),
		ReviewList:  generateReviewList(sorted),
	}, nil
}

// analyzeCapacity flags roles at or over full load. Roles with zero
// capacity are skipped: the ratio is undefined there and an alert would
// be misleading.
func analyzeCapacity(utilization []model.RoleUtilization) []scoredAlert {
	var alerts []scoredAlert

	for _, u := range utilization {
		if u.TotalHours <= 0 {
			continue
		}
		pct := u.PctRaw
		if pct == 0 {
			pct = u.PctDisplay
		}

		if pct >= capacityRedPct || u.OverloadHours > 0 {
			evidence := fmt.Sprintf("load %.1f%%, at full capacity", pct)
			if u.OverloadHours > 0 {
				evidence = fmt.Sprintf("load %.1f%%, overloaded by +%.1fh", pct, u.OverloadHours)
			}
			alerts = append(alerts, scoredAlert{
				alert: model.Alert{
					Level:        model.LevelRed,
					Type:         model.TypeCapacity,
					When:         whenEntireWindow,
					Who:          u.Role,
					Evidence:     evidence,
					WhyItMatters: "sustained overload risks service quality and staff burnout; consider adding capacity or spreading the schedule",
				},
				magnitude: pct,
			})
		} else if pct >= capacityYellowPct {
			alerts = append(alerts, scoredAlert{
				alert: model.Alert{
					Level:        model.LevelYellow,
					Type:         model.TypeCapacity,
					When:         whenEntireWindow,
					Who:          u.Role,
					Evidence:     fmt.Sprintf("load %.1f%%, approaching full capacity", pct),
					WhyItMatters: "keep buffer room to absorb unplanned demand",
				},
				magnitude: pct,
			})
		}
	}
	return alerts
}

// analyzeComboRisk flags days where complex multi-service visits pile up
// on one role. Only the worst days make it in: at most two red and two
// yellow, highest ratio first.
func analyzeComboRisk(byRoleDay []model.RoleDayAggregate) []scoredAlert {
	var candidates []model.RoleDayAggregate
	for _, d := range byRoleDay {
		if d.ComboRatio >= comboYellowRatio {
			candidates = append(candidates, d)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ComboRatio > candidates[j].ComboRatio
	})

	var alerts []scoredAlert
	redCount, yellowCount := 0, 0
	for _, day := range candidates {
		if day.ComboRatio >= comboRedRatio && redCount < 2 {
			alerts = append(alerts, scoredAlert{
				alert: model.Alert{
					Level:        model.LevelRed,
					Type:         model.TypeComboCongestion,
					When:         day.Date,
					Who:          day.Role,
					Evidence:     fmt.Sprintf("combo visits at %.0f%% (%d/%d)", day.ComboRatio, day.ComboVisits, day.TotalVisits),
					WhyItMatters: "concentrated complexity erodes focus and service quality; spread complex cases across the schedule",
				},
				magnitude: day.ComboRatio,
			})
			redCount++
		} else if day.ComboRatio < comboRedRatio && yellowCount < 2 {
			alerts = append(alerts, scoredAlert{
				alert: model.Alert{
					Level:        model.LevelYellow,
					Type:         model.TypeComboCongestion,
					When:         day.Date,
					Who:          day.Role,
					Evidence:     fmt.Sprintf("combo visits at %.0f%% (%d/%d)", day.ComboRatio, day.ComboVisits, day.TotalVisits),
					WhyItMatters: "spread combo treatments moderately to hold service quality",
				},
				magnitude: day.ComboRatio,
			})
			yellowCount++
		}
		if redCount >= 2 && yellowCount >= 2 {
			break
		}
	}
	return alerts
}

// analyzeHighFocusRisk flags days with long stretches of high-intensity
// procedure time for one role.
func analyzeHighFocusRisk(byRoleDay []model.RoleDayAggregate) []scoredAlert {
	var alerts []scoredAlert
	for _, day := range byRoleDay {
		if day.HighFocusMinutes >= focusRedMinutes {
			alerts = append(alerts, scoredAlert{
				alert: model.Alert{
					Level:        model.LevelRed,
					Type:         model.TypeHighFocusStreak,
					When:         day.Date,
					Who:          day.Role,
					Evidence:     fmt.Sprintf("high-intensity time at %d minutes", day.HighFocusMinutes),
					WhyItMatters: "long high-intensity stretches build fatigue; insert 10-20 minute rest buffers",
				},
				magnitude: float64(day.HighFocusMinutes),
			})
		} else if day.HighFocusMinutes >= focusYellowMinutes {
			alerts = append(alerts, scoredAlert{
				alert: model.Alert{
					Level:        model.LevelYellow,
					Type:         model.TypeHighFocusStreak,
					When:         day.Date,
					Who:          day.Role,
					Evidence:     fmt.Sprintf("high-intensity time at %d minutes", day.HighFocusMinutes),
					WhyItMatters: "insert rest time between intensive procedures to hold focus",
				},
				magnitude: float64(day.HighFocusMinutes),
			})
		}
	}
	return alerts
}

// analyzeVolatility flags days where cancellations and no-shows make up
// an outsized share of visits, which destabilizes the schedule even when
// utilization is nominal.
func analyzeVolatility(byRoleDay []model.RoleDayAggregate) []scoredAlert {
	var alerts []scoredAlert
	for _, day := range byRoleDay {
		dropped := day.Cancelled + day.NoShow
		if day.TotalVisits <= 0 {
			continue
		}
		rate := float64(dropped) / float64(day.TotalVisits) * 100

		if rate >= volatilityRedRate {
			alerts = append(alerts, scoredAlert{
				alert: model.Alert{
					Level:        model.LevelRed,
					Type:         model.TypeVolatility,
					When:         day.Date,
					Who:          day.Role,
					Evidence:     fmt.Sprintf("cancel+no-show rate %.0f%% (%d/%d)", rate, dropped, day.TotalVisits),
					WhyItMatters: "high volatility destabilizes scheduling; add day-before confirmation or a standby list",
				},
				magnitude: rate,
			})
		} else if rate >= volatilityYellowRate {
			alerts = append(alerts, scoredAlert{
				alert: model.Alert{
					Level:        model.LevelYellow,
					Type:         model.TypeVolatility,
					When:         day.Date,
					Who:          day.Role,
					Evidence:     fmt.Sprintf("cancel+no-show rate %.0f%% (%d/%d)", rate, dropped, day.TotalVisits),
					WhyItMatters: "tighten booking confirmation to stabilize the schedule",
				},
				magnitude: rate,
			})
		}
	}
	return alerts
}

// deduplicateAlerts collapses alerts sharing (when, who, type); a red
// alert always wins over a yellow duplicate. Insertion order is kept for
// determinism.
func deduplicateAlerts(alerts []scoredAlert) []scoredAlert {
	type key struct{ when, who, typ string }
	index := make(map[key]int)
	var out []scoredAlert

	for _, a := range alerts {
		k := key{when: a.alert.When, who: a.alert.Who, typ: a.alert.Type}
		if i, exists := index[k]; exists {
			if a.alert.Level == model.LevelRed && out[i].alert.Level != model.LevelRed {
				out[i] = a
			}
			continue
		}
		index[k] = len(out)
		out = append(out, a)
	}
	return out
}

func generateSummary(
	utilization []model.RoleUtilization,
	alerts []model.Alert,
	windowLabel string,
) model.Summary {

	var capacityNotes, riskNotes []string

	var overloaded, nearFull []string
	for _, u := range utilization {
		if u.TotalHours <= 0 {
			continue
		}
		pct := u.PctRaw
		if pct == 0 {
			pct = u.PctDisplay
		}
		switch {
		case pct >= capacityRedPct || u.OverloadHours > 0:
			overloaded = append(overloaded, u.Role)
		case pct >= capacityYellowPct:
			nearFull = append(nearFull, u.Role)
		}
	}
	if len(overloaded) > 0 {
		capacityNotes = append(capacityNotes,
			fmt.Sprintf("%s at or over full load; review staffing levels", joinRoles(overloaded)))
	}
	if len(nearFull) > 0 && len(capacityNotes) < maxNotes {
		capacityNotes = append(capacityNotes,
			fmt.Sprintf("%s approaching full load; keep buffer room", joinRoles(nearFull)))
	}

	hasCombo := containsType(alerts, model.TypeComboCongestion)
	hasFocus := containsType(alerts, model.TypeHighFocusStreak)
	if hasCombo || hasFocus {
		switch {
		case hasCombo && hasFocus:
			riskNotes = append(riskNotes, "combo treatments and high-intensity scheduling are concentrated; spread both to hold quality")
		case hasCombo:
			riskNotes = append(riskNotes, "combo treatments are concentrated; spread them to hold quality")
		default:
			riskNotes = append(riskNotes, "high-intensity scheduling is concentrated; spread it to hold quality")
		}
	}
	if containsType(alerts, model.TypeVolatility) && len(riskNotes) < maxNotes {
		riskNotes = append(riskNotes, "cancellation rates run high in parts of the window; tighten booking confirmation")
	}

	if len(capacityNotes) > maxNotes {
		capacityNotes = capacityNotes[:maxNotes]
	}
	if len(riskNotes) > maxNotes {
		riskNotes = riskNotes[:maxNotes]
	}

	return model.Summary{
		WindowLabel:   windowLabel,
		CapacityNotes: capacityNotes,
		RiskNotes:     riskNotes,
	}
}

// generateActions derives at most one action per triggered alert type,
// mirroring alert priority order.
func generateActions(alerts []model.Alert) []model.ActionItem {
	var actions []model.ActionItem
	emitted := make(map[string]struct{})

	for _, alert := range alerts {
		if _, done := emitted[alert.Type]; done {
			continue
		}

		var action model.ActionItem
		switch alert.Type {
		case model.TypeCapacity:
			action = model.ActionItem{
				Action:  "add capacity or move transferable treatments to other slots",
				Target:  alert.Who,
				Purpose: "avoid overload hurting service quality and staff health",
			}
		case model.TypeHighFocusStreak:
			action = model.ActionItem{
				Action:  "insert 10-20 minute rest buffers between consecutive high-intensity treatments",
				Target:  alert.Who,
				Purpose: "hold focus and service quality",
			}
		case model.TypeComboCongestion:
			action = model.ActionItem{
				Action:  "spread part of the combo treatments to other dates or slots",
				Target:  alert.Who,
				Purpose: "lower single-day complexity and improve focus",
			}
		case model.TypeVolatility:
			action = model.ActionItem{
				Action:  "confirm bookings the day before in volatile slots, or run a standby list",
				Target:  alert.Who,
				Purpose: "stabilize scheduling and resource use",
			}
		default:
			continue
		}

		emitted[alert.Type] = struct{}{}
		if len(actions) < maxActions {
			actions = append(actions, action)
		}
	}

	if len(actions) == 0 {
		actions = append(actions, model.ActionItem{
			Action:  "keep the current scheduling pattern and watch load trends",
			Target:  "all roles",
			Purpose: "hold stable service quality",
		})
	}
	return actions
}

// generateReviewList flattens the date-bound alerts into (date, role)
// audit entries, deduplicated and date-ascending.
func generateReviewList(alerts []model.Alert) []model.ReviewItem {
	type key struct{ date, role string }
	seen := make(map[key]struct{})
	var items []model.ReviewItem

	for _, alert := range alerts {
		if alert.When == whenEntireWindow {
			continue
		}
		k := key{date: alert.When, role: alert.Who}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		items = append(items, model.ReviewItem{
			Date:       alert.When,
			TimeBucket: "all day",
			Role:       alert.Who,
			RiskType:   alert.Type,
			Reason:     alert.Evidence,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].Role < items[j].Role
	})
	if len(items) > maxReviewList {
		items = items[:maxReviewList]
	}
	return items
}

func containsType(alerts []model.Alert, typ string) bool {
	for _, a := range alerts {
		if a.Type == typ {
			return true
		}
	}
	return false
}

func joinRoles(roles []string) string {
	return strings.Join(roles, ", ")
}
