package aggregate

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"clinic-insight-server/models"
	"clinic-insight-server/models/risk"
	"clinic-insight-server/models/sandbox"
)

// TimeBuckets are the fixed intraday buckets, matched half-open on the
// appointment hour: hour < 14 falls in the first bucket and so on.
// Anything outside the explicit boundaries lands in the last bucket.
var TimeBuckets = []string{"12-14", "14-16", "16-18", "18-21"}

// StandardRoles are the staff roles tracked by every aggregate. Output
// maps always carry all four keys, zero-initialized.
var StandardRoles = []string{"doctor", "nurse", "therapist", "consultant"}

// doctorNameMarker flags physician entries in the free-form doctor_name
// column of the export.
const doctorNameMarker = "醫師"

// aestheticConsultServices are service names that imply a therapist when
// no staff role is recorded. Best-effort heuristic, not a taxonomy.
var aestheticConsultServices = []string{"Hydra Facial", "Mesotherapy", "Skin Booster"}

const workdayHours = 8.0

// BucketForTime maps an HH:mm[:ss] time onto its bucket label.
func BucketForTime(t string) string {
	if len(t) < 2 {
		return TimeBuckets[len(TimeBuckets)-1]
	}
	hour, err := strconv.Atoi(t[:2])
	if err != nil {
		return TimeBuckets[len(TimeBuckets)-1]
	}
	switch {
	case hour < 14:
		return "12-14"
	case hour < 16:
		return "14-16"
	case hour < 18:
		return "16-18"
	default:
		return "18-21"
	}
}

// ResolveRole classifies an appointment onto a standard role via an
// ordered chain of heuristics, first match winning:
//  1. assistant_role when it is one of the standard roles (case-insensitive)
//  2. doctor_name containing the physician marker
//  3. service_item in the aesthetic consult list -> therapist
//
// Records matching none of them are excluded from aggregation.
func ResolveRole(a models.AppointmentRecord) (string, bool) {
	assistantRole := strings.ToLower(strings.TrimSpace(a.AssistantRole))
	for _, r := range StandardRoles {
		if assistantRole == r {
			return r, true
		}
	}
	if a.DoctorName != "" && strings.Contains(a.DoctorName, doctorNameMarker) {
		return "doctor", true
	}
	for _, s := range aestheticConsultServices {
		if a.ServiceItem == s {
			return "therapist", true
		}
	}
	return "", false
}

// CountByRoleBucket groups appointments into role x time-bucket visit
// counts. Every standard role and every bucket is present in the result
// even with no matching data.
func CountByRoleBucket(appointments []models.AppointmentRecord) map[string]map[string]int {
	result := make(map[string]map[string]int, len(StandardRoles))
	for _, r := range StandardRoles {
		result[r] = make(map[string]int, len(TimeBuckets))
		for _, b := range TimeBuckets {
			result[r][b] = 0
		}
	}

	for _, a := range appointments {
		role, ok := ResolveRole(a)
		if !ok {
			continue
		}
		result[role][BucketForTime(a.Time)]++
	}
	return result
}

// serviceEntries splits the purchased-services list on ";" and trims the
// parts, falling back to the single service_item column.
func serviceEntries(a models.AppointmentRecord) []string {
	raw := a.PurchasedServices
	if strings.TrimSpace(raw) == "" {
		raw = a.ServiceItem
	}
	var entries []string
	for _, part := range strings.Split(raw, ";") {
		if p := strings.TrimSpace(part); p != "" {
			entries = append(entries, p)
		}
	}
	return entries
}

// distinctCount counts unique entries, used for combo detection.
func distinctCount(entries []string) int {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e] = struct{}{}
	}
	return len(seen)
}

type dayKey struct {
	date string
	role string
}

type slotKey struct {
	date   string
	bucket string
	role   string
}

// BuildWeeklyAggregates produces per (date, role) aggregates and the top
// demand slots for the given appointment window. Records without a
// resolvable role are dropped; service entries missing from the catalog
// contribute zero minutes.
func BuildWeeklyAggregates(
	appointments []models.AppointmentRecord,
	services []models.ServiceInfo,
) risk.WeeklyAggregates {

	catalog := make(map[string]models.ServiceInfo, len(services))
	for _, s := range services {
		catalog[s.ServiceName] = s
	}

	days := make(map[dayKey]*risk.RoleDayAggregate)
	slots := make(map[slotKey]*risk.TopSlot)
	slotCombos := make(map[slotKey][2]int) // combo, total

	for _, a := range appointments {
		role, ok := ResolveRole(a)
		if !ok || a.Date == "" {
			continue
		}

		dk := dayKey{date: a.Date, role: role}
		day, exists := days[dk]
		if !exists {
			day = &risk.RoleDayAggregate{Date: a.Date, Role: role}
			days[dk] = day
		}

		day.TotalVisits++

		status := strings.ToLower(a.Status)
		switch status {
		case models.StatusCancelled:
			day.Cancelled++
		case models.StatusNoShow:
			day.NoShow++
		}

		entries := serviceEntries(a)
		isCombo := distinctCount(entries) >= 2
		if isCombo {
			day.ComboVisits++
		}

		workMinutes := 0
		focusMinutes := 0
		for _, e := range entries {
			svc, found := catalog[e]
			if !found {
				continue
			}
			workMinutes += svc.WorkMinutes()
			if svc.IntensityLevel == models.IntensityHigh {
				focusMinutes += svc.WorkMinutes()
			}
		}

		day.TotalMinutes += workMinutes
		day.HighFocusMinutes += focusMinutes

		sk := slotKey{date: a.Date, bucket: BucketForTime(a.Time), role: role}
		slot, exists := slots[sk]
		if !exists {
			slot = &risk.TopSlot{Date: sk.date, TimeBucket: sk.bucket, Role: role}
			slots[sk] = slot
		}
		slot.TotalMinutes += workMinutes
		slot.HighFocusMinutes += focusMinutes
		counts := slotCombos[sk]
		if isCombo {
			counts[0]++
		}
		counts[1]++
		slotCombos[sk] = counts
	}

	byRoleDay := make([]risk.RoleDayAggregate, 0, len(days))
	for _, day := range days {
		if day.TotalVisits > 0 {
			day.ComboRatio = roundRatio(float64(day.ComboVisits) / float64(day.TotalVisits) * 100)
		}
		byRoleDay = append(byRoleDay, *day)
	}
	sort.Slice(byRoleDay, func(i, j int) bool {
		if byRoleDay[i].Date != byRoleDay[j].Date {
			return byRoleDay[i].Date < byRoleDay[j].Date
		}
		return byRoleDay[i].Role < byRoleDay[j].Role
	})

	topSlots := make([]risk.TopSlot, 0, len(slots))
	for sk, slot := range slots {
		counts := slotCombos[sk]
		if counts[1] > 0 {
			slot.ComboRatio = roundRatio(float64(counts[0]) / float64(counts[1]) * 100)
		}
		topSlots = append(topSlots, *slot)
	}
	sort.Slice(topSlots, func(i, j int) bool {
		if topSlots[i].TotalMinutes != topSlots[j].TotalMinutes {
			return topSlots[i].TotalMinutes > topSlots[j].TotalMinutes
		}
		if topSlots[i].Date != topSlots[j].Date {
			return topSlots[i].Date < topSlots[j].Date
		}
		return topSlots[i].TimeBucket < topSlots[j].TimeBucket
	})
	if len(topSlots) > 3 {
		topSlots = topSlots[:3]
	}

	return risk.WeeklyAggregates{ByRoleDay: byRoleDay, TopSlots: topSlots}
}

// BuildRoleUtilization computes the per-role utilization snapshot for a
// window of the given length in days. Capacity is headcount x 8h x days,
// adjusted by sandbox staffing deltas when the simulation is active.
// Only booked, checked-in and completed appointments consume hours.
func BuildRoleUtilization(
	appointments []models.AppointmentRecord,
	services []models.ServiceInfo,
	staffCounts map[string]int,
	days int,
	sb sandbox.State,
) []risk.RoleUtilization {

	catalog := make(map[string]models.ServiceInfo, len(services))
	for _, s := range services {
		catalog[s.ServiceName] = s
	}

	usedMinutes := make(map[string]float64, len(StandardRoles))
	for _, a := range appointments {
		status := strings.ToLower(a.Status)
		if status != models.StatusBooked && status != models.StatusCheckedIn && status != models.StatusCompleted {
			continue
		}
		role, ok := ResolveRole(a)
		if !ok {
			continue
		}
		for _, e := range serviceEntries(a) {
			if svc, found := catalog[e]; found {
				usedMinutes[role] += float64(svc.WorkMinutes())
			}
		}
	}

	result := make([]risk.RoleUtilization, 0, len(StandardRoles))
	for _, role := range StandardRoles {
		headcount := staffCounts[role] + sb.DeltaFor(role)
		if headcount < 0 {
			headcount = 0
		}
		capacity := float64(headcount) * workdayHours * float64(days)
		used := usedMinutes[role] / 60

		u := risk.RoleUtilization{
			Role:       role,
			UsedHours:  math.Round(used*10) / 10,
			TotalHours: capacity,
		}
		if capacity > 0 {
			raw := used / capacity * 100
			u.PctRaw = math.Round(raw*100) / 100
			u.PctDisplay = math.Min(100, math.Round(raw))
		}
		if used > capacity {
			u.OverloadHours = math.Round((used-capacity)*10) / 10
		}
		result = append(result, u)
	}
	return result
}

func roundRatio(v float64) float64 {
	return math.Round(v*10) / 10
}
