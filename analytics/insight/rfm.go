package insight

import (
	"time"

	"clinic-insight-server/models"
	model "clinic-insight-server/models/insight"
)

const dateLayout = "2006-01-02"

// RFMScoreFor computes the Recency/Frequency/Monetary score for one
// customer relative to the given reference time. An unparseable last
// visit date yields zero recency.
func RFMScoreFor(c models.Customer, now time.Time) model.RFMScore {
	recency := 0
	if lastVisit, err := time.Parse(dateLayout, c.LastVisitDate); err == nil {
		recency = daysBetween(lastVisit, now)
	}
	return model.RFMScore{
		Recency:   recency,
		Frequency: c.TotalVisits,
		Monetary:  c.TotalSpend,
	}
}

// SegmentFor classifies a customer against the cohort's mean spend:
// high_value when frequency >= 5 and spend at or above the mean,
// low_value when frequency < 3 or spend below half the mean,
// medium_value otherwise. Evaluated in that order.
func SegmentFor(c models.Customer, avgMonetary float64) string {
	if c.TotalVisits >= 5 && c.TotalSpend >= avgMonetary {
		return model.SegmentHighValue
	}
	if c.TotalVisits < 3 || c.TotalSpend < avgMonetary*0.5 {
		return model.SegmentLowValue
	}
	return model.SegmentMediumValue
}

// SegmentCustomers buckets every customer into exactly one RFM segment.
// The mean spend is recomputed over the full input on every call. Empty
// input yields empty buckets for every segment.
func SegmentCustomers(customers []models.Customer) map[string][]models.Customer {
	segments := make(map[string][]models.Customer, len(model.Segments))
	for _, s := range model.Segments {
		segments[s] = []models.Customer{}
	}
	if len(customers) == 0 {
		return segments
	}

	totalSpend := 0.0
	for _, c := range customers {
		totalSpend += c.TotalSpend
	}
	avgMonetary := totalSpend / float64(len(customers))

	for _, c := range customers {
		segment := SegmentFor(c, avgMonetary)
		segments[segment] = append(segments[segment], c)
	}
	return segments
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
