package insight

// RFM segment labels.
const (
	SegmentHighValue   = "high_value"
	SegmentMediumValue = "medium_value"
	SegmentLowValue    = "low_value"
)

// Segments enumerates every segment bucket, used to zero-initialize
// segmentation output.
var Segments = []string{SegmentHighValue, SegmentMediumValue, SegmentLowValue}

// RFMScore is the Recency/Frequency/Monetary score for one customer.
type RFMScore struct {
	Recency   int     `json:"recency"` // days since last visit
	Frequency int     `json:"frequency"`
	Monetary  float64 `json:"monetary"`
}
