package pricing

import "fmt"

type RejectedRow struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

func (r RejectedRow) String() string {
	return fmt.Sprintf("row %d: %s", r.Index, r.Reason)
}

type ApplyResult struct {
	Applied  int           `json:"applied"`
	Rejected []RejectedRow `json:"rejected"`
}

// ParseError is a CSV row that could not be interpreted. Collected by
// the codec, never raised.
type ParseError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}
