package pricing

// UpdateRow is one date-level change in a bulk edit batch. A row with
// no price, no min nights and no blackout flag is the clear-override
// sentinel: it removes any stored override for the date.
type UpdateRow struct {
	Date           string `json:"date"`
	Price          *int64 `json:"price"`
	IsBlackout     bool   `json:"is_blackout"`
	MinNights      *int   `json:"min_nights,omitempty"`
	BlackoutReason string `json:"blackout_reason,omitempty"`
}

func (r UpdateRow) IsClearSentinel() bool {
	return r.Price == nil && !r.IsBlackout && r.MinNights == nil
}

// ImportRecord is a parsed CSV row before bulk validation.
type ImportRecord struct {
	Line       int
	Date       string
	Price      *int64
	IsBlackout bool
}
