package publisher

type CalendarUpdatedEvent struct {
	PropertyID string `json:"property_id"`
	Source     string `json:"source"`
	Applied    int    `json:"applied"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type SyncCompletedEvent struct {
	RunID      string `json:"run_id"`
	PropertyID string `json:"property_id"`
	Scope      string `json:"scope"`
	Applied    int    `json:"applied"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}
