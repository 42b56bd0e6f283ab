package domain

import "context"

// BasicSettings is the property-level default pricing configuration
// used whenever no per-date override exists. Prices are integer yen
// per night.
type BasicSettings struct {
	BasePrice       int64
	BaseGuests      int
	AdultExtraPrice int64
	ChildExtraPrice int64
	MinNights       int
	CheckInTime     string
	CheckOutTime    string
}

type Property struct {
	ID          string
	Name        string
	ExternalKey string
	Settings    BasicSettings
}

type PropertyRepository interface {
	CreateProperty(ctx context.Context, property *Property) error
	GetProperty(ctx context.Context, propertyID string) (*Property, error)
	ListProperties(ctx context.Context) ([]*Property, error)
	UpdateBasicSettings(ctx context.Context, propertyID string, settings BasicSettings) error
}
