package event

// SourcePlatform tags every record produced by this package.
const SourcePlatform = "eventbrite"

// Event represents a single Eventbrite event occurrence
type Event struct {
	ID             string   `json:"event_id"`
	Title          string   `json:"title"`
	Summary        *string  `json:"summary"`
	StartDate      *string  `json:"start_date"`
	StartTime      *string  `json:"start_time"`
	EndDate        *string  `json:"end_date"`
	EndTime        *string  `json:"end_time"`
	Timezone       *string  `json:"timezone"`
	IsOnline       bool     `json:"is_online"`
	VenueName      *string  `json:"venue_name"`
	VenueAddress   *string  `json:"venue_address"` // "City, Region, Country"
	OrganizerName  *string  `json:"organizer_name"`
	OrganizerID    *string  `json:"organizer_id"`
	URL            *string  `json:"url"`
	IsFree         bool     `json:"is_free"`
	Price          *string  `json:"price"` // decimal as string, e.g. "25.00"
	Currency       *string  `json:"currency"`
	Category       *string  `json:"category"`
	Tags           []string `json:"tags"`
	ImageURL       *string  `json:"image_url"`
	IsCancelled    bool     `json:"is_cancelled"`
	Published      *string  `json:"published"`
	SourcePlatform string   `json:"source_platform"`
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences an optional field, returning "" when absent
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Clone returns a copy of the event that shares no slices with the original.
func (e *Event) Clone() *Event {
	c := *e
	if e.Tags != nil {
		c.Tags = append([]string(nil), e.Tags...)
	}
	return &c
}
