package event

import "strings"

// categoryTagPrefix marks the tag that carries Eventbrite's own category.
const categoryTagPrefix = "EventbriteCategory"

// APIEvent is one result of the destination/search endpoint with the
// venue, organizer, image and ticket_availability expansions applied.
type APIEvent struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Summary            *string             `json:"summary"`
	StartDate          *string             `json:"start_date"`
	StartTime          *string             `json:"start_time"`
	EndDate            *string             `json:"end_date"`
	EndTime            *string             `json:"end_time"`
	Timezone           *string             `json:"timezone"`
	IsOnlineEvent      bool                `json:"is_online_event"`
	PrimaryVenue       *APIVenue           `json:"primary_venue"`
	PrimaryOrganizer   *APIOrganizer       `json:"primary_organizer"`
	URL                *string             `json:"url"`
	TicketAvailability *APITicketAvailable `json:"ticket_availability"`
	Tags               []APITag            `json:"tags"`
	Image              *APIImage           `json:"image"`
	IsCancelled        bool                `json:"is_cancelled"`
	Published          *string             `json:"published"`
}

// APIVenue is the expanded primary_venue object
type APIVenue struct {
	Name    string     `json:"name"`
	Address APIAddress `json:"address"`
}

// APIAddress holds the parts of a venue address we display
type APIAddress struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// APIOrganizer is the expanded primary_organizer object
type APIOrganizer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// APITicketAvailable is the expanded ticket_availability object
type APITicketAvailable struct {
	IsFree             bool      `json:"is_free"`
	MinimumTicketPrice *APIMoney `json:"minimum_ticket_price"`
}

// APIMoney is a price as reported by Eventbrite; MajorValue is a decimal string.
type APIMoney struct {
	MajorValue string `json:"major_value"`
	Currency   string `json:"currency"`
}

// APITag is one entry of the tags list
type APITag struct {
	Prefix      string `json:"prefix"`
	DisplayName string `json:"display_name"`
}

// APIImage is the expanded image object
type APIImage struct {
	URL string `json:"url"`
}

// FromAPI maps a search result onto an Event. It is the only place that knows
// the vendor schema; a schema change should only touch this file.
func FromAPI(raw *APIEvent) *Event {
	evt := &Event{
		ID:             raw.ID,
		Title:          raw.Name,
		Summary:        StringPtr(PlainText(Value(raw.Summary))),
		StartDate:      optional(raw.StartDate),
		StartTime:      optional(raw.StartTime),
		EndDate:        optional(raw.EndDate),
		EndTime:        optional(raw.EndTime),
		Timezone:       optional(raw.Timezone),
		IsOnline:       raw.IsOnlineEvent,
		URL:            optional(raw.URL),
		IsCancelled:    raw.IsCancelled,
		Published:      optional(raw.Published),
		Tags:           make([]string, 0, len(raw.Tags)),
		SourcePlatform: SourcePlatform,
	}

	if tickets := raw.TicketAvailability; tickets != nil {
		evt.IsFree = tickets.IsFree
		// Free events never carry a price, whatever the API says.
		if !tickets.IsFree && tickets.MinimumTicketPrice != nil {
			evt.Price = StringPtr(tickets.MinimumTicketPrice.MajorValue)
			evt.Currency = StringPtr(tickets.MinimumTicketPrice.Currency)
		}
	}

	if venue := raw.PrimaryVenue; venue != nil {
		evt.VenueName = StringPtr(venue.Name)
		evt.VenueAddress = StringPtr(joinNonEmpty(", ",
			venue.Address.City, venue.Address.Region, venue.Address.Country))
	}

	if org := raw.PrimaryOrganizer; org != nil {
		evt.OrganizerName = StringPtr(org.Name)
		evt.OrganizerID = StringPtr(org.ID)
	}

	if raw.Image != nil {
		evt.ImageURL = StringPtr(raw.Image.URL)
	}

	for _, tag := range raw.Tags {
		if tag.DisplayName == "" {
			continue
		}
		evt.Tags = append(evt.Tags, tag.DisplayName)
		if evt.Category == nil && tag.Prefix == categoryTagPrefix {
			evt.Category = StringPtr(tag.DisplayName)
		}
	}

	return evt
}

// optional treats an empty string the same as a missing field
func optional(p *string) *string {
	return StringPtr(strings.TrimSpace(Value(p)))
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
