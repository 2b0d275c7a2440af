package eventbrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/logger"
)

const (
	MaxPageSize     = 50
	DefaultPageSize = 20

	// NYCPlaceID is the Who's On First ID for New York City.
	NYCPlaceID = "85977539"

	searchPath = "/destination/search/"
	eventsPath = "/destination/events/"
)

// expansions requested for every destination event
var expansions = []string{
	"event_sales_status",
	"image",
	"primary_venue",
	"primary_organizer",
	"ticket_availability",
}

// SearchParams controls a Search call
type SearchParams struct {
	Keyword    string
	PlaceID    string // Who's On First place ID; empty searches worldwide
	OnlineOnly bool
	MaxPages   int // upper bound on requests, not a promise that pages exist
	PageSize   int // clamped to MaxPageSize
}

type searchRequest struct {
	EventSearch eventSearch `json:"event_search"`
	Expand      []string    `json:"expand.destination_event"`
}

type eventSearch struct {
	Query            string   `json:"q,omitempty"`
	Places           []string `json:"places,omitempty"`
	OnlineEventsOnly bool     `json:"online_events_only,omitempty"`
	Dates            string   `json:"dates"`
	PageSize         int      `json:"page_size"`
	Continuation     string   `json:"continuation,omitempty"`
}

type searchResponse struct {
	Events struct {
		Results    []event.APIEvent `json:"results"`
		Pagination struct {
			ObjectCount  int     `json:"object_count"`
			Continuation *string `json:"continuation"`
		} `json:"pagination"`
	} `json:"events"`
}

// Search returns the unique events matching params in order of first appearance.
// Pages are requested one at a time; the loop ends when a page is empty, no
// continuation token is returned, a token repeats, or MaxPages is reached.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]*event.Event, error) {
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	maxPages := params.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	body := searchRequest{
		EventSearch: eventSearch{
			Query:            strings.TrimSpace(params.Keyword),
			OnlineEventsOnly: params.OnlineOnly,
			Dates:            "current_future",
			PageSize:         pageSize,
		},
		Expand: expansions,
	}
	if params.PlaceID != "" {
		body.EventSearch.Places = []string{params.PlaceID}
	}

	events := make([]*event.Event, 0)
	seen := make(map[string]bool)
	usedTokens := make(map[string]bool)

	for page := 1; page <= maxPages; page++ {
		c.log.Info("Fetching page", logger.Fields{"page": page, "query": body.EventSearch.Query})

		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding search request: %w", err)
		}

		var resp searchResponse
		err = c.do(ctx, request{
			name:   "search",
			method: http.MethodPost,
			path:   searchPath,
			body:   payload,
		}, &resp)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}

		results := resp.Events.Results
		if len(results) == 0 {
			c.log.Info("No more events", logger.Fields{"page": page})
			break
		}

		for i := range results {
			evt := event.FromAPI(&results[i])
			if evt.ID == "" {
				c.log.Debug("Skipping result without ID", logger.Fields{"title": evt.Title})
				continue
			}
			if seen[evt.ID] {
				c.metrics.DuplicateDropped()
				continue
			}
			seen[evt.ID] = true
			events = append(events, evt)
		}

		next := event.Value(resp.Events.Pagination.Continuation)
		if next == "" {
			c.log.Info("Reached last page", logger.Fields{"page": page})
			break
		}
		if usedTokens[next] {
			c.log.Warn("Continuation token repeated, stopping", logger.Fields{"page": page})
			break
		}
		usedTokens[next] = true
		body.EventSearch.Continuation = next
	}

	c.metrics.EventsFetched(len(events))
	c.log.Info("Extracted unique events", logger.Fields{"count": len(events)})
	return events, nil
}

// GetByID fetches a single event. A 404, or an empty result list, is reported
// as an error matching ErrNotFound.
func (c *Client) GetByID(ctx context.Context, id string) (*event.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("event ID is required")
	}

	query := url.Values{}
	query.Set("event_ids", id)
	query.Set("expand", strings.Join(expansions, ","))

	var resp struct {
		Events []event.APIEvent `json:"events"`
	}
	err := c.do(ctx, request{
		name:   "event",
		method: http.MethodGet,
		path:   eventsPath,
		query:  query,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetching event %s: %w", id, err)
	}

	for i := range resp.Events {
		if resp.Events[i].ID == id {
			return event.FromAPI(&resp.Events[i]), nil
		}
	}
	return nil, fmt.Errorf("fetching event %s: %w", id, ErrNotFound)
}
