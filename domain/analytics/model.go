package analytics

import "time"

// Event is one recorded page visit. Append-only; rows are never updated.
type Event struct {
	ID         string    `db:"id" json:"id"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	PageURL    string    `db:"page_url" json:"page_url"`
	Referer    *string   `db:"referer" json:"referer"`
	Browser    string    `db:"browser" json:"browser"`
	OS         string    `db:"os" json:"os"`
	Country    string    `db:"country" json:"country"`
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
}

// TopEntry is one row of a "top N by X" grouping.
type TopEntry struct {
	Value string `db:"value" json:"value"`
	Count int    `db:"count" json:"count"`
}

// ListFilter narrows the event set before pagination and aggregation.
type ListFilter struct {
	Search  string
	Country string
	Page    int
	Limit   int
}

// ListResponse carries the page of events plus aggregates computed over the
// whole filtered set, not just the returned page.
type ListResponse struct {
	Events         []Event    `json:"events"`
	TotalEvents    int        `json:"total_events"`
	UniqueVisitors int        `json:"unique_visitors"`
	TopPages       []TopEntry `json:"top_pages"`
	TopCountries   []TopEntry `json:"top_countries"`
	TopBrowsers    []TopEntry `json:"top_browsers"`
	CurrentPage    int        `json:"current_page"`
	TotalPages     int        `json:"total_pages"`
}
