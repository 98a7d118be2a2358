package health

import "time"

// Input represents the input for health check endpoint
type Input struct{}

// Output represents the output for health check endpoint
type Output struct {
	Body Response
}

// Response represents the health check response
type Response struct {
	Status    string     `json:"status" example:"OK" doc:"Health status of the view server"`
	Documents int        `json:"documents" doc:"Number of documents in the current snapshot"`
	Stale     bool       `json:"stale" doc:"Snapshot was restored from the local cache"`
	FetchedAt *time.Time `json:"fetched_at,omitempty" doc:"Time the snapshot was fetched"`
}
