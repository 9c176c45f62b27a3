package primary

import "context"

// AccessService defines the primary port for the gate/dock access log.
type AccessService interface {
	// RecordEntry records one gate movement.
	RecordEntry(ctx context.Context, req RecordEntryRequest) (*AccessEntry, error)

	// ListEntries lists recorded movements, newest first.
	ListEntries(ctx context.Context, filters AccessFilters) ([]*AccessEntry, error)
}

// RecordEntryRequest contains parameters for recording a gate movement.
type RecordEntryRequest struct {
	Gate      string
	Direction string // "in" or "out"
	Subject   string
	Carrier   string // Optional
	Notes     string // Optional
}

// AccessEntry is the access-log view returned to callers.
type AccessEntry struct {
	ID         string
	Gate       string
	Direction  string
	Subject    string
	Carrier    string
	Notes      string
	RecordedBy string
	RecordedAt string
}

// AccessFilters contains filter options for querying access entries.
type AccessFilters struct {
	Gate      string
	Direction string
	Limit     int
}
