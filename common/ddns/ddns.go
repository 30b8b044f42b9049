package ddns

import (
	"context"
)

const RecordTypeA = "A"

// Client reads and writes the rrsets of a zone hosted by a DNS provider.
type Client interface {
	// ZoneID returns the provider handle of the zone serving domain.
	ZoneID(ctx context.Context, domain string) (string, error)
	// Record returns the values published for name.
	Record(ctx context.Context, zoneID string, name string, recordType string) ([]string, error)
	// UpdateRecord replaces the values published for name.
	UpdateRecord(ctx context.Context, zoneID string, name string, recordType string, ttl int, values []string) error
}
