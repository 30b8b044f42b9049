package cloudflare

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cloudflare/cloudflare-go"
	log "github.com/sirupsen/logrus"

	"github.com/Septrum101/gandiDDNS/helper"
)

// Cloudflare Implementation
type Cloudflare struct {
	client *cloudflare.API

	mu    sync.Mutex
	zones map[string]string // zone ID -> zone name

	// status of the last answer, cloudflare-go does not export it for every error
	status *atomic.Int32
}

type statusTransport struct {
	next   http.RoundTripper
	status *atomic.Int32
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err == nil {
		t.status.Store(int32(resp.StatusCode))
	}
	return resp, err
}

// New builds a client authenticated with an API token. An empty apiBase
// keeps the public Cloudflare endpoint.
func New(token string, apiBase string, timeout time.Duration) (*Cloudflare, error) {
	status := new(atomic.Int32)
	opts := []cloudflare.Option{
		cloudflare.HTTPClient(&http.Client{
			Timeout:   timeout,
			Transport: &statusTransport{next: http.DefaultTransport, status: status},
		}),
		cloudflare.UsingRetryPolicy(0, 0, 0),
	}
	if apiBase != "" {
		opts = append(opts, cloudflare.BaseURL(apiBase))
	}

	client, err := cloudflare.NewWithAPIToken(token, opts...)
	if err != nil {
		return nil, err
	}

	return &Cloudflare{client: client, zones: make(map[string]string), status: status}, nil
}

func (cf *Cloudflare) ZoneID(_ context.Context, domain string) (string, error) {
	cf.status.Store(0)
	zoneID, err := cf.client.ZoneIDByName(domain)
	if err != nil {
		return "", cf.check(fmt.Errorf("[%s] %w", domain, err))
	}

	cf.mu.Lock()
	cf.zones[zoneID] = domain
	cf.mu.Unlock()

	return zoneID, nil
}

func (cf *Cloudflare) Record(ctx context.Context, zoneID string, name string, recordType string) ([]string, error) {
	records, err := cf.getRecords(ctx, zoneID, name, recordType)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(records))
	for i := range records {
		values = append(values, records[i].Content)
	}
	return values, nil
}

// UpdateRecord points every record of name at values[0], creating the record
// when the zone has none.
func (cf *Cloudflare) UpdateRecord(ctx context.Context, zoneID string, name string, recordType string, ttl int, values []string) error {
	if len(values) == 0 {
		return errors.New("IP address is nil")
	}

	records, err := cf.getRecords(ctx, zoneID, name, recordType)
	if err != nil {
		return err
	}
	fqdn := cf.fqdn(zoneID, name)

	if len(records) == 0 {
		cf.status.Store(0)
		_, err := cf.client.CreateDNSRecord(ctx, cloudflare.ZoneIdentifier(zoneID), cloudflare.CreateDNSRecordParams{
			Type:    recordType,
			Name:    fqdn,
			Content: values[0],
			TTL:     ttl,
		})
		if err != nil {
			return cf.check(fmt.Errorf("[%s] create record failure, Error: %w", fqdn, err))
		}
		log.Debugf("[%s] create record success, IP: %s", fqdn, values[0])
		return nil
	}

	for i := range records {
		cf.status.Store(0)
		_, err := cf.client.UpdateDNSRecord(ctx, cloudflare.ZoneIdentifier(zoneID), cloudflare.UpdateDNSRecordParams{
			ID:      records[i].ID,
			Type:    recordType,
			Name:    fqdn,
			Content: values[0],
			TTL:     ttl,
		})
		if err != nil {
			return cf.check(fmt.Errorf("[%s] update record failure, Error: %w", fqdn, err))
		}
		log.Debugf("[%s] update record success, IP: %s", fqdn, values[0])
	}
	return nil
}

func (cf *Cloudflare) getRecords(ctx context.Context, zoneID string, name string, recordType string) ([]cloudflare.DNSRecord, error) {
	cf.status.Store(0)
	records, _, err := cf.client.ListDNSRecords(ctx, cloudflare.ZoneIdentifier(zoneID), cloudflare.ListDNSRecordsParams{
		Type: recordType,
		Name: cf.fqdn(zoneID, name),
	})
	if err != nil {
		return nil, cf.check(err)
	}
	return records, nil
}

// check turns an API error into a *helper.HTTPError. 5xx answers are not
// typed by cloudflare-go, their status is taken from the transport.
func (cf *Cloudflare) check(err error) error {
	var (
		authz     *cloudflare.AuthorizationError
		authn     *cloudflare.AuthenticationError
		notFound  *cloudflare.NotFoundError
		rateLimit *cloudflare.RatelimitError
	)

	code := int(cf.status.Load())
	switch {
	case errors.As(err, &authz):
		code = http.StatusUnauthorized
	case errors.As(err, &authn):
		code = http.StatusForbidden
	case errors.As(err, &notFound):
		code = http.StatusNotFound
	case errors.As(err, &rateLimit):
		code = http.StatusTooManyRequests
	case code < http.StatusBadRequest:
		return err
	}

	return &helper.HTTPError{StatusCode: code, Message: err.Error()}
}

// fqdn expands a record name relative to its zone, "@" being the apex.
func (cf *Cloudflare) fqdn(zoneID string, name string) string {
	cf.mu.Lock()
	zone, ok := cf.zones[zoneID]
	cf.mu.Unlock()

	switch {
	case !ok:
		return name
	case name == "@" || name == "":
		return zone
	default:
		return name + "." + zone
	}
}
