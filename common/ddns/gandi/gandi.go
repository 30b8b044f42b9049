package gandi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Septrum101/gandiDDNS/helper"
)

const DefaultAPIBase = "https://dns.api.gandi.net/api/v5"

// Gandi LiveDNS implementation
type Gandi struct {
	client *resty.Client
}

type domainResp struct {
	ZoneUUID string `json:"zone_uuid"`
}

type record struct {
	TTL    int      `json:"rrset_ttl,omitempty"`
	Values []string `json:"rrset_values"`
}

type errorResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause"`
}

func New(apiKey string, apiBase string, timeout time.Duration) *Gandi {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}

	cli := resty.New()
	cli.SetBaseURL(apiBase).
		SetHeader("X-Api-Key", apiKey).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Gandi{client: cli}
}

func (g *Gandi) ZoneID(ctx context.Context, domain string) (string, error) {
	resp, err := g.client.R().SetContext(ctx).
		SetPathParam("domain", domain).
		Get("/domains/{domain}")
	if err := check(resp, err); err != nil {
		return "", err
	}

	var d domainResp
	if err := json.Unmarshal(resp.Body(), &d); err != nil {
		return "", fmt.Errorf("[%s] decode domain: %w", domain, err)
	}
	if d.ZoneUUID == "" {
		return "", fmt.Errorf("[%s] no zone_uuid in the domain answer", domain)
	}
	log.Debugf("[%s] zone uuid: %s", domain, d.ZoneUUID)

	return d.ZoneUUID, nil
}

func (g *Gandi) Record(ctx context.Context, zoneID string, name string, recordType string) ([]string, error) {
	resp, err := g.recordRequest(ctx, zoneID, name, recordType).Get("/zones/{zone}/records/{name}/{type}")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	var r record
	if err := json.Unmarshal(resp.Body(), &r); err != nil {
		return nil, fmt.Errorf("[%s] decode record: %w", name, err)
	}

	return r.Values, nil
}

func (g *Gandi) UpdateRecord(ctx context.Context, zoneID string, name string, recordType string, ttl int, values []string) error {
	resp, err := g.recordRequest(ctx, zoneID, name, recordType).
		SetBody(&record{TTL: ttl, Values: values}).
		Put("/zones/{zone}/records/{name}/{type}")

	return check(resp, err)
}

func (g *Gandi) recordRequest(ctx context.Context, zoneID string, name string, recordType string) *resty.Request {
	return g.client.R().SetContext(ctx).SetPathParams(map[string]string{
		"zone": zoneID,
		"name": name,
		"type": recordType,
	})
}

// check turns a non-2xx answer into a *helper.HTTPError carrying the
// message of the LiveDNS error body when there is one.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsSuccess() {
		return nil
	}

	msg := strings.TrimSpace(resp.String())
	var e errorResp
	if json.Unmarshal(resp.Body(), &e) == nil && e.Message != "" {
		msg = e.Message
		if e.Cause != "" {
			msg = e.Cause + ": " + e.Message
		}
	}

	return &helper.HTTPError{StatusCode: resp.StatusCode(), Message: msg}
}
