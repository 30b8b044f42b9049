package ipprovider

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Septrum101/gandiDDNS/helper"
)

type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Static always resolves to the manually supplied address.
type Static string

func (s Static) Resolve(context.Context) (string, error) {
	return string(s), nil
}

// Web asks a "what is my IP" service, which must answer 2xx with the
// address as a plain text body.
type Web struct {
	url    string
	client *resty.Client
}

func NewWeb(url string, timeout time.Duration) *Web {
	return &Web{
		url:    url,
		client: resty.New().SetTimeout(timeout).SetHeader("Cache-Control", "no-cache"),
	}
}

// Resolve returns the trimmed response body. The address is not validated.
func (w *Web) Resolve(ctx context.Context) (string, error) {
	resp, err := w.client.R().SetContext(ctx).Get(w.url)
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", &helper.HTTPError{StatusCode: resp.StatusCode(), Message: strings.TrimSpace(resp.String())}
	}

	return strings.TrimSpace(resp.String()), nil
}
