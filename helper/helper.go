package helper

import (
	"errors"
	"fmt"
	"strings"
)

// HTTPError is a non-2xx answer from a remote HTTP service.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("status code: %d, %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from an HTTP response (transport failure, timeout, ...).
func StatusCode(err error) int {
	var v *HTTPError
	if errors.As(err, &v) {
		return v.StatusCode
	}
	return 0
}

// SplitList splits a comma separated list, trimming every item.
// Empty items are dropped, order and duplicates are kept.
func SplitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func MaskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
