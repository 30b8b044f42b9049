package updater

import (
	"errors"
	"fmt"

	"github.com/Septrum101/gandiDDNS/helper"
)

type Stage string

const (
	StageIP     Stage = "retrieve IP from provider"
	StageZone   Stage = "retrieve domain zone"
	StageRecord Stage = "retrieve current published IP"
)

var ErrPartialUpdate = errors.New("some subdomains were not updated")

// StageError is a fatal failure of a stage running before the updates.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StatusCode is the HTTP status of the failed call, 0 when there was none.
func (e *StageError) StatusCode() int {
	return helper.StatusCode(e.Err)
}

// Outcome is the result of the update of one subdomain.
type Outcome struct {
	Subdomain string
	Err       error
}

type Result struct {
	IP        string
	ZoneID    string
	Published string
	// Forced is set when the comparison was skipped.
	Forced bool
	// Changed reports whether updates were issued.
	Changed  bool
	Outcomes []Outcome
}

// Failed returns the outcomes of the subdomains that could not be updated.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for i := range r.Outcomes {
		if r.Outcomes[i].Err != nil {
			failed = append(failed, r.Outcomes[i])
		}
	}
	return failed
}

// Updated returns the subdomains that now point at the resolved IP.
func (r *Result) Updated() []string {
	var updated []string
	for i := range r.Outcomes {
		if r.Outcomes[i].Err == nil {
			updated = append(updated, r.Outcomes[i].Subdomain)
		}
	}
	return updated
}
