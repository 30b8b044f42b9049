package updater

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/Septrum101/gandiDDNS/common/ddns"
	"github.com/Septrum101/gandiDDNS/common/ipprovider"
	"github.com/Septrum101/gandiDDNS/helper"
)

type Updater struct {
	Resolver ipprovider.Resolver
	Client   ddns.Client

	Domain string
	// Subdomains are updated in order. The first one is the reference whose
	// published IP decides whether any update is needed.
	Subdomains []string
	TTL        int
	Force      bool
}

// Run resolves the current IP, compares it with the IP published for the
// reference subdomain and, when they differ or Force is set, updates every
// subdomain. A failure before the updates aborts the run with a *StageError;
// a failed subdomain update is recorded in the result and the run goes on.
func (u *Updater) Run(ctx context.Context) (*Result, error) {
	if len(u.Subdomains) == 0 {
		return nil, errors.New("no subdomain to update")
	}
	r := &Result{Forced: u.Force}

	// Get current IP
	ip, err := u.Resolver.Resolve(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageIP, Err: err}
	}
	r.IP = ip
	if _, ok := u.Resolver.(ipprovider.Static); ok {
		log.Infof("Using %s as local IP", ip)
	} else {
		log.Infof("Local current IP %s", ip)
	}

	// Get domain zone
	zoneID, err := u.Client.ZoneID(ctx, u.Domain)
	if err != nil {
		return nil, &StageError{Stage: StageZone, Err: err}
	}
	if zoneID == "" {
		return nil, &StageError{Stage: StageZone, Err: errors.New("empty zone handle")}
	}
	r.ZoneID = zoneID

	// Get reference subdomain published IP
	if !u.Force {
		values, err := u.Client.Record(ctx, zoneID, u.Subdomains[0], ddns.RecordTypeA)
		if err != nil {
			return nil, &StageError{Stage: StageRecord, Err: err}
		}
		if len(values) > 0 {
			r.Published = values[0]
		}
		log.Debugf("[%s.%s] published IP %q", u.Subdomains[0], u.Domain, r.Published)
	}

	if !u.Force && ip == r.Published {
		log.Warn("IP not changed. Done!")
		return r, nil
	}
	r.Changed = true

	r.Outcomes = make([]Outcome, 0, len(u.Subdomains))
	for _, sub := range u.Subdomains {
		err := u.Client.UpdateRecord(ctx, zoneID, sub, ddns.RecordTypeA, u.TTL, []string{ip})
		r.Outcomes = append(r.Outcomes, Outcome{Subdomain: sub, Err: err})
		if err != nil {
			LogFailure(err, "Error updating records for subdomain %s", sub)
			continue
		}
		log.Infof("Update subdomain %s done", sub)
	}
	if len(r.Failed()) == 0 {
		log.Info("Done!")
	}

	return r, nil
}

// LogFailure always logs the HTTP status of err; the error text itself is
// attached only in verbose mode.
func LogFailure(err error, format string, args ...any) {
	entry := log.WithField("code", helper.StatusCode(err))
	if log.IsLevelEnabled(log.InfoLevel) {
		entry = entry.WithError(err)
	}
	entry.Errorf(format, args...)
}
