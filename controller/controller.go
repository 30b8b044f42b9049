package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/Septrum101/gandiDDNS/app/updater"
	"github.com/Septrum101/gandiDDNS/config"
)

func New(c *config.Config) (*Server, error) {
	// init log level
	level := log.ErrorLevel
	if c.LogLevel != "" {
		l, err := log.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, err
		}
		level = l
	}
	if c.Verbose && level < log.InfoLevel {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		conf:   c,
		ctx:    ctx,
		cancel: cancel,
		cron:   cron.New(),
	}
	if err := s.build(); err != nil {
		cancel()
		return nil, err
	}

	return s, nil
}

// RunOnce performs one update run. Fatal stage failures are logged and
// returned. Failed subdomains only make it fail in strict mode.
func (s *Server) RunOnce(ctx context.Context) error {
	r, err := s.updater.Run(ctx)
	if err != nil {
		var stageErr *updater.StageError
		if errors.As(err, &stageErr) {
			updater.LogFailure(stageErr.Err, "%s failure", stageErr.Stage)
		} else {
			log.Error(err)
		}
		return err
	}

	s.pushMessage(r)

	if failed := r.Failed(); len(failed) > 0 && s.conf.Strict {
		return fmt.Errorf("%w: %d of %d", updater.ErrPartialUpdate, len(failed), len(r.Outcomes))
	}
	return nil
}

// Start runs the updater now and then every Interval seconds. A tick that
// comes while the previous run is still in progress is skipped.
func (s *Server) Start() error {
	pool, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		return err
	}
	s.pool = pool

	// cron check
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", s.conf.Interval), func() { s.submit() }); err != nil {
		return err
	}

	// On init start, do once check
	s.submit()
	s.cron.Start()
	log.Warnln(config.AppName, config.Version(), "Started")

	return nil
}

func (s *Server) submit() bool {
	if err := s.pool.Submit(s.task); err != nil {
		if errors.Is(err, ants.ErrPoolOverload) {
			log.Warn("Previous run still in progress, skip")
		} else {
			log.Error(err)
		}
		return false
	}
	return true
}

func (s *Server) task() {
	s.cronRunning.Store(true)
	defer s.cronRunning.Store(false)

	// errors are logged by RunOnce, the next tick tries again
	_ = s.RunOnce(s.ctx)
}

func (s *Server) pushMessage(r *updater.Result) {
	if s.notifier == nil || !r.Changed {
		return
	}

	content := fmt.Sprintf("IP changed: %s", r.IP)
	if updated := r.Updated(); len(updated) > 0 {
		content += fmt.Sprintf("\nUpdated: %s", strings.Join(updated, ", "))
	}
	if failed := r.Failed(); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for i := range failed {
			names = append(names, failed[i].Subdomain)
		}
		content += fmt.Sprintf("\nFailed: %s", strings.Join(names, ", "))
	}

	if err := s.notifier.Webhook(s.conf.Domain, content); err != nil {
		log.Error(err)
	} else {
		log.Infof("[%s] Push message success", s.conf.Domain)
	}
}

func (s *Server) Close() {
	log.Infoln(config.AppName, "Closing..")
	if s.cronRunning.Load() {
		log.Warn("Update in progress, cancelled")
	}
	s.cancel()
	entry := s.cron.Entries()
	for i := range entry {
		s.cron.Remove(entry[i].ID)
	}
	s.cron.Stop()
	if s.pool != nil {
		s.pool.Release()
	}
}
