package controller

import (
	"context"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"

	"github.com/Septrum101/gandiDDNS/app/updater"
	"github.com/Septrum101/gandiDDNS/common/notify"
	"github.com/Septrum101/gandiDDNS/config"
)

type Server struct {
	conf     *config.Config
	updater  *updater.Updater
	notifier notify.Notify

	ctx         context.Context
	cancel      context.CancelFunc
	cron        *cron.Cron
	pool        *ants.Pool
	cronRunning atomic.Bool
}
