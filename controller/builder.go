package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/Septrum101/gandiDDNS/app/updater"
	"github.com/Septrum101/gandiDDNS/common/ddns"
	"github.com/Septrum101/gandiDDNS/common/ddns/cloudflare"
	"github.com/Septrum101/gandiDDNS/common/ddns/gandi"
	"github.com/Septrum101/gandiDDNS/common/ipprovider"
	"github.com/Septrum101/gandiDDNS/common/notify"
	"github.com/Septrum101/gandiDDNS/common/notify/pushplus"
	"github.com/Septrum101/gandiDDNS/common/notify/telegram"
)

func (s *Server) build() error {
	c := s.conf
	timeout := time.Second * time.Duration(c.Timeout)

	// init resolver
	var resolver ipprovider.Resolver
	if c.IP != "" {
		resolver = ipprovider.Static(c.IP)
	} else {
		resolver = ipprovider.NewWeb(c.IPProvider, timeout)
	}

	// init ddnsCli
	var ddnsCli ddns.Client
	switch c.Provider {
	case "gandi":
		ddnsCli = gandi.New(c.APIKey, c.APIBase, timeout)
	case "cloudflare":
		apiBase := c.APIBase
		if apiBase == gandi.DefaultAPIBase {
			apiBase = ""
		}
		cf, err := cloudflare.New(c.APIKey, apiBase, timeout)
		if err != nil {
			return err
		}
		ddnsCli = cf
	default:
		return fmt.Errorf("unknown DNS provider %q", c.Provider)
	}

	// init notifier
	var notifier notify.Notify
	if c.Notify != nil && c.Notify.Enable {
		conf := c.Notify.Config
		switch strings.ToLower(c.Notify.Provider) {
		case "pushplus":
			notifier = &pushplus.PushPlus{
				API:   conf["pushplus_api"],
				Token: conf["pushplus_token"],
			}
		case "telegram":
			notifier = &telegram.Telegram{
				ApiHost: conf["telegram_apihost"],
				ChatID:  conf["telegram_chatid"],
				Token:   conf["telegram_token"],
			}
		default:
			return fmt.Errorf("unknown notify provider %q", c.Notify.Provider)
		}
	}

	s.updater = &updater.Updater{
		Resolver:   resolver,
		Client:     ddnsCli,
		Domain:     c.Domain,
		Subdomains: c.Subdomains,
		TTL:        c.TTL,
		Force:      c.Force,
	}
	s.notifier = notifier

	return nil
}
