package config

import (
	"fmt"
	"io"
)

// version and date are stamped at build time:
//
//	go build -ldflags "-X github.com/Septrum101/gandiDDNS/config.version=v1.2.0 -X github.com/Septrum101/gandiDDNS/config.date=2024-01-02" ./cmd
var (
	version = "dev"
	AppName = "GandiDDNS"
	intro   = "A dynamic IP updater for Gandi LiveDNS domains."
	date    = "unknown"
)

func Version() string {
	return version
}

func ShowVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s, built at %s\n%s\n", AppName, version, date, intro)
}
