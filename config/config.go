package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"golang.org/x/net/idna"

	"github.com/Septrum101/gandiDDNS/common/ddns/gandi"
	"github.com/Septrum101/gandiDDNS/helper"
)

const (
	DefaultProvider   = "gandi"
	DefaultAPIBase    = gandi.DefaultAPIBase
	DefaultIPProvider = "https://ifconfig.co/ip"
	DefaultTTL        = 300
	DefaultTimeout    = 30
)

var (
	ErrMissingConfig = errors.New("missing config values")
	ErrInvalidConfig = errors.New("invalid config value")
)

// binding ties a config key to its flag and environment variable.
// An empty env means the key can only come from the command line or the
// config file.
type binding struct {
	key  string
	flag string
	env  string
}

var bindings = []binding{
	{"api_key", "api-key", "API_KEY"},
	{"api_base", "api-base", "API_BASE"},
	{"domain", "domain", "DOMAIN"},
	{"subdomain", "subdomain", "SUBDOMAIN"},
	{"ttl", "ttl", "TTL"},
	{"ip_provider", "ip-provider", "IP_PROVIDER"},
	{"provider", "provider", "DNS_PROVIDER"},
	{"timeout", "timeout", "TIMEOUT"},
	{"interval", "interval", "INTERVAL"},
	{"strict", "strict", "STRICT"},
	{"log_level", "log-level", "LOG_LEVEL"},
	{"ip", "ip", ""},
	{"force", "force", ""},
	{"verbose", "verbose", ""},
}

// BindFlags registers the updater flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("api-key", "", "Gandi production key")
	fs.String("api-base", DefaultAPIBase, "Gandi api base")
	fs.String("domain", "", "domain to update")
	fs.String("subdomain", "", "subdomain to update (or comma separated list of subdomains)")
	fs.Int("ttl", DefaultTTL, "time to live in seconds")
	fs.String("ip-provider", DefaultIPProvider, "local computer ip provider")
	fs.String("ip", "", "manual ip instead of get from provider")
	fs.Bool("force", false, "force to update even if local ip and published ip are the same")
	fs.BoolP("verbose", "v", false, "verbose mode")
	fs.String("provider", DefaultProvider, "DNS provider (gandi, cloudflare)")
	fs.Int("timeout", DefaultTimeout, "request timeout in seconds")
	fs.Int("interval", 0, "run every N seconds instead of once")
	fs.Bool("strict", false, "exit with an error when any subdomain update fails")
	fs.String("log-level", "", "log level (debug, info, warn, error)")

	fs.SetNormalizeFunc(NormalizeFlag)
}

// NormalizeFlag accepts the legacy "--v" spelling of "--verbose".
func NormalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "v" {
		name = "verbose"
	}
	return pflag.NormalizedName(name)
}

// New resolves every key as flag > environment > config file > default.
// When file is empty, config.yml is searched in the usual places and its
// absence is not an error.
func New(fs *pflag.FlagSet, file string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("api_base", DefaultAPIBase)
	v.SetDefault("ttl", DefaultTTL)
	v.SetDefault("ip_provider", DefaultIPProvider)
	v.SetDefault("timeout", DefaultTimeout)

	for _, b := range bindings {
		if b.env != "" {
			if err := v.BindEnv(b.key, b.env); err != nil {
				return nil, err
			}
		}
		if fs == nil {
			continue
		}
		if f := fs.Lookup(b.flag); f != nil {
			if err := v.BindPFlag(b.key, f); err != nil {
				return nil, err
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
		return v, nil
	}

	name := strings.ToLower(AppName)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/" + name)
	v.AddConfigPath("$HOME/." + name)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return v, nil
}

// Unmarshal decodes the resolved keys of v into a validated Config.
func Unmarshal(v *viper.Viper) (*Config, error) {
	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Load(fs *pflag.FlagSet, file string) (*Config, *viper.Viper, error) {
	v, err := New(fs, file)
	if err != nil {
		return nil, nil, err
	}
	c, err := Unmarshal(v)
	if err != nil {
		return nil, nil, err
	}
	return c, v, nil
}

// LoadDotEnv exports the variables of a .env file. Variables already present
// in the environment win, a missing file is ignored.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return gotenv.Load(path)
}

func (c *Config) Validate() error {
	c.Subdomains = helper.SplitList(c.Subdomain)

	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if c.Domain == "" {
		missing = append(missing, "domain")
	}
	if len(c.Subdomains) == 0 {
		missing = append(missing, "subdomain")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	domain, err := idna.Punycode.ToASCII(strings.TrimSuffix(c.Domain, "."))
	if err != nil {
		return fmt.Errorf("%w: domain %q: %v", ErrInvalidConfig, c.Domain, err)
	}
	c.Domain = domain

	c.Provider = strings.ToLower(c.Provider)
	switch c.Provider {
	case "gandi", "cloudflare":
	default:
		return fmt.Errorf("%w: provider %q", ErrInvalidConfig, c.Provider)
	}

	if c.TTL <= 0 {
		return fmt.Errorf("%w: ttl %d", ErrInvalidConfig, c.TTL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout %d", ErrInvalidConfig, c.Timeout)
	}
	if c.Interval < 0 {
		return fmt.Errorf("%w: interval %d", ErrInvalidConfig, c.Interval)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}
