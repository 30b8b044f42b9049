package config

type Config struct {
	LogLevel   string  `mapstructure:"log_level" yaml:"LogLevel"`
	Provider   string  `mapstructure:"provider" yaml:"Provider"`
	APIKey     string  `mapstructure:"api_key" yaml:"APIKey"`
	APIBase    string  `mapstructure:"api_base" yaml:"APIBase"`
	Domain     string  `mapstructure:"domain" yaml:"Domain"`
	Subdomain  string  `mapstructure:"subdomain" yaml:"Subdomain"`
	TTL        int     `mapstructure:"ttl" yaml:"TTL"`
	IPProvider string  `mapstructure:"ip_provider" yaml:"IPProvider"`
	IP         string  `mapstructure:"ip" yaml:"IP,omitempty"`
	Force      bool    `mapstructure:"force" yaml:"Force"`
	Verbose    bool    `mapstructure:"verbose" yaml:"Verbose"`
	Timeout    int     `mapstructure:"timeout" yaml:"Timeout"`
	Interval   int     `mapstructure:"interval" yaml:"Interval"`
	Strict     bool    `mapstructure:"strict" yaml:"Strict"`
	Notify     *Notify `mapstructure:"notify" yaml:"Notify,omitempty"`

	// Subdomains is Subdomain split into its items, filled by Validate.
	Subdomains []string `mapstructure:"-" yaml:"Subdomains"`
}

type Notify struct {
	Enable   bool              `mapstructure:"enable" yaml:"Enable"`
	Provider string            `mapstructure:"provider" yaml:"Provider"`
	Config   map[string]string `mapstructure:"config" yaml:"Config"`
}
