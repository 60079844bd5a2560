package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	Mode         string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// RateLimit is the number of status requests one client IP may make per
	// minute. Zero disables limiting.
	RateLimit int `mapstructure:"rate_limit" validate:"gte=0"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

// StatusConfig controls how the aggregate document is assembled.
type StatusConfig struct {
	Parallel        bool `mapstructure:"parallel"`
	StrictEnvelopes bool `mapstructure:"strict_envelopes"`
}

type ShellConfig struct {
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UbusPath    string        `mapstructure:"ubus_path" validate:"required"`
	VnstatPath  string        `mapstructure:"vnstat_path" validate:"required"`
	LogreadPath string        `mapstructure:"logread_path" validate:"required"`
	PidofPath   string        `mapstructure:"pidof_path" validate:"required"`
	PsPath      string        `mapstructure:"ps_path" validate:"required"`
	DfPath      string        `mapstructure:"df_path" validate:"required"`
}

type CacheConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=file redis"`
	Dir    string `mapstructure:"dir" validate:"required_if=Driver file"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type PublicIPConfig struct {
	URL       string        `mapstructure:"url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Freshness time.Duration `mapstructure:"freshness" validate:"gt=0"`
}

type PingConfig struct {
	Primary     string        `mapstructure:"primary" validate:"oneof=httping icmp"`
	DefaultHost string        `mapstructure:"default_host" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	HttpingPath string        `mapstructure:"httping_path" validate:"required"`
	Privileged  bool          `mapstructure:"privileged"`
}

type ConnectionConfig struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type DHCPConfig struct {
	LeasesFile string `mapstructure:"leases_file" validate:"required"`
}

type LogsConfig struct {
	DefaultLines int `mapstructure:"default_lines" validate:"gt=0"`
	MaxLines     int `mapstructure:"max_lines" validate:"gtefield=DefaultLines"`
}

type NetdataConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	ThermalPath string        `mapstructure:"thermal_path" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type ServicesConfig struct {
	Source   string `mapstructure:"source" validate:"oneof=ps gopsutil"`
	Limit    int    `mapstructure:"limit" validate:"gt=0,lte=20"`
	ProcRoot string `mapstructure:"proc_root" validate:"required"`
}

// PollerConfig drives the `poll` command. Intervals are keyed by group name.
type PollerConfig struct {
	BaseURL   string                   `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration            `mapstructure:"timeout" validate:"gt=0"`
	Interface string                   `mapstructure:"interface" validate:"required"`
	PingHost  string                   `mapstructure:"ping_host" validate:"required"`
	LogLines  int                      `mapstructure:"log_lines" validate:"gt=0"`
	Intervals map[string]time.Duration `mapstructure:"intervals"`
}
