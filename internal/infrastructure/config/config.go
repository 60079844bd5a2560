package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/resinfo/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Status     sharedConfig.StatusConfig     `mapstructure:"status"`
	Shell      sharedConfig.ShellConfig      `mapstructure:"shell"`
	Cache      sharedConfig.CacheConfig      `mapstructure:"cache"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	PublicIP   sharedConfig.PublicIPConfig   `mapstructure:"publicip"`
	Ping       sharedConfig.PingConfig       `mapstructure:"ping"`
	Connection sharedConfig.ConnectionConfig `mapstructure:"connection"`
	DHCP       sharedConfig.DHCPConfig       `mapstructure:"dhcp"`
	Logs       sharedConfig.LogsConfig       `mapstructure:"logs"`
	Netdata    sharedConfig.NetdataConfig    `mapstructure:"netdata"`
	Services   sharedConfig.ServicesConfig   `mapstructure:"services"`
	Poller     sharedConfig.PollerConfig     `mapstructure:"poller"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads config.yaml (optional) and RESINFO_* environment variables.
// A non-empty file overrides the search path; a non-empty mode overrides
// server.mode.
func Load(file, mode string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("/etc/resinfo")
	}

	v.SetEnvPrefix("RESINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if mode != "" && mode != "default" {
		v.Set("server.mode", mode)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the most recently loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8088)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.rate_limit", 600)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("status.parallel", true)
	v.SetDefault("status.strict_envelopes", false)

	v.SetDefault("shell.timeout", 5*time.Second)
	v.SetDefault("shell.ubus_path", "ubus")
	v.SetDefault("shell.vnstat_path", "vnstat")
	v.SetDefault("shell.logread_path", "logread")
	v.SetDefault("shell.pidof_path", "pidof")
	v.SetDefault("shell.ps_path", "ps")
	v.SetDefault("shell.df_path", "df")

	v.SetDefault("cache.driver", "file")
	v.SetDefault("cache.dir", "/etc/resinfo")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "resinfo:")

	v.SetDefault("publicip.url", "http://ip-api.com/json/")
	v.SetDefault("publicip.timeout", 5*time.Second)
	v.SetDefault("publicip.freshness", 300*time.Second)

	v.SetDefault("ping.primary", "httping")
	v.SetDefault("ping.default_host", "google.com")
	v.SetDefault("ping.timeout", 2*time.Second)
	v.SetDefault("ping.httping_path", "/usr/bin/httping")
	v.SetDefault("ping.privileged", false)

	v.SetDefault("connection.url", "https://8.8.8.8")
	v.SetDefault("connection.timeout", 5*time.Second)

	v.SetDefault("dhcp.leases_file", "/tmp/dhcp.leases")

	v.SetDefault("logs.default_lines", 50)
	v.SetDefault("logs.max_lines", 1000)

	v.SetDefault("netdata.base_url", "http://127.0.0.1:19999")
	v.SetDefault("netdata.thermal_path", "/sys/class/thermal/thermal_zone0/temp")
	v.SetDefault("netdata.timeout", 5*time.Second)

	v.SetDefault("services.source", "ps")
	v.SetDefault("services.limit", 20)
	v.SetDefault("services.proc_root", "/proc")

	v.SetDefault("poller.base_url", "http://127.0.0.1:8088/api.php")
	v.SetDefault("poller.timeout", 10*time.Second)
	v.SetDefault("poller.interface", "eth0")
	v.SetDefault("poller.ping_host", "google.com")
	v.SetDefault("poller.log_lines", 100)
	v.SetDefault("poller.intervals", map[string]time.Duration{
		"main":       3 * time.Second,
		"resources":  10 * time.Second,
		"connection": 30 * time.Second,
		"publicip":   30 * time.Second,
		"ping":       30 * time.Second,
		"tunnels":    60 * time.Second,
		"vnstat":     300 * time.Second,
		"services":   60 * time.Second,
		"logs":       60 * time.Second,
	})
}
