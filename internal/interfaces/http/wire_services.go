package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/resinfo/internal/application/status/usecases"
	"github.com/orris-inc/resinfo/internal/infrastructure/cache"
	"github.com/orris-inc/resinfo/internal/infrastructure/config"
	"github.com/orris-inc/resinfo/internal/infrastructure/connectivity"
	"github.com/orris-inc/resinfo/internal/infrastructure/dhcp"
	"github.com/orris-inc/resinfo/internal/infrastructure/netdata"
	"github.com/orris-inc/resinfo/internal/infrastructure/ping"
	"github.com/orris-inc/resinfo/internal/infrastructure/processes"
	"github.com/orris-inc/resinfo/internal/infrastructure/publicip"
	"github.com/orris-inc/resinfo/internal/infrastructure/ratelimit"
	"github.com/orris-inc/resinfo/internal/infrastructure/shell"
	"github.com/orris-inc/resinfo/internal/infrastructure/storage"
	"github.com/orris-inc/resinfo/internal/infrastructure/syslog"
	"github.com/orris-inc/resinfo/internal/infrastructure/tunnels"
	"github.com/orris-inc/resinfo/internal/infrastructure/ubus"
	"github.com/orris-inc/resinfo/internal/infrastructure/vnstat"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

const redisPingTimeout = 3 * time.Second

// newKVStore returns the cache driver selected by cfg.Cache.Driver. The
// returned client is nil for the file driver.
func newKVStore(cfg *config.Config) (cache.KVStore, *redis.Client, error) {
	switch cfg.Cache.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
		}
		return cache.NewRedisKVStore(client, cfg.Redis.Prefix, 0), client, nil
	default:
		return cache.NewFileStore(cfg.Cache.Dir), nil, nil
	}
}

// newLimiter shares limits through Redis when a client is available and
// keeps them in memory otherwise. It returns nil when limiting is disabled.
func newLimiter(cfg *config.Config, client *redis.Client) ratelimit.Limiter {
	if cfg.Server.RateLimit <= 0 {
		return nil
	}
	if client != nil {
		return ratelimit.NewRedisLimiter(client, cfg.Redis.Prefix, cfg.Server.RateLimit)
	}
	return ratelimit.NewMemoryLimiter(cfg.Server.RateLimit)
}

func newPingPrimary(cfg *config.Config, runner shell.Runner) ping.Probe {
	if cfg.Ping.Primary == "icmp" {
		return ping.NewICMPProbe(cfg.Ping.Timeout, cfg.Ping.Privileged)
	}
	return ping.NewHttpingProbe(runner, cfg.Ping.HttpingPath, cfg.Ping.Timeout)
}

func newProcessSource(cfg *config.Config, runner shell.Runner) processes.Source {
	if cfg.Services.Source == "gopsutil" {
		return processes.NewGopsutilSource()
	}
	return processes.NewPSSource(runner, cfg.Shell.PsPath)
}

// newSources wires every topic's data source from cfg.
func newSources(cfg *config.Config, store cache.KVStore, log logger.Interface) usecases.Sources {
	runner := shell.NewExecRunner(cfg.Shell.Timeout)

	return usecases.Sources{
		Ubus:    ubus.NewClient(runner, cfg.Shell.UbusPath, log.Named("ubus")),
		Storage: storage.NewReader(runner, cfg.Shell.DfPath, log.Named("storage")),
		Tunnels: tunnels.NewProbe(runner, cfg.Shell.PidofPath, log.Named("tunnels")),
		Vnstat:  vnstat.NewClient(runner, cfg.Shell.VnstatPath),
		Leases:  dhcp.NewLeases(cfg.DHCP.LeasesFile),
		Connectivity: connectivity.NewChecker(
			cfg.Connection.URL, cfg.Connection.Timeout, log.Named("connectivity"),
		),
		PublicIP: publicip.NewService(store, cfg.PublicIP.Timeout, log.Named("publicip"),
			publicip.WithURL(cfg.PublicIP.URL),
			publicip.WithFreshness(cfg.PublicIP.Freshness),
		),
		Ping: ping.NewProber(
			newPingPrimary(cfg, runner),
			ping.NewHTTPProbe(cfg.Ping.Timeout),
			log.Named("ping"),
		),
		Services: processes.NewService(
			newProcessSource(cfg, runner),
			processes.NewProcReader(cfg.Services.ProcRoot),
			cfg.Services.Limit,
			log.Named("processes"),
		),
		Logs:    syslog.NewReader(runner, cfg.Shell.LogreadPath, log.Named("syslog")),
		Netdata: netdata.NewClient(cfg.Netdata.BaseURL, cfg.Netdata.ThermalPath, cfg.Netdata.Timeout, log.Named("netdata")),
	}
}

func newOptions(cfg *config.Config) usecases.Options {
	return usecases.Options{
		Parallel:        cfg.Status.Parallel,
		StrictEnvelopes: cfg.Status.StrictEnvelopes,
		DefaultPingHost: cfg.Ping.DefaultHost,
		DefaultLogLines: cfg.Logs.DefaultLines,
		MaxLogLines:     cfg.Logs.MaxLines,
	}
}
