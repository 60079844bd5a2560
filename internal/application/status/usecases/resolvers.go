package usecases

import (
	"context"
	"encoding/json"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/domain/status"
	apperrors "github.com/orris-inc/resinfo/internal/shared/errors"
	"github.com/orris-inc/resinfo/internal/shared/utils/jsonutil"
)

// Selector values accepted by the fixed-action topics.
const (
	actionConnectionStatus = "status"
	actionPublicIPInfo     = "info"
	actionPingTime         = "time"
	actionServicesRunning  = "running"
	actionLogsSystem       = "system"
	actionUsersOnline      = "online"

	networkDevice    = "device"
	networkCPUInfo   = "getCPUInfo"
	networkTempInfo  = "getTempInfo"
	networkStorage   = "getStorage"
	luciTunnelStatus = "getTunnelStatus"
	netdataInfo      = "info"
	netdataTemp      = "temp"
)

func unavailable() outcome {
	return result(status.Fail(status.ReasonQueryError))
}

func invalid() outcome {
	return result(status.Fail(status.ReasonInvalidParameter))
}

// passthrough embeds raw upstream output as the single data item.
func passthrough(raw []byte) outcome {
	return result(status.OK(jsonutil.Embed(raw)))
}

func (uc *AggregateStatusUseCase) network(ctx context.Context, q status.Query) outcome {
	v, _ := q.Lookup(string(status.TopicNetwork))

	if v == networkStorage {
		if uc.sources.Storage == nil {
			return unavailable()
		}
		return result(status.OK(uc.sources.Storage.Root(ctx)))
	}
	if uc.sources.Ubus == nil {
		return unavailable()
	}

	switch v {
	case networkDevice:
		raw, err := uc.sources.Ubus.DeviceStatus(ctx)
		if err != nil {
			uc.logger.Warnw("device status unavailable", "error", err)
			return degraded(status.OK(), status.Fail(status.ReasonQueryError))
		}
		return passthrough(raw)
	case networkCPUInfo, networkTempInfo:
		raw, err := uc.sources.Ubus.Call(ctx, "luci", v)
		if err != nil {
			return result(status.Flagged(status.ReasonQueryError))
		}
		return passthrough(raw)
	}

	if err := checkIdentifier("ubus", v); err != nil {
		uc.logger.Debugw("network selector rejected", "error", err)
		return result(status.Flagged(status.ReasonInterfaceNotFound))
	}
	raw, err := uc.sources.Ubus.InterfaceStatus(ctx, v)
	if err != nil {
		return result(status.Flagged(status.ReasonInterfaceNotFound))
	}
	return passthrough(raw)
}

func (uc *AggregateStatusUseCase) system(ctx context.Context, q status.Query) outcome {
	v, _ := q.Lookup(string(status.TopicSystem))
	return uc.ubusMethod(ctx, "system", v)
}

func (uc *AggregateStatusUseCase) luci(ctx context.Context, q status.Query) outcome {
	v, _ := q.Lookup(string(status.TopicLuci))
	if v == luciTunnelStatus {
		if uc.sources.Tunnels == nil {
			return unavailable()
		}
		return result(status.OK(uc.sources.Tunnels.Status(ctx)))
	}
	return uc.ubusMethod(ctx, "luci", v)
}

// ubusMethod answers `<object>=<method>` passthrough selectors.
func (uc *AggregateStatusUseCase) ubusMethod(ctx context.Context, object, method string) outcome {
	if uc.sources.Ubus == nil {
		return unavailable()
	}
	if err := checkIdentifier("ubus", method); err != nil {
		uc.logger.Debugw("ubus method rejected", "object", object, "error", err)
		return result(status.Flagged(status.ReasonParameterNotFound))
	}
	raw, err := uc.sources.Ubus.Call(ctx, object, method)
	if err != nil {
		return result(status.Flagged(status.ReasonParameterNotFound))
	}
	return passthrough(raw)
}

func (uc *AggregateStatusUseCase) vnstat(ctx context.Context, q status.Query) outcome {
	if uc.sources.Vnstat == nil {
		return unavailable()
	}
	iface, _ := q.Lookup(string(status.TopicVnstat))

	traffic, err := uc.vnstatTraffic(ctx, iface)
	if err == nil {
		return result(status.OK(traffic))
	}
	switch apperrors.GetType(err) {
	case apperrors.ErrorTypeInvalid:
		uc.logger.Debugw("vnstat interface rejected", "error", err)
		return result(status.Flagged(status.ReasonInterfaceNotFound))
	case apperrors.ErrorTypeNotFound, apperrors.ErrorTypeMalformed:
		return degraded(status.OK(), status.Fail(status.ReasonInterfaceNotFound))
	case apperrors.ErrorTypeUnavailable:
		uc.logger.Warnw("vnstat unavailable", "interface", iface, "error", err)
		return result(status.Flagged(status.ReasonQueryError))
	default:
		return result(status.Flagged(status.ReasonInterfaceNotFound))
	}
}

func (uc *AggregateStatusUseCase) vnstatTraffic(ctx context.Context, iface string) (json.RawMessage, error) {
	if err := checkIdentifier("vnstat", iface); err != nil {
		return nil, err
	}
	return uc.sources.Vnstat.Traffic(ctx, iface)
}

func (uc *AggregateStatusUseCase) users(_ context.Context, q status.Query) outcome {
	action, _ := q.Lookup(string(status.TopicUsers))
	if action != actionUsersOnline {
		return degraded(
			status.OK(router.ActionError{Error: string(status.ReasonUnknownAction)}),
			status.Fail(status.ReasonUnknownAction),
		)
	}
	if uc.sources.Leases == nil {
		return unavailable()
	}
	n, err := uc.sources.Leases.Online()
	if err != nil {
		uc.logger.Warnw("failed to count dhcp leases", "error", err)
		return result(status.Flagged(status.ReasonQueryError))
	}
	return result(status.OK(router.OnlineUsers{Online: n}))
}

func (uc *AggregateStatusUseCase) connection(ctx context.Context, q status.Query) outcome {
	if v, _ := q.Lookup(string(status.TopicConnection)); v != actionConnectionStatus {
		return invalid()
	}
	if uc.sources.Connectivity == nil {
		return unavailable()
	}
	return result(status.OK(uc.sources.Connectivity.Check(ctx)))
}

func (uc *AggregateStatusUseCase) publicIP(ctx context.Context, q status.Query) outcome {
	if v, _ := q.Lookup(string(status.TopicPublicIP)); v != actionPublicIPInfo {
		return invalid()
	}
	if uc.sources.PublicIP == nil {
		return unavailable()
	}
	return result(status.OK(uc.sources.PublicIP.Lookup(ctx)))
}

func (uc *AggregateStatusUseCase) ping(ctx context.Context, q status.Query) outcome {
	if v, _ := q.Lookup(string(status.TopicPing)); v != actionPingTime {
		return invalid()
	}

	host := router.NormalizeProbeHost(q.Value("host", ""))
	if host == "" {
		host = uc.opts.DefaultPingHost
	}
	if !router.ValidProbeHost(host) {
		return invalid()
	}
	if uc.sources.Ping == nil {
		return unavailable()
	}

	t, ok := uc.sources.Ping.Time(ctx, host)
	data := router.PingTime{Time: t}
	if !ok {
		return degraded(status.OK(data), status.FailWith(status.ReasonQueryError, data))
	}
	return result(status.OK(data))
}

func (uc *AggregateStatusUseCase) services(ctx context.Context, q status.Query) outcome {
	if v, _ := q.Lookup(string(status.TopicServices)); v != actionServicesRunning {
		return invalid()
	}
	if uc.sources.Services == nil {
		return unavailable()
	}

	list, err := uc.sources.Services.Running(ctx)
	if err != nil {
		return degraded(status.OK(), status.Fail(status.ReasonQueryError))
	}
	items := make([]any, len(list))
	for i := range list {
		items[i] = list[i]
	}
	return result(status.OK(items...))
}

func (uc *AggregateStatusUseCase) logs(ctx context.Context, q status.Query) outcome {
	if v, _ := q.Lookup(string(status.TopicLogs)); v != actionLogsSystem {
		return invalid()
	}
	if uc.sources.Logs == nil {
		return unavailable()
	}
	raw, present := q.Lookup("lines")
	n := parseLines(raw, present, uc.opts.DefaultLogLines, uc.opts.MaxLogLines)
	return result(status.OK(uc.sources.Logs.Tail(ctx, n)))
}

func (uc *AggregateStatusUseCase) netdata(ctx context.Context, q status.Query) outcome {
	if uc.sources.Netdata == nil {
		return unavailable()
	}
	v, _ := q.Lookup(string(status.TopicNetdata))

	switch v {
	case netdataInfo:
		body, err := uc.sources.Netdata.Info(ctx)
		if err != nil {
			uc.logger.Debugw("netdata info failed", "error", err)
			return result(status.Flagged(status.ReasonQueryError))
		}
		return passthrough(body)
	case netdataTemp:
		temp, err := uc.sources.Netdata.Temperature()
		if err != nil {
			uc.logger.Debugw("thermal zone unreadable", "error", err)
			return result(status.Flagged(status.ReasonQueryError))
		}
		return result(status.OK(temp))
	}

	if err := checkIdentifier("netdata", v); err != nil {
		uc.logger.Debugw("netdata chart rejected", "error", err)
		return result(status.Flagged(status.ReasonParameterNotFound))
	}
	body, err := uc.sources.Netdata.Chart(ctx, v, q.Value("data", "") == "all")
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return result(status.Flagged(status.ReasonParameterNotFound))
		}
		uc.logger.Debugw("netdata chart failed", "chart", v, "error", err)
		return result(status.Flagged(status.ReasonQueryError))
	}
	return passthrough(body)
}
