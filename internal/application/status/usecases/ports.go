package usecases

import (
	"context"
	"encoding/json"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/shared/utils/jsonutil"
)

// UbusCaller is the ubus RPC bus.
type UbusCaller interface {
	Call(ctx context.Context, object, method string) ([]byte, error)
	DeviceStatus(ctx context.Context) ([]byte, error)
	InterfaceStatus(ctx context.Context, name string) ([]byte, error)
}

type StorageReader interface {
	Root(ctx context.Context) router.Storage
}

type TunnelProber interface {
	Status(ctx context.Context) *jsonutil.Object
}

type TrafficReader interface {
	Traffic(ctx context.Context, iface string) (json.RawMessage, error)
}

type LeaseCounter interface {
	Online() (int, error)
}

type ConnectivityChecker interface {
	Check(ctx context.Context) router.Connectivity
}

type PublicIPResolver interface {
	Lookup(ctx context.Context) router.PublicIP
}

// LatencyProber returns "<ms> ms" or "Timeout"; ok reports a measurement.
type LatencyProber interface {
	Time(ctx context.Context, host string) (result string, ok bool)
}

type ServiceLister interface {
	Running(ctx context.Context) ([]router.Service, error)
}

type LogTailer interface {
	Tail(ctx context.Context, lines int) router.LogContent
}

type NetdataReader interface {
	Info(ctx context.Context) ([]byte, error)
	Chart(ctx context.Context, chart string, all bool) ([]byte, error)
	Temperature() (router.Temperature, error)
}

// Sources bundles the data sources behind the topics. A nil source makes
// its topic report "query error" when requested.
type Sources struct {
	Ubus         UbusCaller
	Storage      StorageReader
	Tunnels      TunnelProber
	Vnstat       TrafficReader
	Leases       LeaseCounter
	Connectivity ConnectivityChecker
	PublicIP     PublicIPResolver
	Ping         LatencyProber
	Services     ServiceLister
	Logs         LogTailer
	Netdata      NetdataReader
}
