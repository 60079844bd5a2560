package usecases

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/shared/utils/jsonutil"
)

func rawArg(args mock.Arguments, i int) []byte {
	if v := args.Get(i); v != nil {
		return []byte(v.(string))
	}
	return nil
}

type mockUbus struct{ mock.Mock }

func (m *mockUbus) Call(ctx context.Context, object, method string) ([]byte, error) {
	args := m.Called(ctx, object, method)
	return rawArg(args, 0), args.Error(1)
}

func (m *mockUbus) DeviceStatus(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	return rawArg(args, 0), args.Error(1)
}

func (m *mockUbus) InterfaceStatus(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	return rawArg(args, 0), args.Error(1)
}

type mockVnstat struct{ mock.Mock }

func (m *mockVnstat) Traffic(ctx context.Context, iface string) (json.RawMessage, error) {
	args := m.Called(ctx, iface)
	return json.RawMessage(rawArg(args, 0)), args.Error(1)
}

type mockLeases struct{ mock.Mock }

func (m *mockLeases) Online() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

type mockProber struct{ mock.Mock }

func (m *mockProber) Time(ctx context.Context, host string) (string, bool) {
	args := m.Called(ctx, host)
	return args.String(0), args.Bool(1)
}

type mockServices struct{ mock.Mock }

func (m *mockServices) Running(ctx context.Context) ([]router.Service, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]router.Service)
	return list, args.Error(1)
}

type mockLogs struct{ mock.Mock }

func (m *mockLogs) Tail(ctx context.Context, lines int) router.LogContent {
	args := m.Called(ctx, lines)
	return args.Get(0).(router.LogContent)
}

type mockNetdata struct{ mock.Mock }

func (m *mockNetdata) Info(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	return rawArg(args, 0), args.Error(1)
}

func (m *mockNetdata) Chart(ctx context.Context, chart string, all bool) ([]byte, error) {
	args := m.Called(ctx, chart, all)
	return rawArg(args, 0), args.Error(1)
}

func (m *mockNetdata) Temperature() (router.Temperature, error) {
	args := m.Called()
	return args.Get(0).(router.Temperature), args.Error(1)
}

type stubStorage struct{ storage router.Storage }

func (s stubStorage) Root(context.Context) router.Storage { return s.storage }

type stubTunnels struct{ obj *jsonutil.Object }

func (s stubTunnels) Status(context.Context) *jsonutil.Object { return s.obj }

type stubConnectivity struct{ connected bool }

func (s stubConnectivity) Check(context.Context) router.Connectivity {
	return router.NewConnectivity(s.connected)
}

type stubPublicIP struct{ ip router.PublicIP }

func (s stubPublicIP) Lookup(context.Context) router.PublicIP { return s.ip }

type panickingLeases struct{}

func (panickingLeases) Online() (int, error) { panic("lease file exploded") }
