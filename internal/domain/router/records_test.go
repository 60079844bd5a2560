package router

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIP_JSON(t *testing.T) {
	out, err := json.Marshal(UnknownPublicIP())
	require.NoError(t, err)
	assert.Equal(t, `{"ip":"Unknown","isp":"Unknown"}`, string(out))

	out, err = json.Marshal(PublicIP{IP: "1.2.3.4", ISP: "X", Timestamp: 5})
	require.NoError(t, err)
	assert.Equal(t, `{"ip":"1.2.3.4","isp":"X","timestamp":5}`, string(out))
}

func TestService_JSONOmitsRSS(t *testing.T) {
	out, err := json.Marshal(Service{PID: "1", Name: "dnsmasq", Command: "/usr/sbin/dnsmasq", Status: ServiceStatusRunning, Memory: "1.5 MB", RSSKB: 1536})
	require.NoError(t, err)
	assert.Equal(t, `{"pid":"1","name":"dnsmasq","command":"/usr/sbin/dnsmasq","status":"running","memory":"1.5 MB"}`, string(out))
}

func TestNewConnectivity(t *testing.T) {
	assert.Equal(t, Connectivity{Status: "Connected", IconClass: "fa-check bg-gradient-primary"}, NewConnectivity(true))
	assert.Equal(t, Connectivity{Status: "Disconnected", IconClass: "fa-times bg-gradient-danger"}, NewConnectivity(false))
}
