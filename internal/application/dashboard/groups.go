// Package dashboard polls the status endpoint on per-widget cadences and
// projects the returned documents onto dashboard widgets.
package dashboard

import (
	"net/url"
	"strconv"
	"time"
)

// Poll group names.
const (
	GroupMain       = "main"
	GroupResources  = "resources"
	GroupConnection = "connection"
	GroupPublicIP   = "publicip"
	GroupPing       = "ping"
	GroupTunnels    = "tunnels"
	GroupVnstat     = "vnstat"
	GroupServices   = "services"
	GroupLogs       = "logs"
)

// DefaultIntervals are the cadences of the stock front end.
var DefaultIntervals = map[string]time.Duration{
	GroupMain:       3 * time.Second,
	GroupResources:  10 * time.Second,
	GroupConnection: 30 * time.Second,
	GroupPublicIP:   30 * time.Second,
	GroupPing:       30 * time.Second,
	GroupTunnels:    60 * time.Second,
	GroupVnstat:     300 * time.Second,
	GroupServices:   60 * time.Second,
	GroupLogs:       60 * time.Second,
}

// Group is one set of selectors requested together on its own timer.
type Group struct {
	Name     string
	Query    url.Values
	Interval time.Duration
}

// Settings parameterize the selector values of the groups.
type Settings struct {
	Interface string
	PingHost  string
	LogLines  int
	// Intervals overrides DefaultIntervals per group name. A zero or
	// negative interval disables the group.
	Intervals map[string]time.Duration
}

// Groups returns the poll groups in a stable order.
func Groups(s Settings) []Group {
	iface := s.Interface
	if iface == "" {
		iface = "eth0"
	}
	host := s.PingHost
	if host == "" {
		host = "google.com"
	}
	lines := s.LogLines
	if lines <= 0 {
		lines = 100
	}

	all := []Group{
		{Name: GroupMain, Query: url.Values{
			"network": {"device"},
			"system":  {"info"},
			"luci":    {"getCPUUsage"},
			"users":   {"online"},
		}},
		{Name: GroupResources, Query: url.Values{"system": {"board"}, "luci": {"getCPUInfo"}}},
		{Name: GroupConnection, Query: url.Values{"connection": {"status"}}},
		{Name: GroupPublicIP, Query: url.Values{"publicip": {"info"}}},
		{Name: GroupPing, Query: url.Values{"ping": {"time"}, "host": {host}}},
		{Name: GroupTunnels, Query: url.Values{"luci": {"getTunnelStatus"}}},
		{Name: GroupVnstat, Query: url.Values{"vnstat": {iface}}},
		{Name: GroupServices, Query: url.Values{"services": {"running"}}},
		{Name: GroupLogs, Query: url.Values{"logs": {"system"}, "lines": {strconv.Itoa(lines)}}},
	}

	groups := make([]Group, 0, len(all))
	for _, g := range all {
		g.Interval = DefaultIntervals[g.Name]
		if d, ok := s.Intervals[g.Name]; ok {
			g.Interval = d
		}
		if g.Interval <= 0 {
			continue
		}
		groups = append(groups, g)
	}
	return groups
}
