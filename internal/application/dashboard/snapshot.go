package dashboard

import (
	"sync"
	"time"

	sdkstatus "github.com/orris-inc/resinfo/sdk/status"
)

// View is a copy of the widget state. Nil widgets have not been populated.
type View struct {
	Users      *Users      `json:"users,omitempty"`
	System     *System     `json:"system,omitempty"`
	CPUPercent *float64    `json:"cpu_percent,omitempty"`
	Traffic    *Traffic    `json:"traffic,omitempty"`
	Storage    *Storage    `json:"storage,omitempty"`
	Board      *Board      `json:"board,omitempty"`
	Connection *Connection `json:"connection,omitempty"`
	PublicIP   *PublicIP   `json:"publicip,omitempty"`
	Ping       *Ping       `json:"ping,omitempty"`
	Services   *Services   `json:"services,omitempty"`
	Tunnels    *Tunnels    `json:"tunnels,omitempty"`
	Logs       *Logs       `json:"logs,omitempty"`
	Vnstat     *Vnstat     `json:"vnstat,omitempty"`

	// UpdatedAt is keyed by group name.
	UpdatedAt map[string]time.Time `json:"updated_at"`
}

// Snapshot is the widget state shared by the poll groups.
type Snapshot struct {
	mu   sync.RWMutex
	view View
	// samples holds the last counters seen per interface.
	samples map[string]NetworkSample
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		view:    View{UpdatedAt: make(map[string]time.Time)},
		samples: make(map[string]NetworkSample),
	}
}

func ptr[T any](v T) *T { return &v }

// Apply projects doc onto the widgets owned by group and returns the names
// of the widgets that changed. Widgets whose topic failed keep their
// previous value.
func (s *Snapshot) Apply(group string, doc sdkstatus.Document, at time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated []string
	mark := func(name string) { updated = append(updated, name) }

	v := &s.view
	switch group {
	case GroupMain:
		if u, ok := ProjectUsers(doc); ok {
			v.Users = ptr(u)
			mark("users")
		}
		if sys, ok := ProjectSystem(doc); ok {
			v.System = ptr(sys)
			mark("system")
		}
		if cpu, ok := ProjectCPU(doc); ok {
			v.CPUPercent = ptr(cpu)
			mark("cpu")
		}
		if cur, ok := ProjectNetwork(doc, at); ok {
			if prev, seen := s.samples[cur.Interface]; seen {
				if t, ok := TrafficRate(prev, cur); ok {
					v.Traffic = ptr(t)
					mark("traffic")
				}
			}
			s.samples[cur.Interface] = cur
		}
		if st, ok := ProjectStorage(doc); ok {
			v.Storage = ptr(st)
			mark("storage")
		}
	case GroupResources:
		if b, ok := ProjectBoard(doc); ok {
			v.Board = ptr(b)
			mark("board")
		}
	case GroupConnection:
		if c, ok := ProjectConnection(doc); ok {
			v.Connection = ptr(c)
			mark("connection")
		}
	case GroupPublicIP:
		if p, ok := ProjectPublicIP(doc); ok {
			v.PublicIP = ptr(p)
			mark("publicip")
		}
	case GroupPing:
		if p, ok := ProjectPing(doc); ok {
			v.Ping = ptr(p)
			mark("ping")
		}
	case GroupTunnels:
		if t, ok := ProjectTunnels(doc); ok {
			v.Tunnels = ptr(t)
			mark("tunnels")
		}
	case GroupVnstat:
		if vn, ok := ProjectVnstat(doc); ok {
			v.Vnstat = ptr(vn)
			mark("vnstat")
		}
	case GroupServices:
		if sv, ok := ProjectServices(doc); ok {
			v.Services = ptr(sv)
			mark("services")
		}
	case GroupLogs:
		if l, ok := ProjectLogs(doc); ok {
			v.Logs = ptr(l)
			mark("logs")
		}
	}
	v.UpdatedAt[group] = at
	return updated
}

// View returns a copy of the current state.
func (s *Snapshot) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.view
	out.UpdatedAt = make(map[string]time.Time, len(s.view.UpdatedAt))
	for k, t := range s.view.UpdatedAt {
		out.UpdatedAt[k] = t
	}
	return out
}
