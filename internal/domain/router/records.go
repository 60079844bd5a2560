// Package router holds the records produced from the router's tools and
// daemons before they are wrapped into status envelopes.
package router

// UnknownValue is reported for public IP fields that could not be resolved.
const UnknownValue = "Unknown"

// PublicIP is the cached public address record.
type PublicIP struct {
	IP        string `json:"ip"`
	ISP       string `json:"isp"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// UnknownPublicIP is returned when neither cache nor upstream can answer.
func UnknownPublicIP() PublicIP {
	return PublicIP{IP: UnknownValue, ISP: UnknownValue}
}

// Service is one allow-listed running process.
type Service struct {
	PID     string `json:"pid"`
	Name    string `json:"name"`
	Command string `json:"command"`
	Status  string `json:"status"`
	Memory  string `json:"memory"`

	// RSSKB is the resident set size used for ordering. Zero when unknown.
	RSSKB int64 `json:"-"`
}

const ServiceStatusRunning = "running"

// Tunnel is the state of one tunnel daemon.
type Tunnel struct {
	Name    string `json:"name"`
	Running bool   `json:"running"`
}

// Connectivity states and their dashboard icon classes.
const (
	ConnectivityConnected    = "Connected"
	ConnectivityDisconnected = "Disconnected"
)

type Connectivity struct {
	Status    string `json:"status"`
	IconClass string `json:"icon_class"`
}

func NewConnectivity(connected bool) Connectivity {
	if connected {
		return Connectivity{Status: ConnectivityConnected, IconClass: "fa-check bg-gradient-primary"}
	}
	return Connectivity{Status: ConnectivityDisconnected, IconClass: "fa-times bg-gradient-danger"}
}

// PingTimeout is the ping result when no strategy produced a timing.
const PingTimeout = "Timeout"

type PingTime struct {
	Time string `json:"time"`
}

type OnlineUsers struct {
	Online int `json:"online"`
}

// ActionError is the data item of a users request with an unknown action.
type ActionError struct {
	Error string `json:"error"`
}

// LogsEmpty is the content reported when logread returned nothing.
const LogsEmpty = "No logs available"

type LogContent struct {
	Content string `json:"content"`
}

// FilesystemUsage is expressed in kilobytes.
type FilesystemUsage struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
}

type Storage struct {
	Root *FilesystemUsage `json:"root,omitempty"`
}

// Temperature carries the raw thermal zone reading (millidegrees).
type Temperature struct {
	Temp int64 `json:"temp"`
}
