package dashboard

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/orris-inc/resinfo/internal/shared/utils/jsonutil"
	sdkstatus "github.com/orris-inc/resinfo/sdk/status"
)

const (
	// maxUsers is the online user count shown as a full bar.
	maxUsers = 50
	// maxUptimeSeconds is the uptime shown as a full bar (30 days).
	maxUptimeSeconds = 30 * 24 * 60 * 60
)

// PingLevel classifies a latency for display.
type PingLevel string

const (
	PingGood PingLevel = "good"
	PingWarn PingLevel = "warn"
	PingBad  PingLevel = "bad"
)

type Users struct {
	Online  int     `json:"online"`
	Percent float64 `json:"percent"`
}

type System struct {
	Uptime            string  `json:"uptime"`
	UptimePercent     float64 `json:"uptime_percent"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	MemoryTotal       string  `json:"memory_total"`
	MemoryFree        string  `json:"memory_free"`
}

type Board struct {
	Model    string `json:"model"`
	Hostname string `json:"hostname"`
	Kernel   string `json:"kernel"`
	Release  string `json:"release,omitempty"`
}

type Connection struct {
	Status    string `json:"status"`
	IconClass string `json:"icon_class"`
}

type PublicIP struct {
	IP  string `json:"ip"`
	ISP string `json:"isp"`
}

type Ping struct {
	Time  string    `json:"time"`
	Level PingLevel `json:"level"`
}

type Services struct {
	Count     int    `json:"count"`
	TopName   string `json:"top_name,omitempty"`
	TopMemory string `json:"top_memory,omitempty"`
}

type Tunnels struct {
	Running []string `json:"running"`
	Total   int      `json:"total"`
}

type Logs struct {
	Lines int `json:"lines"`
}

// Traffic is the rx/tx rate of one interface between two polls.
type Traffic struct {
	Interface   string  `json:"interface"`
	DownloadBps float64 `json:"download_bps"`
	UploadBps   float64 `json:"upload_bps"`
	Download    string  `json:"download"`
	Upload      string  `json:"upload"`
}

type Storage struct {
	UsedPercent float64 `json:"used_percent"`
	Total       string  `json:"total"`
	Free        string  `json:"free"`
	Used        string  `json:"used"`
}

type Vnstat struct {
	Days   int `json:"days"`
	Months int `json:"months"`
}

// first returns the first data item of a successful topic envelope.
func first(doc sdkstatus.Document, topic string) (json.RawMessage, bool) {
	env, ok := doc.Topic(topic)
	if !ok || !env.Status || len(env.Data) == 0 {
		return nil, false
	}
	return env.Data[0], true
}

func decodeFirst(doc sdkstatus.Document, topic string, v any) bool {
	raw, ok := first(doc, topic)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// ProjectUsers reads users=online.
func ProjectUsers(doc sdkstatus.Document) (Users, bool) {
	var item struct {
		Online *int `json:"online"`
	}
	if !decodeFirst(doc, "users", &item) || item.Online == nil {
		return Users{}, false
	}
	pct := math.Min(100, float64(*item.Online)*100/maxUsers)
	return Users{Online: *item.Online, Percent: pct}, true
}

type systemInfo struct {
	Uptime int64     `json:"uptime"`
	Load   []float64 `json:"load"`
	Memory *struct {
		Total uint64 `json:"total"`
		Free  uint64 `json:"free"`
	} `json:"memory"`
}

// ProjectSystem reads system=info.
func ProjectSystem(doc sdkstatus.Document) (System, bool) {
	var info systemInfo
	if !decodeFirst(doc, "system", &info) {
		return System{}, false
	}
	if info.Uptime == 0 && info.Memory == nil {
		return System{}, false
	}

	s := System{
		Uptime:        FormatUptime(info.Uptime),
		UptimePercent: math.Min(100, float64(info.Uptime)*100/maxUptimeSeconds),
	}
	if m := info.Memory; m != nil && m.Total > 0 {
		used := float64(m.Total) - float64(m.Free)
		s.MemoryUsedPercent = round1(used / float64(m.Total) * 100)
		s.MemoryTotal = FormatBytes(m.Total)
		s.MemoryFree = FormatBytes(m.Free)
	}
	return s, true
}

// ProjectCPU reads luci=getCPUUsage, falling back to the 1 minute load
// average of system=info (load[0]/100, capped at 100).
func ProjectCPU(doc sdkstatus.Document) (float64, bool) {
	var usage struct {
		CPUUsage string `json:"cpuusage"`
	}
	if decodeFirst(doc, "luci", &usage) && usage.CPUUsage != "" {
		pct, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(usage.CPUUsage, "%")), 64)
		if err == nil {
			return pct, true
		}
	}

	var info systemInfo
	if decodeFirst(doc, "system", &info) && len(info.Load) > 0 {
		return round1(math.Min(100, info.Load[0]/100)), true
	}
	return 0, false
}

// NetworkSample is one reading of an interface's byte counters.
type NetworkSample struct {
	Interface string
	RxBytes   uint64
	TxBytes   uint64
	At        time.Time
}

// ProjectNetwork reads the counters of the first interface in network=device
// that is up and reports statistics. Interfaces are visited in the order the
// device dump lists them.
func ProjectNetwork(doc sdkstatus.Document, at time.Time) (NetworkSample, bool) {
	raw, ok := first(doc, "network")
	if !ok {
		return NetworkSample{}, false
	}
	obj, err := jsonutil.ParseObject(raw)
	if err != nil {
		return NetworkSample{}, false
	}
	for _, m := range obj.Members() {
		var dev struct {
			Up         bool `json:"up"`
			Statistics *struct {
				RxBytes uint64 `json:"rx_bytes"`
				TxBytes uint64 `json:"tx_bytes"`
			} `json:"statistics"`
		}
		if json.Unmarshal(m.Value, &dev) != nil || !dev.Up || dev.Statistics == nil {
			continue
		}
		return NetworkSample{
			Interface: m.Key,
			RxBytes:   dev.Statistics.RxBytes,
			TxBytes:   dev.Statistics.TxBytes,
			At:        at,
		}, true
	}
	return NetworkSample{}, false
}

// TrafficRate computes the rates between two samples of the same interface.
// A counter that went backwards (interface reset) reads as zero.
func TrafficRate(prev, cur NetworkSample) (Traffic, bool) {
	elapsed := cur.At.Sub(prev.At).Seconds()
	if prev.Interface != cur.Interface || elapsed <= 0 {
		return Traffic{}, false
	}
	rate := func(before, after uint64) float64 {
		if after < before {
			return 0
		}
		return float64(after-before) / elapsed
	}
	down := rate(prev.RxBytes, cur.RxBytes)
	up := rate(prev.TxBytes, cur.TxBytes)
	return Traffic{
		Interface:   cur.Interface,
		DownloadBps: down,
		UploadBps:   up,
		Download:    FormatRate(down),
		Upload:      FormatRate(up),
	}, true
}

// ProjectStorage reads the root filesystem block of system=info. Sizes are
// reported in KB, as numbers or numeric strings.
func ProjectStorage(doc sdkstatus.Document) (Storage, bool) {
	var info struct {
		Root *struct {
			Total json.RawMessage `json:"total"`
			Free  json.RawMessage `json:"free"`
		} `json:"root"`
	}
	if !decodeFirst(doc, "system", &info) || info.Root == nil {
		return Storage{}, false
	}
	total, ok1 := parseKB(info.Root.Total)
	free, ok2 := parseKB(info.Root.Free)
	if !ok1 || !ok2 || total == 0 || free > total {
		return Storage{}, false
	}
	used := total - free
	return Storage{
		UsedPercent: round1(float64(used) * 100 / float64(total)),
		Total:       FormatBytes(total),
		Free:        FormatBytes(free),
		Used:        FormatBytes(used),
	}, true
}

// parseKB returns a KB count as bytes.
func parseKB(raw json.RawMessage) (uint64, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n * 1024, true
}

// ProjectBoard reads system=board.
func ProjectBoard(doc sdkstatus.Document) (Board, bool) {
	var board struct {
		Model    string `json:"model"`
		Hostname string `json:"hostname"`
		Kernel   string `json:"kernel"`
		Release  struct {
			Distribution string `json:"distribution"`
			Version      string `json:"version"`
		} `json:"release"`
	}
	if !decodeFirst(doc, "system", &board) || board.Model == "" {
		return Board{}, false
	}
	return Board{
		Model:    board.Model,
		Hostname: board.Hostname,
		Kernel:   board.Kernel,
		Release:  strings.TrimSpace(board.Release.Distribution + " " + board.Release.Version),
	}, true
}

func ProjectConnection(doc sdkstatus.Document) (Connection, bool) {
	var c Connection
	if !decodeFirst(doc, "connection", &c) || c.Status == "" {
		return Connection{}, false
	}
	return c, true
}

func ProjectPublicIP(doc sdkstatus.Document) (PublicIP, bool) {
	var p PublicIP
	if !decodeFirst(doc, "publicip", &p) || p.IP == "" {
		return PublicIP{}, false
	}
	return p, true
}

var pingValuePattern = regexp.MustCompile(`([\d.]+)`)

// ProjectPing reads ping=time and classifies the latency.
func ProjectPing(doc sdkstatus.Document) (Ping, bool) {
	var item struct {
		Time string `json:"time"`
	}
	if !decodeFirst(doc, "ping", &item) || item.Time == "" {
		return Ping{}, false
	}
	return Ping{Time: item.Time, Level: ClassifyPing(item.Time)}, true
}

// ClassifyPing maps "<ms> ms" to good (<=100), warn (<=200) or bad.
// Timeouts and unparsable values are bad.
func ClassifyPing(t string) PingLevel {
	m := pingValuePattern.FindStringSubmatch(t)
	if m == nil {
		return PingBad
	}
	ms, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return PingBad
	}
	switch {
	case ms > 200:
		return PingBad
	case ms > 100:
		return PingWarn
	default:
		return PingGood
	}
}

// ProjectServices reads services=running. The list arrives sorted by
// memory, so the first entry is the top consumer.
func ProjectServices(doc sdkstatus.Document) (Services, bool) {
	env, ok := doc.Topic("services")
	if !ok || !env.Status {
		return Services{}, false
	}
	var list []struct {
		Name   string `json:"name"`
		Memory string `json:"memory"`
	}
	if err := env.DecodeAll(&list); err != nil {
		return Services{}, false
	}
	s := Services{Count: len(list)}
	if len(list) > 0 {
		s.TopName = list[0].Name
		s.TopMemory = list[0].Memory
	}
	return s, true
}

// ProjectTunnels reads luci=getTunnelStatus, keeping daemon order.
func ProjectTunnels(doc sdkstatus.Document) (Tunnels, bool) {
	raw, ok := first(doc, "luci")
	if !ok {
		return Tunnels{}, false
	}
	obj, err := jsonutil.ParseObject(raw)
	if err != nil || obj.Len() == 0 {
		return Tunnels{}, false
	}

	t := Tunnels{Running: []string{}}
	for _, m := range obj.Members() {
		var tunnel struct {
			Name    string `json:"name"`
			Running *bool  `json:"running"`
		}
		if err := json.Unmarshal(m.Value, &tunnel); err != nil || tunnel.Running == nil {
			return Tunnels{}, false
		}
		t.Total++
		if *tunnel.Running {
			t.Running = append(t.Running, tunnel.Name)
		}
	}
	return t, true
}

// ProjectLogs counts the lines of logs=system.
func ProjectLogs(doc sdkstatus.Document) (Logs, bool) {
	var item struct {
		Content *string `json:"content"`
	}
	if !decodeFirst(doc, "logs", &item) || item.Content == nil {
		return Logs{}, false
	}
	content := strings.TrimSpace(*item.Content)
	if content == "" || content == "No logs available" {
		return Logs{}, true
	}
	return Logs{Lines: strings.Count(content, "\n") + 1}, true
}

// ProjectVnstat counts the daily and monthly entries of vnstat=<iface>.
func ProjectVnstat(doc sdkstatus.Document) (Vnstat, bool) {
	var traffic struct {
		Day   []json.RawMessage `json:"day"`
		Month []json.RawMessage `json:"month"`
	}
	if !decodeFirst(doc, "vnstat", &traffic) {
		return Vnstat{}, false
	}
	return Vnstat{Days: len(traffic.Day), Months: len(traffic.Month)}, true
}

// FormatUptime renders seconds as "Nd Nh Nm".
func FormatUptime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	seconds %= 86400
	hours := seconds / 3600
	seconds %= 3600
	return fmt.Sprintf("%dd %dh %dm", days, hours, seconds/60)
}

// FormatBytes renders a byte count as KB, MB or GB with one decimal.
func FormatBytes(b uint64) string {
	const kb, mb, gb = 1024, 1024 * 1024, 1024 * 1024 * 1024
	switch {
	case b < mb:
		return fmt.Sprintf("%.1f KB", float64(b)/kb)
	case b < gb:
		return fmt.Sprintf("%.1f MB", float64(b)/mb)
	default:
		return fmt.Sprintf("%.1f GB", float64(b)/gb)
	}
}

var rateUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatRate renders bytes per second with up to two decimals, trailing
// zeros dropped, e.g. "1.5 KB/s".
func FormatRate(bps float64) string {
	if bps <= 0 || math.IsNaN(bps) {
		return "0 B/s"
	}
	i, unit := 0, 1.0
	for i < len(rateUnits)-1 && bps >= unit*1024 {
		i++
		unit *= 1024
	}
	v := math.Round(bps/unit*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + rateUnits[i] + "/s"
}
