package ubus

import (
	"encoding/json"

	"github.com/orris-inc/resinfo/internal/shared/utils/jsonutil"
)

type interfaceDump struct {
	Interface []map[string]json.RawMessage `json:"interface"`
}

type addressEntry struct {
	Address json.RawMessage `json:"address"`
}

// copied maps an interface field onto the device field it is stored as.
var copied = []struct{ from, to string }{
	{"dns-server", "dns"},
	{"metric", "metric"},
	{"dns_metric", "dns_metric"},
	{"proto", "protocol"},
	{"uptime", "uptime"},
	{"interface", "interface_name"},
	{"autostart", "autostart"},
}

// MergeDeviceInterfaces joins `network.device status` output with
// `network.interface dump` output. Interfaces are indexed by device and by
// l3_device when it differs; a later interface wins over an earlier one.
// ok is false when either document is empty or malformed.
func MergeDeviceInterfaces(devicesRaw, dumpRaw []byte) (merged []byte, ok bool) {
	devices, err := jsonutil.ParseObject(devicesRaw)
	if err != nil || devices.Len() == 0 {
		return nil, false
	}

	var dump interfaceDump
	if err := json.Unmarshal(dumpRaw, &dump); err != nil || dump.Interface == nil {
		return nil, false
	}

	index := make(map[string]map[string]json.RawMessage)
	for _, iface := range dump.Interface {
		device := stringField(iface, "device")
		if device == "" {
			continue
		}
		index[device] = iface
		if l3 := stringField(iface, "l3_device"); l3 != "" && l3 != device {
			index[l3] = iface
		}
	}

	out := jsonutil.NewObject()
	for _, m := range devices.Members() {
		iface, found := index[m.Key]
		if !found {
			out.SetRaw(m.Key, m.Value)
			continue
		}
		dev, err := jsonutil.ParseObject(m.Value)
		if err != nil {
			out.SetRaw(m.Key, m.Value)
			continue
		}
		enrich(dev, iface)
		raw, err := json.Marshal(dev)
		if err != nil {
			return nil, false
		}
		out.SetRaw(m.Key, raw)
	}

	merged, err = json.Marshal(out)
	if err != nil {
		return nil, false
	}
	return merged, true
}

func enrich(dev *jsonutil.Object, iface map[string]json.RawMessage) {
	if addr := firstAddress(iface["ipv4-address"]); addr != nil {
		dev.SetRaw("ipv4_address", addr)
	}
	if addr := firstAddress(iface["ipv6-address"]); addr != nil {
		dev.SetRaw("ipv6_address", addr)
	}
	for _, f := range copied {
		if v, ok := iface[f.from]; ok && !isNull(v) {
			dev.SetRaw(f.to, v)
		}
	}
}

func firstAddress(raw json.RawMessage) json.RawMessage {
	var entries []addressEntry
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		return nil
	}
	if len(entries[0].Address) == 0 {
		return json.RawMessage("null")
	}
	return entries[0].Address
}

func stringField(obj map[string]json.RawMessage, key string) string {
	var s string
	if err := json.Unmarshal(obj[key], &s); err != nil {
		return ""
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
