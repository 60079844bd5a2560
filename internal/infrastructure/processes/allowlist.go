package processes

import "strings"

// allowList holds name fragments of the daemons shown on the dashboard.
var allowList = []string{
	"dropbear", "dnsmasq", "uhttpd", "hostapd", "wpa_supplicant", "odhcpd",
	"rpcd", "netifd", "ubusd", "logd", "ntpd",
	"xray", "mihomo", "sing-box", "tailscale", "cloudflared", "ngrok",
	"openvpn", "wireguard", "sshd", "nginx", "php-fpm", "php-cgi", "luci",
	"cron", "udhcpc", "pppd", "xl2tpd",
}

// Allowed reports whether a service name contains an allow-listed fragment.
func Allowed(name string) bool {
	for _, frag := range allowList {
		if strings.Contains(name, frag) {
			return true
		}
	}
	return false
}
