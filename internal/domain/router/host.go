package router

import "strings"

// NormalizeProbeHost strips a leading http:// or https:// scheme.
func NormalizeProbeHost(host string) string {
	lower := strings.ToLower(host)
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(lower, scheme) {
			return host[len(scheme):]
		}
	}
	return host
}

// ValidProbeHost rejects hosts that a probe tool would read as options or
// split into several arguments.
func ValidProbeHost(host string) bool {
	return host != "" && !strings.HasPrefix(host, "-") && !strings.ContainsAny(host, " \t\r\n")
}
