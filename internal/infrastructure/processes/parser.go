package processes

import (
	"bufio"
	"bytes"
	"path"
	"strings"
)

// Process is one row of the process table.
type Process struct {
	PID     string
	Command string

	// RSSKB is set by sources that know resident memory directly.
	RSSKB  int64
	HasRSS bool
}

// ParsePS parses busybox `ps` output (PID USER VSZ STAT COMMAND). The header,
// rows with fewer than five columns, and the listing's own grep/ps rows are
// dropped. The command keeps its internal spacing.
func ParsePS(out []byte) []Process {
	var procs []Process
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "PID") {
			continue
		}
		fields := splitN(line, 5)
		if len(fields) < 5 {
			continue
		}
		cmd := fields[4]
		if isSelf(cmd) {
			continue
		}
		procs = append(procs, Process{PID: fields[0], Command: cmd})
	}
	return procs
}

// ServiceName is the base name of the first word of a command line.
func ServiceName(command string) string {
	first := command
	if i := strings.IndexByte(command, ' '); i >= 0 {
		first = command[:i]
	}
	return path.Base(first)
}

func isSelf(cmd string) bool {
	return strings.Contains(cmd, "grep") || strings.HasPrefix(cmd, "ps")
}

// splitN splits on runs of whitespace into at most n fields; the last field
// is the untouched remainder.
func splitN(s string, n int) []string {
	var out []string
	for len(out) < n-1 {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return out
		}
		i := strings.IndexAny(s, " \t")
		if i < 0 {
			return append(out, s)
		}
		out = append(out, s[:i])
		s = s[i:]
	}
	if s = strings.TrimLeft(s, " \t"); s != "" {
		out = append(out, s)
	}
	return out
}
