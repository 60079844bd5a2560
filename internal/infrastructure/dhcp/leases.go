// Package dhcp reads the dnsmasq lease file.
package dhcp

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const DefaultLeasesFile = "/tmp/dhcp.leases"

type Leases struct {
	path string
}

func NewLeases(path string) *Leases {
	if path == "" {
		path = DefaultLeasesFile
	}
	return &Leases{path: path}
}

// Online counts newline-terminated lease lines. A missing file means no
// clients.
func (l *Leases) Online() (int, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read leases: %w", err)
	}
	return CountLines(data), nil
}

// CountLines counts '\n' bytes, as `wc -l` does.
func CountLines(data []byte) int {
	return bytes.Count(data, []byte{'\n'})
}
