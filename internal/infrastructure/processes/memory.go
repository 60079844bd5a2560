package processes

import (
	"bufio"
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MemoryUnavailable is shown when resident memory cannot be read.
const MemoryUnavailable = "N/A"

// ParseVmRSS extracts the VmRSS value in kB from /proc/<pid>/status text.
func ParseVmRSS(status []byte) (int64, bool) {
	sc := bufio.NewScanner(bytes.NewReader(status))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "VmRSS:"))
		if len(fields) == 0 {
			return 0, false
		}
		kb, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, false
		}
		return kb, true
	}
	return 0, false
}

// FormatMemory renders a resident size: kB up to 1024, otherwise MB rounded
// to one decimal with a trailing ".0" dropped.
func FormatMemory(kb int64, ok bool) string {
	if !ok {
		return MemoryUnavailable
	}
	if kb > 1024 {
		mb := math.Round(float64(kb)/1024*10) / 10
		return strconv.FormatFloat(mb, 'f', -1, 64) + " MB"
	}
	return strconv.FormatInt(kb, 10) + " KB"
}

// ProcReader reads VmRSS from a procfs mount.
type ProcReader struct {
	root string
}

func NewProcReader(root string) *ProcReader {
	if root == "" {
		root = "/proc"
	}
	return &ProcReader{root: root}
}

func (r *ProcReader) ResidentKB(pid string) (int64, bool) {
	if _, err := strconv.ParseUint(pid, 10, 32); err != nil {
		return 0, false
	}
	data, err := os.ReadFile(filepath.Join(r.root, pid, "status"))
	if err != nil {
		return 0, false
	}
	return ParseVmRSS(data)
}
