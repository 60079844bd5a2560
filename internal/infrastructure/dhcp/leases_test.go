package dhcp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leasesFixture = `1718000000 aa:bb:cc:dd:ee:01 192.168.1.101 phone *
1718000100 aa:bb:cc:dd:ee:02 192.168.1.102 laptop 01:aa:bb:cc:dd:ee:02
1718000200 aa:bb:cc:dd:ee:03 192.168.1.103 * *
1718000300 aa:bb:cc:dd:ee:04 192.168.1.104 tv *
1718000400 aa:bb:cc:dd:ee:05 192.168.1.105 printer *
`

func TestLeases_Online(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dhcp.leases")
	require.NoError(t, os.WriteFile(path, []byte(leasesFixture), 0o644))

	n, err := NewLeases(path).Online()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestLeases_MissingFile(t *testing.T) {
	n, err := NewLeases(filepath.Join(t.TempDir(), "absent")).Online()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, CountLines(nil))
	assert.Equal(t, 1, CountLines([]byte("one\ntwo")))
	assert.Equal(t, 2, CountLines([]byte("one\ntwo\n")))
}
