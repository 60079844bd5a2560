package usecases

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/orris-inc/resinfo/internal/shared/errors"
)

func TestCheckIdentifier(t *testing.T) {
	for _, ok := range []string{"eth0", "br-lan", "wan6", "system.cpu", "getCPUUsage", "wlan0@phy0", "a_b"} {
		assert.NoError(t, checkIdentifier("ubus", ok), ok)
	}
	for _, bad := range []string{"", "eth0 ", "a;b", "$(id)", "../x", strings.Repeat("a", 65)} {
		err := checkIdentifier("vnstat", bad)
		require.Error(t, err, bad)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalid), bad)

		var se *apperrors.SourceError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "vnstat", se.Source)
	}
}

func TestParseLines(t *testing.T) {
	assert.Equal(t, 50, parseLines("", false, 50, 1000))
	assert.Equal(t, 50, parseLines("", true, 50, 1000))
	assert.Equal(t, 50, parseLines("0", true, 50, 1000))
	assert.Equal(t, 7, parseLines("7", true, 50, 1000))
	assert.Equal(t, 1000, parseLines("1001", true, 50, 1000))
}
