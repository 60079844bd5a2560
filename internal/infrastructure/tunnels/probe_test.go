package tunnels

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/resinfo/internal/infrastructure/shell/shelltest"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

func TestProbe_Status(t *testing.T) {
	runner := shelltest.NewFakeRunner().
		On("pidof xray", "2001\n").
		On("pidof tailscaled", "3003\n").
		OnError("pidof ngrok", errors.New("exec: pidof: not found"))

	out, err := json.Marshal(NewProbe(runner, "", logger.NewNop()).Status(context.Background()))
	require.NoError(t, err)

	assert.Equal(t, `{"xray":{"name":"Xray","running":true},`+
		`"mihomo":{"name":"Mihomo","running":false},`+
		`"sing-box":{"name":"Sing-Box","running":false},`+
		`"tailscale":{"name":"Tailscale","running":true},`+
		`"cloudflared":{"name":"Cloudflared","running":false},`+
		`"ngrok":{"name":"Ngrok","running":false}}`, string(out))
}
