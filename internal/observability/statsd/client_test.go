package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix, name, want string
	}{
		{"console", "marketplace.request", "console.marketplace.request"},
		{"", " api/jobs ", "api_jobs"},
		{"console", "foo..bar.", "console.foo.bar"},
		{"console", "  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, metricName(tt.prefix, tt.name), "metricName(%q, %q)", tt.prefix, tt.name)
	}
}

func TestClientLine(t *testing.T) {
	t.Parallel()

	c := &Client{prefix: "console", global: map[string]string{"env": "prod", "service": "console"}}

	got := c.line("marketplace.request", "12.5", "ms", map[string]string{
		"resource": " jobs ",
		"env":      "stage",
		"":         "ignored",
	})
	assert.Equal(t, "console.marketplace.request:12.5|ms|#env:stage,resource:jobs,service:console", got)

	assert.Equal(t, "console.up:1|g", (&Client{prefix: "console"}).line("up", "1", "g", nil))
}

func TestClientSendsOverUDP(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	c, err := NewClient(Config{Enabled: true, Address: pc.LocalAddr().String(), Prefix: "console"})
	require.NoError(t, err)
	defer c.Close()
	require.True(t, c.Enabled())

	c.Count("workflow.action", 1, map[string]string{"action": "claim_won"})

	buf := make([]byte, 512)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "console.workflow.action:1|c|#action:claim_won", string(buf[:n]))
}

func TestClientDisabledAndNil(t *testing.T) {
	t.Parallel()

	c, err := NewClient(Config{Enabled: true, Address: "   "})
	require.NoError(t, err)
	assert.False(t, c.Enabled())
	c.Timing("noop", time.Second, nil)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	nilClient.Count("noop", 1, nil)
	require.NoError(t, nilClient.Close())
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statsd dial")
}
