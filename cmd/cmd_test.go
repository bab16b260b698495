package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shaharia-lab/regnotify/internal/config"
	"github.com/shaharia-lab/regnotify/internal/notification"
	"github.com/shaharia-lab/regnotify/internal/storage"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		Channel:          "email",
		DataDir:          t.TempDir(),
		LogLevel:         "error",
		RecordDeliveries: true,
		EventWorkers:     1,
	}
}

func run(t *testing.T, cfg *config.AppConfig, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(cfg)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRegisterCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "email by default",
			args: []string{"register", "Alice"},
			want: "Alice registered.\nEmail sent: Alice registration successful!\n",
		},
		{
			name: "sms for several users in order",
			args: []string{"register", "--channel", "sms", "Bob", "Carol"},
			want: "Bob registered.\nSMS sent: Bob registration successful!\n" +
				"Carol registered.\nSMS sent: Carol registration successful!\n",
		},
		{
			name: "empty username",
			args: []string{"register", ""},
			want: " registered.\nEmail sent:  registration successful!\n",
		},
		{
			name: "without recording",
			args: []string{"register", "--record=false", "Dave"},
			want: "Dave registered.\nEmail sent: Dave registration successful!\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, testConfig(t), tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestRegisterCmd_UnknownChannel(t *testing.T) {
	out, err := run(t, testConfig(t), "register", "--channel", "pigeon", "Alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, notification.ErrUnknownChannel)
	assert.Empty(t, out)
}

func TestRegisterCmd_RequiresUsername(t *testing.T) {
	_, err := run(t, testConfig(t), "register")
	assert.Error(t, err)
}

func TestSendCmd(t *testing.T) {
	out, err := run(t, testConfig(t), "send", "--channel", "SMS", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "SMS sent: Hello\n", out)
}

func TestDeliveriesCmd_JSON(t *testing.T) {
	cfg := testConfig(t)
	_, err := run(t, cfg, "register", "Alice")
	require.NoError(t, err)
	_, err = run(t, cfg, "register", "--channel", "sms", "Bob")
	require.NoError(t, err)

	out, err := run(t, cfg, "deliveries", "--output", "json")
	require.NoError(t, err)

	var entries []storage.DeliveryLogEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "sms", entries[0].Channel)
	assert.Equal(t, "Bob registration successful!", entries[0].Message)
	assert.Equal(t, storage.DeliveryStatusSent, entries[0].Status)
	assert.Equal(t, "email", entries[1].Channel)
}

func TestDeliveriesCmd_YAMLLimit(t *testing.T) {
	cfg := testConfig(t)
	_, err := run(t, cfg, "register", "Alice", "Bob", "Carol")
	require.NoError(t, err)

	out, err := run(t, cfg, "deliveries", "-o", "yaml", "--limit", "2")
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Carol registration successful!", entries[0]["message"])
}

func TestDeliveriesCmd_Table(t *testing.T) {
	cfg := testConfig(t)
	_, err := run(t, cfg, "send", "Hello\tthere")
	require.NoError(t, err)

	out, err := run(t, cfg, "deliveries", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "CHANNEL")
	assert.Contains(t, out, "email")
	assert.Contains(t, out, `Hello\tthere`)
	assert.NotContains(t, out, "\x1b[")
}

func TestDeliveriesCmd_Empty(t *testing.T) {
	cfg := testConfig(t)
	_, err := run(t, cfg, "register", "--record=false", "Alice")
	require.NoError(t, err)

	out, err := run(t, cfg, "deliveries", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "No deliveries recorded.\n", out)
}

func TestDeliveriesCmd_BadOutput(t *testing.T) {
	_, err := run(t, testConfig(t), "deliveries", "-o", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestChannelsCmd(t *testing.T) {
	cfg := testConfig(t)
	cfg.Channel = "sms"

	out, err := run(t, cfg, "channels")
	require.NoError(t, err)
	assert.Equal(t, "  email\n* sms\n", out)
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, testConfig(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "regnotify dev")
}
