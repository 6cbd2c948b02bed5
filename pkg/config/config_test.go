package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/current-status", c.Status.URL)
	assert.Equal(t, 60*time.Second, c.Status.PollInterval)
	assert.Equal(t, 3000, c.Server.Port)
	assert.Equal(t, "Smart Energy Optimizer", c.Dashboard.Title)
	assert.Equal(t, "$", c.Dashboard.Currency)
	assert.False(t, c.Kafka.Enabled)
	assert.Equal(t, "/ws", c.Live.Path)
	assert.Equal(t, 30*time.Second, c.Live.PingInterval)
	assert.Equal(t, -1, c.KafkaRequiredAcks())
}

func TestLoadKeepsExplicitZeroAcks(t *testing.T) {
	path := writeConfig(t, `
kafka:
  required_acks: 0
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, c.Kafka.RequiredAcks)
	assert.Equal(t, 0, c.KafkaRequiredAcks())
}

func TestValidateRejectsUnknownAcks(t *testing.T) {
	path := writeConfig(t, `
kafka:
  required_acks: 2
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
status:
  url: http://status.internal:9000/api/current-status
  poll_interval: 15s
  timeout: 5s
server:
  port: 8081
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://status.internal:9000/api/current-status", c.Status.URL)
	assert.Equal(t, 15*time.Second, c.Status.PollInterval)
	assert.Equal(t, 8081, c.Server.Port)
	assert.Equal(t, "info", c.Log.Level)
}

func TestValidateRejectsTimeoutAboveInterval(t *testing.T) {
	path := writeConfig(t, `
status:
  poll_interval: 10s
  timeout: 20s
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsKafkaWithoutBrokers(t *testing.T) {
	path := writeConfig(t, `
kafka:
  enabled: true
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("STATUS_URL", "http://example.test/api/current-status")
	t.Setenv("POLL_INTERVAL", "45s")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	c, err := LoadWithEnv("")
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/api/current-status", c.Status.URL)
	assert.Equal(t, 45*time.Second, c.Status.PollInterval)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "cache", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestLoadWithEnvBadDuration(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "soon")
	_, err := LoadWithEnv("")
	assert.Error(t, err)
}
