package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRealtime_Defaults(t *testing.T) {
	cfg := LoadRealtime()

	assert.Equal(t, 10*time.Second, cfg.HeartbeatInterval)
	assert.Equal(t, 30*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.SendTimeout)
	assert.Equal(t, 8, cfg.MaxRoomsPerConn)
	assert.Equal(t, 64, cfg.SendBuffer)
}

func TestLoadRealtime_EnvOverrides(t *testing.T) {
	t.Setenv("TRACKING_HEARTBEAT_INTERVAL", "2s")
	t.Setenv("TRACKING_IDLE_TIMEOUT", "7s")
	t.Setenv("TRACKING_MAX_ROOMS", "3")

	cfg := LoadRealtime()

	assert.Equal(t, 2*time.Second, cfg.HeartbeatInterval)
	assert.Equal(t, 7*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 3, cfg.MaxRoomsPerConn)
}

func TestLoadRealtime_BadValuesFallBack(t *testing.T) {
	t.Setenv("TRACKING_SEND_TIMEOUT", "soon")
	t.Setenv("TRACKING_MAX_CONNECTIONS", "many")

	cfg := LoadRealtime()

	assert.Equal(t, 5*time.Second, cfg.SendTimeout)
	assert.Equal(t, 0, cfg.MaxConnections)
}
