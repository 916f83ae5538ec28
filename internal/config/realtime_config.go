package config

import (
	"os"
	"strconv"
	"time"
)

// Realtime holds the tuning knobs for the tracking hub. Defaults follow the
// original socket.io deployment (10s ping interval, 5s ping timeout) adapted
// to gorilla's pong-deadline model.
type Realtime struct {
	// HeartbeatInterval is how often the server pings each connection.
	HeartbeatInterval time.Duration
	// IdleTimeout is how long a connection may go without any heartbeat or
	// inbound activity before the supervisor force-disconnects it.
	IdleTimeout time.Duration
	// SendTimeout bounds a single outbound write; a stuck socket is treated
	// as a failed send, not a stalled broadcast.
	SendTimeout time.Duration
	// MaxRoomsPerConn caps how many order rooms one connection may join.
	MaxRoomsPerConn int
	// MaxConnections caps the registry size; 0 means unlimited.
	MaxConnections int
	// SendBuffer is the per-connection outbound queue length. A full buffer
	// is the backpressure ceiling: further sends to that connection fail.
	SendBuffer int
	// MaxMessageSize limits inbound frame size in bytes.
	MaxMessageSize int64
	// SweepInterval is how often the supervisor scans for idle connections.
	SweepInterval time.Duration
}

// DefaultRealtime returns the built-in tuning values.
func DefaultRealtime() Realtime {
	return Realtime{
		HeartbeatInterval: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		SendTimeout:       5 * time.Second,
		MaxRoomsPerConn:   8,
		MaxConnections:    0,
		SendBuffer:        64,
		MaxMessageSize:    1024,
		SweepInterval:     10 * time.Second,
	}
}

// LoadRealtime builds the config from defaults overridden by environment
// variables (TRACKING_HEARTBEAT_INTERVAL, TRACKING_IDLE_TIMEOUT,
// TRACKING_SEND_TIMEOUT, TRACKING_MAX_ROOMS, TRACKING_MAX_CONNECTIONS).
func LoadRealtime() Realtime {
	cfg := DefaultRealtime()

	cfg.HeartbeatInterval = envDuration("TRACKING_HEARTBEAT_INTERVAL", cfg.HeartbeatInterval)
	cfg.IdleTimeout = envDuration("TRACKING_IDLE_TIMEOUT", cfg.IdleTimeout)
	cfg.SendTimeout = envDuration("TRACKING_SEND_TIMEOUT", cfg.SendTimeout)
	cfg.SweepInterval = envDuration("TRACKING_SWEEP_INTERVAL", cfg.SweepInterval)
	cfg.MaxRoomsPerConn = envInt("TRACKING_MAX_ROOMS", cfg.MaxRoomsPerConn)
	cfg.MaxConnections = envInt("TRACKING_MAX_CONNECTIONS", cfg.MaxConnections)
	cfg.SendBuffer = envInt("TRACKING_SEND_BUFFER", cfg.SendBuffer)

	return cfg
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
