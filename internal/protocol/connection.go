// internal/protocol/connection.go
package protocol

import "time"

const (
	DefaultSendTimeout  = 4 * time.Second
	DefaultProbeTimeout = 1500 * time.Millisecond
)

// TCPConfig represents raw socket printer connection configuration
type TCPConfig struct {
	SendTimeout  time.Duration `json:"send_timeout"`
	ProbeTimeout time.Duration `json:"probe_timeout"`
	KeepAlive    time.Duration `json:"keep_alive"`
}

// withDefaults fills unset timeouts
func (c *TCPConfig) withDefaults() *TCPConfig {
	out := TCPConfig{KeepAlive: 30 * time.Second}
	if c != nil {
		out = *c
	}
	if out.SendTimeout <= 0 {
		out.SendTimeout = DefaultSendTimeout
	}
	if out.ProbeTimeout <= 0 {
		out.ProbeTimeout = DefaultProbeTimeout
	}
	return &out
}
