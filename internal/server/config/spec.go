package config

import (
	"time"

	"github.com/yndnr/redikv/internal/resp"
)

// ServerConfig is the root configuration for redikv-server.
type ServerConfig struct {
	Server   ServerSection   `koanf:"server"`
	Protocol ProtocolSection `koanf:"protocol"`
	Storage  StorageSection  `koanf:"storage"`
	Log      LogSection      `koanf:"log"`
}

// ServerSection configures listeners.
type ServerSection struct {
	Redis   RedisConfig   `koanf:"redis"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// RedisConfig configures the client protocol listener.
type RedisConfig struct {
	Addr string `koanf:"addr"`
	// IdleTimeout closes connections that send nothing for this long.
	// Zero disables it.
	IdleTimeout time.Duration `koanf:"idle_timeout"`
	// WriteTimeout bounds a single reply flush. Zero disables it.
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// RateLimit is the sustained commands per second allowed per
	// connection. Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	// RateBurst is the limiter bucket size. Zero uses max(1, RateLimit).
	RateBurst int `koanf:"rate_burst"`
	// MaxConnections caps concurrent clients. Zero means unlimited.
	MaxConnections int `koanf:"max_connections"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	Path    string `koanf:"path"`
}

// ProtocolSection bounds decoded frames.
type ProtocolSection struct {
	MaxBulkLen      int `koanf:"max_bulk_len"`
	MaxAggregateLen int `koanf:"max_aggregate_len"`
	MaxDepth        int `koanf:"max_depth"`
	MaxLineLen      int `koanf:"max_line_len"`
}

// Limits converts the section to decoder limits.
func (p ProtocolSection) Limits() resp.Limits {
	return resp.Limits{
		MaxBulkLen:      p.MaxBulkLen,
		MaxAggregateLen: p.MaxAggregateLen,
		MaxDepth:        p.MaxDepth,
		MaxLineLen:      p.MaxLineLen,
	}
}

// StorageSection configures the in-memory backend.
type StorageSection struct {
	// ShardCount must be a power of two.
	ShardCount int `koanf:"shard_count"`
	// HashShardCount is the shard count of each hash; a power of two.
	HashShardCount int `koanf:"hash_shard_count"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
