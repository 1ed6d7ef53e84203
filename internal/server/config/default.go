package config

import (
	"github.com/yndnr/redikv/internal/resp"
	"github.com/yndnr/redikv/internal/storage/memory"
	"github.com/yndnr/redikv/pkg/cmap"
)

// Default configuration values.
const (
	DefaultRedisAddr   = "127.0.0.1:6379"
	DefaultMetricsAddr = "127.0.0.1:9121"
	DefaultMetricsPath = "/metrics"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr: DefaultRedisAddr,
			},
			Metrics: MetricsConfig{
				Enabled: false,
				Addr:    DefaultMetricsAddr,
				Path:    DefaultMetricsPath,
			},
		},
		Protocol: ProtocolSection{
			MaxBulkLen:      resp.DefaultMaxBulkLen,
			MaxAggregateLen: resp.DefaultMaxAggregateLen,
			MaxDepth:        resp.DefaultMaxDepth,
			MaxLineLen:      resp.DefaultMaxLineLen,
		},
		Storage: StorageSection{
			ShardCount:     cmap.DefaultShardCount,
			HashShardCount: memory.DefaultHashShardCount,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
