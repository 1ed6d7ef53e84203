package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"strings"

	"github.com/yndnr/redikv/internal/telemetry/logger"
	"github.com/yndnr/redikv/pkg/cmap"
)

// Verify validates the configuration and reports every problem found.
func Verify(cfg *ServerConfig) error {
	var errs []error
	errs = append(errs, verifyServer(&cfg.Server)...)
	errs = append(errs, verifyProtocol(&cfg.Protocol)...)
	errs = append(errs, verifyStorage(&cfg.Storage)...)
	errs = append(errs, verifyLog(&cfg.Log)...)
	return errors.Join(errs...)
}

func verifyServer(s *ServerSection) []error {
	var errs []error
	if err := verifyAddr("server.redis.addr", s.Redis.Addr); err != nil {
		errs = append(errs, err)
	}
	if s.Redis.IdleTimeout < 0 {
		errs = append(errs, errors.New("server.redis.idle_timeout must not be negative"))
	}
	if s.Redis.WriteTimeout < 0 {
		errs = append(errs, errors.New("server.redis.write_timeout must not be negative"))
	}
	if s.Redis.RateLimit < 0 {
		errs = append(errs, errors.New("server.redis.rate_limit must not be negative"))
	}
	if s.Redis.RateBurst < 0 {
		errs = append(errs, errors.New("server.redis.rate_burst must not be negative"))
	}
	if s.Redis.MaxConnections < 0 {
		errs = append(errs, errors.New("server.redis.max_connections must not be negative"))
	}

	if s.Metrics.Enabled {
		if err := verifyAddr("server.metrics.addr", s.Metrics.Addr); err != nil {
			errs = append(errs, err)
		}
		if !strings.HasPrefix(s.Metrics.Path, "/") {
			errs = append(errs, fmt.Errorf("server.metrics.path %q must start with /", s.Metrics.Path))
		}
		if s.Metrics.Addr == s.Redis.Addr {
			errs = append(errs, fmt.Errorf("server.metrics.addr conflicts with server.redis.addr (%s)", s.Redis.Addr))
		}
	}
	return errs
}

func verifyAddr(name, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", name)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// maxProtocolLimit bounds every protocol limit so buffer arithmetic on
// decoded lengths stays far from integer overflow.
const maxProtocolLimit = math.MaxInt32

func verifyProtocol(p *ProtocolSection) []error {
	var errs []error
	for name, v := range map[string]int{
		"protocol.max_bulk_len":      p.MaxBulkLen,
		"protocol.max_aggregate_len": p.MaxAggregateLen,
		"protocol.max_depth":         p.MaxDepth,
		"protocol.max_line_len":      p.MaxLineLen,
	} {
		if v < 0 || v > maxProtocolLimit {
			errs = append(errs, fmt.Errorf("%s must be between 0 and %d", name, maxProtocolLimit))
		}
	}
	return errs
}

func verifyStorage(s *StorageSection) []error {
	var errs []error
	if !cmap.IsValidShardCount(s.ShardCount) {
		errs = append(errs, fmt.Errorf("storage.shard_count %d must be a positive power of two", s.ShardCount))
	}
	if !cmap.IsValidShardCount(s.HashShardCount) {
		errs = append(errs, fmt.Errorf("storage.hash_shard_count %d must be a positive power of two", s.HashShardCount))
	}
	return errs
}

func verifyLog(l *LogSection) []error {
	var errs []error
	if _, err := logger.ParseLevel(l.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(l.Format) {
	case "", "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be json or text", l.Format))
	}
	return errs
}
