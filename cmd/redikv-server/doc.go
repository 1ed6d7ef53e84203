// Package main provides the entry point for redikv-server.
//
// The server listens for RESP clients and serves GET, SET, HGET, HSET and
// HGETALL from an in-memory sharded keyspace. An optional HTTP listener
// exposes /metrics, /health, /ready and /stats.
//
// Usage:
//
//	redikv-server [flags]
//	redikv-server --config /etc/redikv/config.yaml
//	REDIKV_SERVER__REDIS__ADDR=:6380 redikv-server
//
// Changes to log.level in the configuration file are applied without a
// restart.
package main
