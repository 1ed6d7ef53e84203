// Package httpserver serves the operational HTTP endpoints of redikv-server:
//
//   - GET /health: liveness, always 200
//   - GET /ready: 200 while the Redis listener accepts connections, else 503
//   - GET /stats: keyspace counters and build information as JSON
//   - GET <metrics path>: Prometheus exposition
//
// Every route runs behind Recover and RequestID; AccessLog records each
// request at debug level.
package httpserver
