// Package metric provides Prometheus metrics for redikv.
//
// A Registry owns a private prometheus.Registry so tests and embedded
// servers never collide on the global default registerer. All recording
// methods are safe on a nil *Registry, which is how metrics are disabled.
//
// Exposed series (namespace "redikv"):
//
//	commands_total{command,status}      counter
//	command_duration_seconds{command}   histogram
//	connections_active                  gauge
//	connections_total                   counter
//	connections_rejected_total          counter
//	protocol_errors_total{reason}       counter
//	rate_limited_total                  counter
//	keyspace_keys / _hashes / _fields   gauge (collected on scrape)
//	build_info{version,commit,go}       gauge
package metric
