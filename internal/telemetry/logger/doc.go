// Package logger provides structured logging for redikv.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: construction, output format and the dynamic level
//   - context.go: logger and connection ID propagation through context
//   - redact.go: truncation of stored payloads and masking of secrets
//
// The level is process wide and can be changed at runtime with SetLevel,
// which is how a config reload applies a new log.level.
package logger
