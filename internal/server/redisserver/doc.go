// Package redisserver serves the redikv key/value commands over TCP.
//
// Each accepted connection gets its own goroutine that reads frames with
// internal/resp, turns them into commands with internal/command, executes
// them against the shared backend and writes the replies back. Requests on
// one connection are handled strictly in order; replies to pipelined
// requests are flushed together once the read buffer is drained.
//
// Error handling per connection:
//
//   - invalid arguments: "-ERR <reason>" reply, connection stays open
//   - rate limit: "-ERR rate limit exceeded" reply, connection stays open
//   - malformed or oversized frame: "-ERR protocol error: ..." reply, then close
//   - I/O errors and idle timeout: close
package redisserver
