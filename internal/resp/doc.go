// Package resp implements the redikv wire protocol.
//
// The protocol is a RESP3 subset with ten value kinds. Every frame starts
// with a one-byte tag and ends with CRLF:
//
//	simple string   +OK\r\n
//	error           -ERR message\r\n
//	integer         :+42\r\n
//	bulk string     $5\r\nhello\r\n
//	array           *2\r\n$3\r\nget\r\n$1\r\nk\r\n
//	null            _\r\n
//	boolean         #t\r\n
//	double          ,+1.5\r\n
//	map             %1\r\n+field\r\n$5\r\nvalue\r\n
//	set             ~2\r\n:+1\r\n:+1\r\n
//
// Files:
//
//   - frame.go: Frame tagged union and constructors
//   - encode.go: frame encoding, including double formatting
//   - decode.go: incremental decoding with incomplete-frame detection
//   - stream.go: buffered Reader/Writer over a byte stream
//
// Decoding never consumes input on failure. A buffer holding only part of a
// frame yields ErrIncomplete and the caller retries once more bytes arrive.
// Map iteration order is not defined, so encoding a Map with more than one
// entry is not byte-for-byte deterministic.
package resp
