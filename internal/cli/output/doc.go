// Package output renders server replies and reports for redikv-cli.
//
// The text format mirrors redis-cli:
//
//	"value"
//	(nil)
//	(integer) 1
//	(error) ERR wrong number of arguments for 'get' command
//	(empty array)
//	1# "field" => "value"
//
// The json and yaml formats convert replies to plain values first (see
// Value), which makes them suitable for scripting.
package output
