// Package main provides the entry point for redikv-cli.
//
// redikv-cli sends commands to a redikv server, either one per invocation
// or interactively, and can benchmark a server with pooled connections.
//
// Usage:
//
//	redikv-cli [global flags] COMMAND [ARG...]
//	redikv-cli [global flags] repl
//	redikv-cli [global flags] bench [-c clients] [-n requests] [-t tests]
package main
