// Package config defines the redikv-cli configuration file.
//
// The file lives at ~/.redikv/cli.yaml by default:
//
//	server: 127.0.0.1:6379
//	output: text
//	timeout: 5s
//	history_file: ~/.redikv/history
//
// Command-line flags and REDIKV_CLI_* environment variables override it.
package config
