package config

import "time"

// CLIConfig is the configuration for redikv-cli.
type CLIConfig struct {
	// Server is the default host:port.
	Server string `yaml:"server"`
	// Output is text, json or yaml.
	Output string `yaml:"output"`
	// Timeout bounds dialing and each request.
	Timeout time.Duration `yaml:"timeout"`
	// HistoryFile stores REPL history. Empty disables persistence.
	HistoryFile string `yaml:"history_file"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:      "127.0.0.1:6379",
		Output:      "text",
		Timeout:     5 * time.Second,
		HistoryFile: "~/.redikv/history",
	}
}
