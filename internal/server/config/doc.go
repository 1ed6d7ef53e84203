// Package config provides server configuration for redikv.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default configuration values
//   - verify.go: validation of addresses and limits
//   - load.go: layered loading through internal/infra/confloader
//
// A minimal file:
//
//	server:
//	  redis:
//	    addr: 127.0.0.1:6379
//	    idle_timeout: 5m
//	  metrics:
//	    enabled: true
//	    addr: 127.0.0.1:9121
//	log:
//	  level: info
package config
