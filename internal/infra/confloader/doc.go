// Package confloader loads layered configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (LoadMap)
//  2. Environment variables, optionally seeded from a .env file
//  3. The YAML configuration file
//  4. Defaults already present in the target struct
//
// Environment keys drop the prefix, lowercase, and use a double
// underscore as the nesting separator so single underscores survive:
// REDIKV_SERVER__REDIS__IDLE_TIMEOUT maps to server.redis.idle_timeout.
//
// Watcher reports writes to a configuration file so callers can reload.
package confloader
