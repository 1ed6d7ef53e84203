package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// DefaultMaxValueLen is the longest payload attribute written verbatim.
const DefaultMaxValueLen = 64

const redactedValue = "***REDACTED***"

// payloadKeys name attributes that carry client data. They are truncated
// so a large SET never floods the log.
var payloadKeys = map[string]bool{
	"frame": true,
}

var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"credential",
	"auth",
}

func redactAttr(a slog.Attr, maxLen int) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactAttr(attr, maxLen)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString, slog.KindAny:
	default:
		return a
	}

	if IsSensitiveKey(a.Key) {
		if a.Value.String() == "" {
			return a
		}
		return slog.String(a.Key, redactedValue)
	}
	if payloadKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, Truncate(a.Value.String(), maxLen))
	}
	return a
}

// Truncate shortens s to at most max bytes and notes how much was dropped.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "...(" + strconv.Itoa(len(s)-max) + " more bytes)"
}

// IsSensitiveKey reports whether an attribute key suggests secret content.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, p := range sensitiveKeyPatterns {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}
