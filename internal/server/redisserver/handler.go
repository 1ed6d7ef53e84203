package redisserver

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/redikv/internal/command"
	"github.com/yndnr/redikv/internal/resp"
	"github.com/yndnr/redikv/internal/telemetry/logger"
	"github.com/yndnr/redikv/internal/telemetry/metric"
)

var errRateLimited = resp.Error("ERR rate limit exceeded")

// Handler turns request frames into replies.
type Handler struct {
	backend command.Backend
	log     logger.Logger
	metrics *metric.Registry
}

// NewHandler creates a Handler. metrics may be nil.
func NewHandler(backend command.Backend, log logger.Logger, metrics *metric.Registry) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{backend: backend, log: log, metrics: metrics}
}

// Handle executes one request. A nil limiter disables rate limiting.
// Argument errors and rate limiting produce Error replies; they never
// end the connection.
func (h *Handler) Handle(ctx context.Context, req resp.Frame, limiter *rate.Limiter) resp.Frame {
	if limiter != nil && !limiter.Allow() {
		h.metrics.RateLimited()
		return errRateLimited
	}

	start := time.Now()
	cmd, err := command.Parse(req)
	if err != nil {
		name := "unknown"
		var argErr *command.ArgumentError
		if errors.As(err, &argErr) {
			name = argErr.Command
		}
		h.metrics.ObserveCommand(name, false, time.Since(start))
		logger.L(ctx).Debug("invalid arguments", "command", name, "error", err)
		return resp.Error("ERR " + err.Error())
	}

	logger.L(ctx).Debug("request", "command", cmd.Name(), "frame", req)
	reply := cmd.Execute(h.backend)
	h.metrics.ObserveCommand(cmd.Name(), true, time.Since(start))

	if u, ok := cmd.(*command.Unknown); ok {
		logger.L(ctx).Debug("unknown command", "name", u.Command)
	}
	return reply
}
