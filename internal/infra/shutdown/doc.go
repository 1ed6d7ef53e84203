// Package shutdown coordinates graceful process termination.
//
// A Handler collects hooks while the process starts, then waits for
// SIGINT, SIGTERM, context cancellation or an explicit Trigger and runs
// the hooks in reverse registration order under one timeout:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown("redis listener", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
