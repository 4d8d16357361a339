// Package shutdown coordinates graceful process termination.
//
// A Handler waits for SIGINT, SIGTERM or an explicit Trigger, then runs the
// registered hooks in reverse registration order under one shared timeout.
//
//	h := shutdown.NewHandler(10*time.Second, log)
//	h.OnShutdown("text server", srv.Shutdown)
//	err := h.Wait()
package shutdown
