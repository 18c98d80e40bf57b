// Package errors provides the structured error taxonomy used by the
// heartbeat writer and the scenario harness.
//
// Every error carries a code, a category and a process exit code, so a
// main package can log the failure and exit with the right status from a
// single place:
//
//	if err := runner.Run(ctx); err != nil {
//	    logger.Error("run failed", map[string]interface{}{"code": errors.Code(err)})
//	    os.Exit(errors.ExitCode(err))
//	}
//
// # Categories
//
//   - Transient: the heartbeat sink may recover (unwritable path, full disk).
//   - Permanent: retrying cannot help (unknown scenario, bad flags).
//   - Internal: deliberate or unexpected abnormal termination.
package errors
