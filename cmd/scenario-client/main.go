// scenario-client simulates a monitored process that writes a heartbeat
// file, following one of several scripted failure patterns so that a
// supervisor's liveness detection can be exercised end to end.
//
// Usage:
//
//	scenario-client [scenario] [duration-seconds] [--heartbeat-file PATH]
//
// The process exits 0 when the scenario completes or SIGTERM is received,
// and 1 on a configuration error, a heartbeat write failure, or a
// simulated crash.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/vinayprograms/heartbeatkit/errors"
	"github.com/vinayprograms/heartbeatkit/logging"
	"github.com/vinayprograms/heartbeatkit/scenario"
	"github.com/vinayprograms/heartbeatkit/shutdown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes one scenario and returns the process exit status.
func run(args []string, stderr io.Writer) int {
	logger := logging.New().
		WithComponent("scenario").
		WithTraceID(uuid.New().String())
	logger.SetOutput(stderr)

	cfg, err := scenario.ParseArgs(args)
	if stderrors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(stderr, scenario.Usage("scenario-client"))
		return 0
	}
	if err != nil {
		logger.Error("invalid_configuration", map[string]interface{}{
			"error": err.Error(),
		})
		fmt.Fprintln(stderr, "run with --help for usage")
		return errors.ExitCode(err)
	}
	logger.SetLevel(cfg.LogLevel)

	coord := shutdown.NewCoordinator(shutdown.Config{
		OnSignal: func(sig os.Signal) {
			logger.Debug("signal_relayed", map[string]interface{}{"signal": sig.String()})
		},
	})
	ctx := coord.HandleSignals(context.Background())
	defer coord.Stop()

	runner, err := scenario.NewRunner(cfg, scenario.Options{Logger: logger})
	if err != nil {
		logger.Error("invalid_configuration", map[string]interface{}{
			"error": err.Error(),
		})
		return errors.ExitCode(err)
	}

	if err := runner.Run(ctx); err != nil {
		logger.Error("scenario_failed", failureFields(err))
		return errors.ExitCode(err)
	}
	return 0
}

// failureFields describes a failed run for the log: its code, category,
// whether a supervisor restart could help, and any metadata.
func failureFields(err error) map[string]interface{} {
	fields := map[string]interface{}{
		"error":     err.Error(),
		"code":      errors.Code(err),
		"retryable": errors.IsRetryable(err),
	}
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		fields["category"] = coded.Category()
	}
	for k, v := range errors.GetMetadata(err) {
		fields[k] = v
	}
	return fields
}
