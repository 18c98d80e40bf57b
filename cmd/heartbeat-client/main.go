// heartbeat-client is the baseline monitored process: it writes the
// current time to a heartbeat file on a fixed interval until SIGTERM.
// Write failures are logged and the loop carries on.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/vinayprograms/heartbeatkit/errors"
	"github.com/vinayprograms/heartbeatkit/heartbeat"
	"github.com/vinayprograms/heartbeatkit/logging"
	"github.com/vinayprograms/heartbeatkit/shutdown"
)

type options struct {
	path     string
	interval time.Duration
	level    logging.Level
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func parseFlags(args []string) (options, error) {
	var (
		opts  options
		level string
		help  bool
	)
	flagSet := pflag.NewFlagSet("heartbeat-client", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.path, "heartbeat-file", heartbeat.DefaultPath, "path of the heartbeat file")
	flagSet.DurationVar(&opts.interval, "interval", heartbeat.DefaultSenderConfig().Interval, "time between heartbeats")
	flagSet.StringVar(&level, "log-level", "info", "minimum log level (debug, info, warn, error)")
	flagSet.BoolVarP(&help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return opts, err
		}
		return opts, errors.WrapWithCode(err, errors.ErrCodeInvalidInput, "parsing flags")
	}
	if help {
		return opts, pflag.ErrHelp
	}
	if flagSet.NArg() > 0 {
		return opts, errors.InvalidInput(fmt.Sprintf("unexpected argument %q (use --heartbeat-file)", flagSet.Arg(0)))
	}
	if opts.path == "" {
		return opts, errors.InvalidInput("heartbeat file must not be empty")
	}
	if opts.interval <= 0 {
		return opts, errors.InvalidInput("interval must be positive")
	}

	parsed, err := logging.ParseLevel(level)
	if err != nil {
		return opts, errors.WrapWithCode(err, errors.ErrCodeInvalidInput, "parsing --log-level")
	}
	opts.level = parsed
	return opts, nil
}

func usage() string {
	return `Usage: heartbeat-client [--heartbeat-file PATH] [--interval D] [--log-level LEVEL]

Writes the current Unix time to the heartbeat file every interval until
SIGTERM, then exits 0.

Flags:
  --heartbeat-file PATH   heartbeat file (default heartbeat.txt)
  --interval D            time between heartbeats (default 5s)
  --log-level LEVEL       debug, info, warn or error (default info)
  -h, --help              show help
`
}

func run(args []string, stderr io.Writer) int {
	logger := logging.New().
		WithComponent("heartbeat").
		WithTraceID(uuid.New().String())
	logger.SetOutput(stderr)

	opts, err := parseFlags(args)
	if err == pflag.ErrHelp {
		fmt.Fprint(stderr, usage())
		return 0
	}
	if err != nil {
		logger.Error("invalid_configuration", map[string]interface{}{"error": err.Error()})
		return errors.ExitCode(err)
	}
	logger.SetLevel(opts.level)

	source := "default"
	if opts.path != heartbeat.DefaultPath {
		source = "custom"
	}
	logger.Info("Using heartbeat file", map[string]interface{}{
		"file":     opts.path,
		"source":   source,
		"interval": opts.interval.String(),
	})

	coord := shutdown.NewCoordinator(shutdown.DefaultConfig())
	ctx := coord.HandleSignals(context.Background())
	defer coord.Stop()

	sender, err := heartbeat.NewSender(heartbeat.SenderConfig{
		Path:     opts.path,
		Interval: opts.interval,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("invalid_configuration", map[string]interface{}{"error": err.Error()})
		return 1
	}
	if err := sender.Start(ctx); err != nil {
		logger.Error("start_failed", map[string]interface{}{"error": err.Error()})
		return 1
	}

	<-sender.Done()
	logger.SignalReceived("heartbeat", context.Cause(ctx))
	logger.Info("stopped", map[string]interface{}{
		"beats":    sender.Beats(),
		"failures": sender.Failures(),
	})
	return 0
}
