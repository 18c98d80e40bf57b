// Package heartbeat implements file-based liveness reporting.
//
// # Overview
//
// A monitored process periodically writes its wall-clock time to a shared
// file. An external supervisor polls that file and restarts the process
// when the timestamp goes stale. The file holds a single decimal number of
// seconds since the Unix epoch and is replaced in full on every write:
//
//	1767225600.123456
//
// # Writing
//
// Write replaces the file atomically, so a reader sees either the previous
// value or the new one, never a partial number. Writer binds a path to a
// clock and is what the scenario harness drives. Sender is the baseline
// client loop: it beats on a fixed interval and logs write failures
// instead of stopping, because a temporarily unavailable heartbeat sink
// must not take the monitored workload down with it.
//
//	sender, _ := heartbeat.NewSender(heartbeat.SenderConfig{
//	    Path:     "heartbeat.txt",
//	    Interval: 5 * time.Second,
//	    Logger:   logger,
//	})
//	sender.Start(ctx)
//	defer sender.Stop()
//
// # Reading
//
// Read and Check exist for consumers and tests. Check separates a missing
// or malformed file from a stale but valid one.
package heartbeat
