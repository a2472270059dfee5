// Package logging provides structured logging for minotaur runs.
//
// It wraps log/slog to emit one JSON object per line, with persistent
// attributes carried by child loggers. Each robot gets its own child so
// that a run with many robots can be filtered after the fact.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/tmp/minotaur", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	robotLog := logger.WithRobot(2).WithState("explore_room")
//	robotLog.Info("doorway registered", "center", "(4,7)")
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"doorway registered","robot_id":2,"state":"explore_room","center":"(4,7)"}
//
// # Reading Logs Back
//
// [ReadLogs] parses a log directory and [FilterLogs] narrows the result
// by level, robot, or message text. The `minotaur logs` command is built
// on these.
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] with a
// bytes.Buffer to assert on emitted entries.
package logging
