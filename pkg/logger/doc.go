// Package logger builds *slog.Logger values for qrbatch with functional
// options, attribute helpers and context-driven attribute injection.
//
// New creates a text or JSON handler (text on stderr by default, so that the
// run summary on stdout stays clean) and wraps it with LogHandlerDecorator,
// which runs every registered ContextExtractor on each record. The batch run
// identifier travels through context:
//
//	log := logger.New(
//	    logger.WithLevelName("debug"),
//	    logger.WithContextExtractors(logger.RunIDExtractor()),
//	)
//	ctx := logger.WithRunID(context.Background(), runID)
//	log.InfoContext(ctx, "record written", logger.RecordIndex(3), logger.Path(p))
//
// Attribute helpers (Error, RecordIndex, OutputFormat, Path, Duration, ...) keep key
// names consistent across packages. Error and Errors return an empty Attr for
// nil errors so they can be passed unconditionally.
package logger
