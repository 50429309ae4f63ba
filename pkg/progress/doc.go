// Package progress reports batch progress to the terminal.
//
// A Sink receives Start once with the number of records, Step after every
// processed record (possibly from several goroutines) and Finish once at the
// end. Implementations:
//
//   - Nop discards everything.
//   - Bar draws a determinate progress bar (schollz/progressbar).
//   - Spinner shows an indeterminate spinner with a running count (briandowns/spinner).
//   - Log writes slog records.
//   - Preview redraws a random QR code in the terminal on a fixed interval
//     and clears the screen when finished.
//
// New selects a sink by name:
//
//	sink, err := progress.New("bar", os.Stderr, logger)
package progress
