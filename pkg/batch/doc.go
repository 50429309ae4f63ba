// Package batch turns tabular records into QR code files.
//
// A Runner takes records from the tabular package and, for each non-empty
// record, encodes the payload with the qrcode package, renders it as SVG
// markup, and writes the requested output formats to a file.Storage:
//
//	qr_svgs/qr_{index}.svg
//	qr_pdfs/qr_{index}.pdf
//	qr_pngs/qr_{index}.png
//
// The index is the 1-based input row, so skipped rows leave gaps in the
// numbering. Directories are created only for the requested formats.
//
// # Errors
//
// Failures are classified with the sentinel errors in this package
// (ErrEncodingCapacity, ErrConversion, ErrWrite, ...). By default a failing
// record is logged, recorded in Stats.Failures, and the batch moves on.
// With Config.FailFast the first failure stops the run and is returned.
//
// # Concurrency
//
// Records are processed sequentially unless Config.Workers is greater than
// one, in which case up to Workers records are in flight at once. Output
// names and Stats do not depend on the worker count.
//
// # Usage
//
//	records, err := tabular.ReadFile("data.csv")
//	if err != nil {
//		return errors.Join(batch.ErrInput, err)
//	}
//	runner, err := batch.NewRunner(cfg, storage, batch.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	stats, err := runner.Run(ctx, records)
package batch
