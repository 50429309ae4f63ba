// Package tabular reads QR payloads from headerless CSV files.
//
// Every row becomes a Record whose Index is its 1-based position, including
// rows whose payload is blank. Callers skip blank records instead of the
// reader dropping them, which keeps output names tied to the input row.
//
// encoding/csv quirks that matter here: blank lines are ignored by the csv
// reader itself and do not count as rows; a line holding only a delimiter
// (",") is a row with an empty payload. Quotes are parsed lazily, so a
// quote inside an unquoted field (Say "hi") is kept as part of the payload.
package tabular
