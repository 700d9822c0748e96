// Package output renders a run report for display or machine consumption.
//
// Two formats are supported:
//   - text — one emoji-prefixed status line per step (default)
//   - json — the full structured report
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*runner.Report].
package output
