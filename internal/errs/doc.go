// Package errs defines the coded error type returned by envhook operations.
//
// Every failure is an I/O failure of some kind; the [Code] records which
// kind (read, decode, write, config) so callers and tests can branch on it
// without matching error strings. Errors wrap the underlying cause and work
// with [errors.Is] and [errors.As].
package errs
