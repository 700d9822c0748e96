// Package ignore keeps the secrets file listed in the repository ignore file.
//
// The ignore file moves through three states only:
//
//	absent                    -> created   -> present, covered
//	present, not covered      -> appended  -> present, covered
//	present, covered          -> no-op     -> present, covered
//
// An existing file is only ever appended to, never rewritten, so entries and
// comments maintained by hand are left alone. Running [Ensure] twice in a
// row yields the same content as running it once.
package ignore
