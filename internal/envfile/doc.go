// Package envfile turns a secrets file into a committable template.
//
// Values are stripped from every KEY=VALUE assignment while the key is kept.
// Comments delimited by triple hashes survive: a whole line such as
// "### DO NOT COMMIT ###" is copied as is, and an inline trailer such as
// "###staging only###" is re-attached to the stripped key. Blank lines and
// lines without an assignment are copied unchanged.
//
// [Sanitize] is the pure transformation; [Generate] reads a secrets file,
// writes the template next to it and returns its path.
package envfile
