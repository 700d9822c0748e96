// Package repo locates the root of the repository the hook runs in.
//
// Discovery is purely filesystem based: [FindRoot] walks from a start
// directory towards the filesystem root looking for a version-control marker
// entry such as ".git". Nothing inside the marker is parsed and git itself is
// never invoked, so the hook also works where the git binary is unavailable.
package repo
