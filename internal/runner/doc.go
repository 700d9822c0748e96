// Package runner executes one hook invocation: template generation followed
// by the ignore-file update, each attempted at most once.
//
// A failing step never aborts the run. Its error is recorded on the [Step]
// and the next step still executes; [Report.Success] is false if any
// attempted step failed. Rendering the report is left to the output package.
package runner
