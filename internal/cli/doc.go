// Package cli wires together the Cobra command tree for the envhook binary.
//
// The root command is the pre-commit hook itself: it locates the repository
// root, loads configuration, regenerates the secrets template, makes sure the
// ignore file covers the secrets file and prints one status line per step.
// Subcommands manage the git hook installation (hook), the repository config
// file (config) and print the version.
package cli
