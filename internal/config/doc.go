// Package config loads and merges envhook configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags that were explicitly set
//  2. Environment variables (ENVHOOK_ENV_FILE, ENVHOOK_SKIP_GITIGNORE, etc.)
//  3. Repository file (.envhook.toml or .envhook.yaml at the repository root)
//  4. User file ($XDG_CONFIG_HOME/envhook/config.toml or config.yaml)
//  5. Built-in defaults
//
// Use [Load] to obtain a merged [Config] and [WriteRepoFile] to write a
// default repository file.
package config
