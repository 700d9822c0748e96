package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dshills/envhook/internal/repo"
)

const (
	hookMarkerStart = "# >>> envhook pre-commit hook >>>"
	hookMarkerEnd   = "# <<< envhook pre-commit hook <<<"
)

var (
	hookEnvFile       string
	hookSkipGitignore bool
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage git pre-commit hook",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install envhook as a git pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := getHookPath(appFs)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		section := generateHookScript(hookEnvFile, hookSkipGitignore)

		existing, err := afero.ReadFile(appFs, hookPath)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading hook file: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		var content string
		if os.IsNotExist(err) || len(existing) == 0 {
			content = "#!/bin/sh\n" + section
		} else {
			content = replaceSection(string(existing), section)
		}

		if err := appFs.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error creating hooks directory: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		if err := afero.WriteFile(appFs, hookPath, []byte(content), 0o755); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error writing hook file: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Installed envhook pre-commit hook at %s\n", hookPath)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove envhook pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		hookPath, err := getHookPath(appFs)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		existing, err := afero.ReadFile(appFs, hookPath)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No pre-commit hook found.")
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading hook file: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		content := removeSection(string(existing))

		// If only shebang (and whitespace) remains, delete the file entirely
		trimmed := strings.TrimSpace(content)
		if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
			if err := appFs.Remove(hookPath); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing hook file: %v\n", err)
				exitCode = ExitFailure
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed envhook pre-commit hook at %s\n", hookPath)
			return nil
		}

		if err := afero.WriteFile(appFs, hookPath, []byte(content), 0o755); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error writing hook file: %v\n", err)
			exitCode = ExitFailure
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed envhook section from %s\n", hookPath)
		return nil
	},
}

// getHookPath locates the pre-commit hook of the repository containing the
// working directory. A ".git" file (worktree, submodule) is followed through
// its "gitdir:" line.
func getHookPath(fs afero.Fs) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	root := repo.FindRoot(fs, cwd, repo.DefaultMarker)
	gitDir, err := resolveGitDir(fs, root)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks", "pre-commit"), nil
}

func resolveGitDir(fs afero.Fs, root string) (string, error) {
	marker := filepath.Join(root, repo.DefaultMarker)
	info, err := fs.Stat(marker)
	if err != nil {
		return "", fmt.Errorf("not a git repository (no %s in %s or any parent)", repo.DefaultMarker, root)
	}
	if info.IsDir() {
		return marker, nil
	}

	data, err := afero.ReadFile(fs, marker)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", marker, err)
	}
	line := strings.TrimSpace(string(data))
	dir, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("unrecognized %s file: %q", marker, line)
	}
	dir = strings.TrimSpace(dir)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir, nil
}

func generateHookScript(envFile string, skipGitignore bool) string {
	args := fmt.Sprintf("--env-file %s", shellQuote(envFile))
	if skipGitignore {
		args += " --skip-gitignore"
	}

	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	b.WriteString(fmt.Sprintf("envhook %s\n", args))
	b.WriteString("ENVHOOK_EXIT=$?\n")
	b.WriteString("if [ $ENVHOOK_EXIT -ne 0 ]; then\n")
	b.WriteString("  echo \"envhook: secrets file check failed (exit $ENVHOOK_EXIT), commit blocked\"\n")
	b.WriteString("  exit 1\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$`;&|<>()*?[]#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func replaceSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	// Trim leading newline from after to avoid double newlines
	after = strings.TrimPrefix(after, "\n")
	return before + section + after
}

func removeSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	before := existing[:startIdx]
	after := existing[endIdx+len(hookMarkerEnd):]
	after = strings.TrimPrefix(after, "\n")

	return before + after
}

func init() {
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	hookInstallCmd.Flags().StringVar(&hookEnvFile, "env-file", ".env", "Secrets file the installed hook checks")
	hookInstallCmd.Flags().BoolVar(&hookSkipGitignore, "skip-gitignore", false, "Install the hook with the ignore-file step disabled")
}
