package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dshills/envhook/internal/config"
	"github.com/dshills/envhook/internal/logging"
	"github.com/dshills/envhook/internal/output"
	"github.com/dshills/envhook/internal/repo"
	"github.com/dshills/envhook/internal/runner"
)

const version = "1.0.0"

// Exit codes
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

var (
	flagEnvFile       string
	flagSkipGitignore bool
	flagIgnoreFile    string
	flagSuffix        string
	flagFormat        string
	flagVerbose       int
)

// appFs is the filesystem every command operates on.
var appFs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:              "envhook [files...]",
	Short:            "Keep the secrets file out of git and a sanitized template in it",
	Long:             "envhook is a pre-commit hook. It regenerates a value-stripped template of the secrets file and makes sure the ignore file excludes the secrets file. File names passed by the pre-commit framework are accepted and ignored.",
	Args:             cobra.ArbitraryArgs,
	SilenceUsage:     true,
	PersistentPreRun: setupLogging,
	RunE:             runHook,
}

// setupLogging applies -v to every command before it runs.
func setupLogging(cmd *cobra.Command, args []string) {
	logging.SetupWithWriter(flagVerbose, cmd.ErrOrStderr())
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// RootCommand returns the fully assembled command tree.
func RootCommand() *cobra.Command {
	return rootCmd
}

// Version returns the envhook version string.
func Version() string {
	return version
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print envhook version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "envhook version %s\n", version)
	},
}

// buildOverrides maps explicitly set flags onto config keys.
func buildOverrides(cmd *cobra.Command) map[string]interface{} {
	m := make(map[string]interface{})
	flags := cmd.Flags()
	if flags.Changed("env-file") {
		m["env_file"] = flagEnvFile
	}
	if flags.Changed("skip-gitignore") {
		m["skip_gitignore"] = flagSkipGitignore
	}
	if flags.Changed("ignore-file") {
		m["ignore_file"] = flagIgnoreFile
	}
	if flags.Changed("suffix") {
		m["template_suffix"] = flagSuffix
	}
	if flags.Changed("format") {
		m["format"] = flagFormat
	}
	return m
}

// resolve loads the configuration and locates the repository root. The
// marker is read before the root is known, so a repository file cannot
// change it; the second load picks up the repository file.
func resolve(cmd *cobra.Command) (config.Config, string, error) {
	overrides := buildOverrides(cmd)

	pre, err := config.Load(appFs, "", overrides)
	if err != nil {
		return config.Config{}, "", err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("getting working directory: %w", err)
	}
	root := repo.FindRoot(appFs, cwd, pre.Marker)

	cfg, err := config.Load(appFs, root, overrides)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, root, nil
}

func runHook(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("cli")
	if len(args) > 0 {
		logger.Debug().Strs("files", args).Msg("Ignoring file arguments")
	}

	cfg, root, err := resolve(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		exitCode = ExitUsageError
		return nil
	}

	writer, err := output.GetWriter(cfg.Format, isTerminal(cmd.OutOrStdout()))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		exitCode = ExitUsageError
		return nil
	}

	report := runner.Run(appFs, runner.Options{
		Root:           root,
		EnvFile:        cfg.EnvFile,
		SkipIgnore:     cfg.SkipGitignore,
		IgnoreFile:     cfg.IgnoreFile,
		TemplateSuffix: cfg.TemplateSuffix,
		Version:        version,
	})

	if err := writer.Write(cmd.OutOrStdout(), report); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error writing output: %v\n", err)
	}

	if !report.Success {
		exitCode = ExitFailure
	}
	return nil
}

func isTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&flagEnvFile, "env-file", ".env", "Path to the secrets file, relative to the repository root")
	flags.BoolVar(&flagSkipGitignore, "skip-gitignore", false, "Skip updating the ignore file")
	flags.StringVar(&flagIgnoreFile, "ignore-file", ".gitignore", "Ignore file at the repository root")
	flags.StringVar(&flagSuffix, "suffix", ".example", "Suffix appended to the secrets file name for the template")
	flags.StringVar(&flagFormat, "format", "text", "Output format (text, json)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "Increase log verbosity (repeatable)")

	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
