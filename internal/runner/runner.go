package runner

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/dshills/envhook/internal/envfile"
	"github.com/dshills/envhook/internal/errs"
	"github.com/dshills/envhook/internal/ignore"
	"github.com/dshills/envhook/internal/leak"
	"github.com/dshills/envhook/internal/logging"
)

// Tool is the name reported in every Report.
const Tool = "envhook"

// Options controls a run.
type Options struct {
	Root           string
	EnvFile        string
	SkipIgnore     bool
	IgnoreFile     string
	TemplateSuffix string
	Version        string
}

func (o Options) withDefaults() Options {
	if o.EnvFile == "" {
		o.EnvFile = ".env"
	}
	if o.IgnoreFile == "" {
		o.IgnoreFile = ignore.DefaultFile
	}
	if o.TemplateSuffix == "" {
		o.TemplateSuffix = envfile.DefaultSuffix
	}
	return o
}

// SecretsPath resolves envFile against root. Absolute paths are kept.
func SecretsPath(root, envFile string) string {
	if filepath.IsAbs(envFile) {
		return filepath.Clean(envFile)
	}
	return filepath.Join(root, envFile)
}

// Run performs the hook steps against fs and returns the report.
func Run(fs afero.Fs, opts Options) *Report {
	start := time.Now()
	opts = opts.withDefaults()
	logger := logging.GetLogger("runner")

	secrets := SecretsPath(opts.Root, opts.EnvFile)
	entry := filepath.Base(secrets)

	report := &Report{
		Tool:         Tool,
		Version:      opts.Version,
		Root:         opts.Root,
		EnvFile:      opts.EnvFile,
		SecretsPath:  secrets,
		TemplateName: entry + opts.TemplateSuffix,
		IgnoreFile:   opts.IgnoreFile,
		Entry:        entry,
	}

	report.Steps = append(report.Steps, templateStep(fs, secrets, opts.TemplateSuffix))

	if opts.SkipIgnore {
		logger.Debug().Msg("Ignore-file step disabled")
	} else {
		report.Steps = append(report.Steps, ignoreStep(fs, opts.Root, opts.IgnoreFile, entry))
	}

	report.Success = true
	for _, s := range report.Steps {
		if s.Failed() {
			report.Success = false
		}
	}
	report.Timing.TotalMs = time.Since(start).Milliseconds()

	logger.Info().
		Str("root", opts.Root).
		Bool("success", report.Success).
		Int("steps", len(report.Steps)).
		Msg("Run finished")
	return report
}

func templateStep(fs afero.Fs, secrets, suffix string) Step {
	step := Step{Name: StepTemplate, Path: envfile.TemplatePath(secrets, suffix)}

	if _, err := fs.Stat(secrets); err != nil {
		if os.IsNotExist(err) {
			step.Status = StatusSkipped
			return step
		}
		return failed(step, errs.Wrap(err, errs.ErrRead, "checking", secrets))
	}

	out, err := envfile.Generate(fs, secrets, suffix)
	if err != nil {
		return failed(step, err)
	}
	step.Path = out
	step.Status = StatusCreated
	step.Leaks = scanTemplate(fs, out)
	return step
}

// scanTemplate reports secret-looking lines in the written template. Scan
// problems are logged and never fail the step.
func scanTemplate(fs afero.Fs, path string) []leak.Finding {
	logger := logging.GetLogger("runner")
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Could not re-read template for leak scan")
		return nil
	}
	findings := leak.Scan(string(data))
	for _, f := range findings {
		logger.Warn().Str("path", path).Int("line", f.Line).Str("kind", f.Kind).Msg("Template may contain a secret")
	}
	return findings
}

func ignoreStep(fs afero.Fs, root, name, entry string) Step {
	step := Step{Name: StepIgnore, Path: filepath.Join(root, name)}

	outcome, err := ignore.Ensure(fs, root, name, entry)
	if err != nil {
		return failed(step, err)
	}
	switch outcome {
	case ignore.Created:
		step.Status = StatusCreated
	case ignore.Appended:
		step.Status = StatusAppended
	default:
		step.Status = StatusPresent
	}
	return step
}

func failed(step Step, err error) Step {
	logger := logging.GetLogger("runner")
	logger.Error().Err(err).Str("step", string(step.Name)).Msg("Step failed")
	step.Status = StatusFailed
	step.Error = err.Error()
	step.Code = string(errs.GetCode(err))
	return step
}
