package runner

import "github.com/dshills/envhook/internal/leak"

// StepName identifies a hook step.
type StepName string

const (
	StepTemplate StepName = "template"
	StepIgnore   StepName = "ignore"
)

// Status is the result of a single step.
type Status string

const (
	StatusCreated  Status = "created"
	StatusSkipped  Status = "skipped"
	StatusPresent  Status = "present"
	StatusAppended Status = "appended"
	StatusFailed   Status = "failed"
)

// Step records what one step did.
type Step struct {
	Name   StepName `json:"name"`
	Status Status   `json:"status"`
	// Path is the file the step wrote or would have written.
	Path  string `json:"path"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
	// Leaks lists template lines that still look like secrets.
	Leaks []leak.Finding `json:"leaks,omitempty"`
}

// Failed reports whether the step failed.
func (s Step) Failed() bool {
	return s.Status == StatusFailed
}

// Timing contains performance metrics.
type Timing struct {
	TotalMs int64 `json:"totalMs"`
}

// Report is the top-level result of a run.
type Report struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	Root    string `json:"root"`
	// EnvFile is the secrets file as given, SecretsPath as resolved.
	EnvFile      string `json:"envFile"`
	SecretsPath  string `json:"secretsPath"`
	TemplateName string `json:"templateName"`
	IgnoreFile   string `json:"ignoreFile"`
	Entry        string `json:"entry"`
	Steps        []Step `json:"steps"`
	Success      bool   `json:"success"`
	Timing       Timing `json:"timing"`
}

// Step returns the step with the given name, if it ran or was skipped.
func (r *Report) Step(name StepName) (Step, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}
