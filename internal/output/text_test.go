package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/envhook/internal/leak"
	"github.com/dshills/envhook/internal/runner"
)

func baseReport(steps ...runner.Step) *runner.Report {
	r := &runner.Report{
		Tool:         "envhook",
		Version:      "1.0",
		Root:         "/repo",
		EnvFile:      ".env",
		SecretsPath:  "/repo/.env",
		TemplateName: ".env.example",
		IgnoreFile:   ".gitignore",
		Entry:        ".env",
		Steps:        steps,
		Success:      true,
	}
	for _, s := range steps {
		if s.Failed() {
			r.Success = false
		}
	}
	return r
}

func render(t *testing.T, report *runner.Report) []string {
	t.Helper()
	var buf bytes.Buffer
	w := &TextWriter{}
	if err := w.Write(&buf, report); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestTextWriter_AllCreated(t *testing.T) {
	report := baseReport(
		runner.Step{Name: runner.StepTemplate, Status: runner.StatusCreated, Path: "/repo/.env.example"},
		runner.Step{Name: runner.StepIgnore, Status: runner.StatusCreated, Path: "/repo/.gitignore"},
	)

	got := render(t, report)
	want := []string{
		"🔧 Running .env management pre-commit hook...",
		"🔍 Found /repo/.env",
		"✅ Created /repo/.env.example",
		"📝 Created .gitignore with .env entry",
		"🎉 Pre-commit .env management complete!",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("output mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestTextWriter_SkippedAndPresent(t *testing.T) {
	report := baseReport(
		runner.Step{Name: runner.StepTemplate, Status: runner.StatusSkipped},
		runner.Step{Name: runner.StepIgnore, Status: runner.StatusPresent},
	)

	out := strings.Join(render(t, report), "\n")
	if !strings.Contains(out, "ℹ️  No .env file found, skipping .env.example creation") {
		t.Error("Output should report skipped template")
	}
	if !strings.Contains(out, "✅ .env already in .gitignore") {
		t.Error("Output should report entry already present")
	}
	if strings.Contains(out, "🔍 Found") {
		t.Error("Skipped template should not report the secrets file as found")
	}
}

func TestTextWriter_Appended(t *testing.T) {
	report := baseReport(
		runner.Step{Name: runner.StepIgnore, Status: runner.StatusAppended},
	)

	out := strings.Join(render(t, report), "\n")
	if !strings.Contains(out, "➕ Added .env to existing .gitignore") {
		t.Errorf("Output should report appended entry, got:\n%s", out)
	}
}

func TestTextWriter_Failures(t *testing.T) {
	report := baseReport(
		runner.Step{Name: runner.StepTemplate, Status: runner.StatusFailed, Error: "[WRITE] writing /repo/.env.example: permission denied"},
		runner.Step{Name: runner.StepIgnore, Status: runner.StatusFailed, Error: "[READ] reading /repo/.gitignore: boom"},
	)

	got := render(t, report)
	out := strings.Join(got, "\n")
	if !strings.Contains(out, "❌ Error creating .env.example: [WRITE] writing /repo/.env.example: permission denied") {
		t.Error("Output should report template failure")
	}
	if !strings.Contains(out, "❌ Error updating .gitignore: [READ] reading /repo/.gitignore: boom") {
		t.Error("Output should report ignore failure")
	}
	if got[len(got)-1] != "💥 Some operations failed" {
		t.Errorf("Last line = %q, want failure summary", got[len(got)-1])
	}
}

func TestTextWriter_NoColorHasNoEscapes(t *testing.T) {
	report := baseReport(runner.Step{Name: runner.StepTemplate, Status: runner.StatusSkipped})
	for _, line := range render(t, report) {
		if strings.Contains(line, "\x1b[") {
			t.Errorf("Unexpected ANSI escape in %q", line)
		}
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range append([]string{""}, Formats...) {
		if _, err := GetWriter(format, false); err != nil {
			t.Errorf("GetWriter(%q) error: %v", format, err)
		}
	}
	if _, err := GetWriter("sarif", false); err == nil {
		t.Error("GetWriter should reject unknown formats")
	}
	w, _ := GetWriter("text", true)
	if tw, ok := w.(*TextWriter); !ok || !tw.Color {
		t.Error("GetWriter(text, true) should return a coloured TextWriter")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errClosed
}

var errClosed = &writeErr{"closed"}

type writeErr struct{ s string }

func (e *writeErr) Error() string { return e.s }

func TestTextWriter_PropagatesWriteError(t *testing.T) {
	w := &TextWriter{}
	if err := w.Write(failingWriter{}, baseReport()); err != errClosed {
		t.Errorf("Write error = %v, want %v", err, errClosed)
	}
}

func TestTextWriter_LeakWarnings(t *testing.T) {
	report := baseReport(runner.Step{
		Name:   runner.StepTemplate,
		Status: runner.StatusCreated,
		Path:   "/repo/.env.example",
		Leaks:  []leak.Finding{{Line: 5, Kind: "GitHub token"}},
	})

	out := strings.Join(render(t, report), "\n")
	if !strings.Contains(out, "⚠️  .env.example:5 may contain a GitHub token") {
		t.Errorf("Output should warn about the leak:\n%s", out)
	}
	if !strings.Contains(out, "🎉") {
		t.Error("Leak warnings should not fail the run")
	}
}
