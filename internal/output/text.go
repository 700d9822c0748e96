package output

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/envhook/internal/runner"
)

var (
	plainStyle = lipgloss.NewStyle()
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// TextWriter outputs human-readable status lines.
type TextWriter struct {
	// Color styles lines with ANSI colours; only set it for terminals.
	Color bool
}

func (t *TextWriter) Write(w io.Writer, report *runner.Report) error {
	ew := &errWriter{w: w}
	templateName := report.TemplateName
	ignoreName := filepath.Base(report.IgnoreFile)

	ew.println(t.style(plainStyle, fmt.Sprintf("🔧 Running %s management pre-commit hook...", report.Entry)))

	for _, step := range report.Steps {
		switch step.Name {
		case runner.StepTemplate:
			switch step.Status {
			case runner.StatusSkipped:
				ew.println(t.style(infoStyle, fmt.Sprintf("ℹ️  No %s file found, skipping %s creation", report.EnvFile, templateName)))
			case runner.StatusFailed:
				ew.println(t.style(plainStyle, fmt.Sprintf("🔍 Found %s", report.SecretsPath)))
				ew.println(t.style(failStyle, fmt.Sprintf("❌ Error creating %s: %s", templateName, step.Error)))
			default:
				ew.println(t.style(plainStyle, fmt.Sprintf("🔍 Found %s", report.SecretsPath)))
				ew.println(t.style(okStyle, fmt.Sprintf("✅ Created %s", step.Path)))
				for _, l := range step.Leaks {
					ew.println(t.style(warnStyle, fmt.Sprintf("⚠️  %s:%d may contain a %s", templateName, l.Line, l.Kind)))
				}
			}
		case runner.StepIgnore:
			switch step.Status {
			case runner.StatusPresent:
				ew.println(t.style(okStyle, fmt.Sprintf("✅ %s already in %s", report.Entry, ignoreName)))
			case runner.StatusAppended:
				ew.println(t.style(okStyle, fmt.Sprintf("➕ Added %s to existing %s", report.Entry, ignoreName)))
			case runner.StatusCreated:
				ew.println(t.style(okStyle, fmt.Sprintf("📝 Created %s with %s entry", ignoreName, report.Entry)))
			case runner.StatusFailed:
				ew.println(t.style(failStyle, fmt.Sprintf("❌ Error updating %s: %s", ignoreName, step.Error)))
			}
		}
	}

	if report.Success {
		ew.println(t.style(okStyle, fmt.Sprintf("🎉 Pre-commit %s management complete!", report.Entry)))
	} else {
		ew.println(t.style(failStyle, "💥 Some operations failed"))
	}
	return ew.err
}

func (t *TextWriter) style(s lipgloss.Style, line string) string {
	if !t.Color {
		return line
	}
	return s.Render(line)
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
