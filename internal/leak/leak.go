package leak

import (
	"regexp"
	"strings"
)

// Finding is one line that looks like it carries a secret.
type Finding struct {
	Line int    `json:"line"`
	Kind string `json:"kind"`
}

type detector struct {
	kind string
	re   *regexp.Regexp
}

// detectors are checked in order; the first hit names the line's kind.
var detectors = []detector{
	{"private key", regexp.MustCompile(`-----BEGIN\s+([A-Z]+\s+)?PRIVATE KEY-----`)},
	{"AWS access key ID", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"JWT", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`)},
	{"bearer token", regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`)},
	{"GitHub token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`)},
	{"Slack token", regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`)},
	{"Anthropic API key", regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`)},
	{"OpenAI API key", regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`)},
	{"connection string credentials", regexp.MustCompile(`[a-z][a-z0-9+.-]*://[^\s:/@]+:[^\s@/]{3,}@`)},
	{"API key", regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?[A-Za-z0-9/+=_-]{20,}["']?`)},
	{"quoted secret", regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["'][^"']{8,}["']`)},
}

// Scan returns the 1-based lines of text that match a secret heuristic.
func Scan(text string) []Finding {
	var findings []Finding
	for i, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		for _, d := range detectors {
			if d.re.MatchString(line) {
				findings = append(findings, Finding{Line: i + 1, Kind: d.kind})
				break
			}
		}
	}
	return findings
}
