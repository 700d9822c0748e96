package envfile

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/dshills/envhook/internal/errs"
	"github.com/dshills/envhook/internal/logging"
)

// DefaultSuffix is appended to the secrets file name to form the template name.
const DefaultSuffix = ".example"

// Header is written at the top of every template.
const Header = "# Environment variables template\n" +
	"# Copy this file to .env and fill in your actual values\n" +
	"\n"

const marker = "###"

// inlineComment matches the leftmost '#' whose remainder runs to a closing
// "###" at the very end of the trimmed line.
var inlineComment = regexp.MustCompile(`#.*###$`)

// isSpace reports Unicode whitespace, counting the information separators
// U+001C..U+001F as whitespace too.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// SanitizeLine returns the template form of one line. line may carry its
// trailing newline; copied lines keep theirs, assignments always get one.
func SanitizeLine(line string) string {
	trimmed := strings.TrimFunc(line, isSpace)

	if trimmed == "" {
		return line
	}
	if strings.HasPrefix(trimmed, marker) && strings.HasSuffix(trimmed, marker) {
		return line
	}
	if key, _, ok := strings.Cut(trimmed, "="); ok {
		return key + "=" + inlineComment.FindString(trimmed) + "\n"
	}
	return line
}

// Sanitize returns the template body for content, without the header.
func Sanitize(content string) string {
	content = normalizeNewlines(content)

	var b strings.Builder
	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			// SplitAfter yields a trailing empty element after the final newline.
			continue
		}
		b.WriteString(SanitizeLine(line))
	}
	return b.String()
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// TemplatePath returns the sibling path of secretsPath with suffix appended
// to its file name.
func TemplatePath(secretsPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	dir, name := filepath.Split(secretsPath)
	return filepath.Join(dir, name+suffix)
}

// Generate reads secretsPath and overwrites its template with the header
// followed by the sanitized body. The write is not atomic; a failure midway
// can leave a partial template behind.
func Generate(fs afero.Fs, secretsPath, suffix string) (string, error) {
	logger := logging.GetLogger("envfile")
	done := logging.LogOperationStart(logger, "generate")
	defer done()

	data, err := afero.ReadFile(fs, secretsPath)
	if err != nil {
		return "", errs.Wrap(err, errs.ErrRead, "reading", secretsPath)
	}
	if !utf8.Valid(data) {
		return "", &errs.Error{Code: errs.ErrDecode, Path: secretsPath, Message: "invalid UTF-8 in"}
	}

	out := TemplatePath(secretsPath, suffix)
	body := Header + Sanitize(string(data))

	if err := afero.WriteFile(fs, out, []byte(body), 0o644); err != nil {
		return "", errs.Wrap(err, errs.ErrWrite, "writing", out)
	}

	logger.Info().
		Str("secrets", secretsPath).
		Str("template", out).
		Int("bytes", len(body)).
		Msg("Template written")
	return out, nil
}
