package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/dshills/envhook/internal/errs"
	"github.com/dshills/envhook/internal/logging"
)

// DefaultFile is the ignore file maintained at the repository root.
const DefaultFile = ".gitignore"

const sectionComment = "# Environment variables"

// Outcome records which transition Ensure took.
type Outcome int

const (
	Present Outcome = iota
	Appended
	Created
)

func (o Outcome) String() string {
	switch o {
	case Present:
		return "present"
	case Appended:
		return "appended"
	case Created:
		return "created"
	default:
		return "unknown"
	}
}

// space matches Unicode whitespace, including \v and the separators
// U+001C..U+001F that \s leaves out.
const space = `[\s\v\x1c-\x1f\x{85}\p{Z}]`

// coverPatterns returns the forms under which entry counts as ignored:
// exactly, followed by whitespace, rooted with a slash, or rooted and
// followed by whitespace.
func coverPatterns(entry string) []*regexp.Regexp {
	q := regexp.QuoteMeta(entry)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?m)^` + q + `$`),
		regexp.MustCompile(`(?m)^` + q + space),
		regexp.MustCompile(`(?m)/` + q + `$`),
		regexp.MustCompile(`(?m)/` + q + space),
	}
}

// Covers reports whether content already ignores entry.
func Covers(content, entry string) bool {
	for _, re := range coverPatterns(entry) {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// appendSection returns what to append to existing so that it ignores entry.
func appendSection(existing, entry string) string {
	var b strings.Builder
	if !strings.HasSuffix(existing, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n" + sectionComment + "\n")
	b.WriteString(entry + "\n")
	return b.String()
}

// freshContent is the body of a newly created ignore file.
func freshContent(entry string) string {
	return sectionComment + "\n" +
		entry + "\n" +
		"\n# Add other common ignores below as needed\n"
}

// Ensure makes the ignore file named name in root list entry.
func Ensure(fs afero.Fs, root, name, entry string) (Outcome, error) {
	logger := logging.GetLogger("ignore")
	if name == "" {
		name = DefaultFile
	}
	path := filepath.Join(root, name)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return 0, errs.Wrap(err, errs.ErrRead, "checking", path)
	}

	if !exists {
		if err := afero.WriteFile(fs, path, []byte(freshContent(entry)), 0o644); err != nil {
			return 0, errs.Wrap(err, errs.ErrWrite, "creating", path)
		}
		logger.Info().Str("path", path).Str("entry", entry).Msg("Created ignore file")
		return Created, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, errs.Wrap(err, errs.ErrRead, "reading", path)
	}
	if !utf8.Valid(data) {
		return 0, &errs.Error{Code: errs.ErrDecode, Path: path, Message: "invalid UTF-8 in"}
	}
	content := string(data)

	if Covers(content, entry) {
		logger.Debug().Str("path", path).Str("entry", entry).Msg("Entry already ignored")
		return Present, nil
	}

	f, err := fs.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, errs.Wrap(err, errs.ErrWrite, "opening", path)
	}
	defer f.Close()

	if _, err := f.WriteString(appendSection(content, entry)); err != nil {
		return 0, errs.Wrap(err, errs.ErrWrite, "appending to", path)
	}
	if err := f.Close(); err != nil {
		return 0, errs.Wrap(err, errs.ErrWrite, "closing", path)
	}

	logger.Info().Str("path", path).Str("entry", entry).Msg("Appended entry to ignore file")
	return Appended, nil
}
