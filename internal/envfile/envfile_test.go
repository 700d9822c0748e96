package envfile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/envhook/internal/errs"
)

func TestSanitizeLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple assignment", "API_KEY=supersecret123\n", "API_KEY=\n"},
		{"marked inline comment", "DB_PASS=abc123 ###staging only###\n", "DB_PASS=###staging only###\n"},
		{"full-line marker", "### DO NOT COMMIT ###\n", "### DO NOT COMMIT ###\n"},
		{"indented full-line marker kept verbatim", "  ###note###  \n", "  ###note###  \n"},
		{"bare marker", "###\n", "###\n"},
		{"blank", "\n", "\n"},
		{"whitespace only", "   \t\n", "   \t\n"},
		{"no assignment", "just some text\n", "just some text\n"},
		{"ordinary comment kept", "# database settings\n", "# database settings\n"},
		{"empty value", "EMPTY=\n", "EMPTY=\n"},
		{"value with equals", "URL=postgres://u:p@h/db?a=b\n", "URL=\n"},
		{"key keeps inner spacing", "  KEY = value\n", "KEY =\n"},
		{"export prefix kept", "export TOKEN=abc\n", "export TOKEN=\n"},
		{"unmarked inline comment dropped", "PORT=8080 # default\n", "PORT=\n"},
		{"trailing text after marker drops comment", "X=1 ###keep### extra\n", "X=\n"},
		{"leftmost hash starts the match", "URL=http://h/#frag ###c###\n", "URL=#frag ###c###\n"},
		{"assignment without newline gets one", "LAST=value", "LAST=\n"},
		{"copied line without newline stays so", "tail text", "tail text"},
		{"commented-out assignment is stripped", "#OLD=secret\n", "#OLD=\n"},
		{"trailing separator before newline", "K=v ###a###\x1c\n", "K=###a###\n"},
		{"separator-only line counts as blank", "\x1f\n", "\x1f\n"},
		{"no-break space around key", "\u00a0KEY=v\u00a0\n", "KEY=\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeLine(tt.in))
		})
	}
}

func TestSanitize(t *testing.T) {
	in := "### DO NOT COMMIT ###\n" +
		"\n" +
		"API_KEY=supersecret123\n" +
		"DB_PASS=abc123 ###staging only###\n" +
		"not an assignment\n" +
		"TRAILING=x"

	want := "### DO NOT COMMIT ###\n" +
		"\n" +
		"API_KEY=\n" +
		"DB_PASS=###staging only###\n" +
		"not an assignment\n" +
		"TRAILING=\n"

	assert.Equal(t, want, Sanitize(in))
}

func TestSanitize_NormalizesLineEndings(t *testing.T) {
	assert.Equal(t, "A=\n\nB=\nC=\n", Sanitize("A=1\r\n\r\nB=2\rC=3\n"))
}

func TestSanitize_Empty(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
}

func TestTemplatePath(t *testing.T) {
	assert.Equal(t, "/repo/.env.example", TemplatePath("/repo/.env", ""))
	assert.Equal(t, "/repo/config/.env.local.sample", TemplatePath("/repo/config/.env.local", ".sample"))
	assert.Equal(t, ".env.example", TemplatePath(".env", DefaultSuffix))
}

func TestGenerate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/.env", []byte("API_KEY=supersecret123\n### DO NOT COMMIT ###\n"), 0o600))

	out, err := Generate(fs, "/repo/.env", DefaultSuffix)
	require.NoError(t, err)
	assert.Equal(t, "/repo/.env.example", out)

	data, err := afero.ReadFile(fs, out)
	require.NoError(t, err)
	assert.Equal(t, Header+"API_KEY=\n### DO NOT COMMIT ###\n", string(data))
}

func TestGenerate_OverwritesPreviousTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/.env.example", []byte("STALE=\nOLD_KEY=\nmore stale content\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/repo/.env", []byte("NEW=1\n"), 0o600))

	out, err := Generate(fs, "/repo/.env", "")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, out)
	require.NoError(t, err)
	assert.Equal(t, Header+"NEW=\n", string(data))
}

func TestGenerate_MissingSecrets(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Generate(fs, "/repo/.env", DefaultSuffix)
	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrRead))

	exists, _ := afero.Exists(fs, "/repo/.env.example")
	assert.False(t, exists)
}

func TestGenerate_InvalidUTF8(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/.env", []byte("KEY=\xff\xfe\n"), 0o600))

	_, err := Generate(fs, "/repo/.env", DefaultSuffix)
	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrDecode))
}

func TestGenerate_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/repo/.env", []byte("K=v\n"), 0o600))

	_, err := Generate(afero.NewReadOnlyFs(base), "/repo/.env", DefaultSuffix)
	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrWrite))
}
