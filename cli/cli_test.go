package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/htmltok/logging"
)

func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}
}

// execute runs the root command with a config file that does not exist
// unless args name one.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	hasConfig := false
	for _, a := range args {
		if a == "--config" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestVersionCmd(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "", "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "htmltok version test-version-1.0.0")
}

func TestTokensCmdText(t *testing.T) {
	out, err := execute(t, "<p>a &amp; b</p>", "tokens")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Tag\tp\t\"<p>\"\tclosing=false",
		"Text\t\"a \"",
		"Entity\tamp\t\"&amp;\"",
		"Text\t\" b\"",
		"Tag\tp\t\"</p>\"\tclosing=true",
		"",
	}, "\n"), out)
}

func decodeTokens(t *testing.T, out string) []jsonToken {
	t.Helper()
	var tokens []jsonToken
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var tok jsonToken
		require.NoError(t, json.Unmarshal([]byte(line), &tok), line)
		tokens = append(tokens, tok)
	}
	return tokens
}

func TestTokensCmdJSON(t *testing.T) {
	out, err := execute(t, "<!--x--><br/>", "tokens", "-o", "json", "--comments")
	require.NoError(t, err)
	assert.Equal(t, []jsonToken{
		{Type: "Comment", Full: "<!--x-->"},
		{Type: "Tag", Name: "br", Full: "<br/>", SelfClosing: true},
	}, decodeTokens(t, out))
	assert.Contains(t, out, `"full":"<br/>"`)
}

func TestTokensCmdSkipsCommentsByDefault(t *testing.T) {
	out, err := execute(t, "<!--x--><br/>", "tokens", "--output", "json", "--self-closing", "drop")
	require.NoError(t, err)
	assert.Equal(t, []jsonToken{
		{Type: "Tag", Name: "br", Full: "<br>", SelfClosing: true},
	}, decodeTokens(t, out))
}

func TestTokensCmdRejectsUnknownOutput(t *testing.T) {
	_, err := execute(t, "<p>", "tokens", "-o", "yaml")
	assert.Error(t, err)
}

func TestTextCmdFromFile(t *testing.T) {
	path := writeFile(t, "article.html", []byte("<p>One</p><p>Two &amp; Three</p>"))
	out, err := execute(t, "", "text", path)
	require.NoError(t, err)
	assert.Equal(t, "One\n\nTwo & Three\n", out)
}

func TestTextCmdCharset(t *testing.T) {
	path := writeFile(t, "latin1.html", []byte("<p>caf\xe9</p>"))
	out, err := execute(t, "", "text", path, "--charset", "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "café\n", out)
}

func TestTextCmdUnknownCharset(t *testing.T) {
	_, err := execute(t, "<p>x</p>", "text", "--charset", "klingon-8")
	assert.Error(t, err)
}

func TestTextCmdMissingFile(t *testing.T) {
	_, err := execute(t, "", "text", filepath.Join(t.TempDir(), "nope.html"))
	assert.Error(t, err)
}

func TestExcerptCmd(t *testing.T) {
	out, err := execute(t, "<p>abcdef</p>", "excerpt", "--limit", "3")
	require.NoError(t, err)
	assert.Equal(t, "<p>abc…</p>\n", out)
}

func TestExcerptCmdUsesConfig(t *testing.T) {
	cfg := writeFile(t, "config.toml", []byte("[render]\nexcerpt_limit = 2\nellipsis = \"...\"\n"))
	out, err := execute(t, "<b>bold</b>", "excerpt", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "<b>bo...</b>\n", out)
}

func TestInvalidSelfClosingFlag(t *testing.T) {
	_, err := execute(t, "<br/>", "tokens", "--self-closing", "sometimes")
	assert.Error(t, err)
}

func TestBadConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.toml", []byte("[render]\nunknown = 1\n"))
	_, err := execute(t, "<p>", "text", "--config", cfg)
	assert.Error(t, err)
}

func TestVersionCmdIgnoresBrokenConfig(t *testing.T) {
	cfg := writeFile(t, "config.toml", []byte("[render]\nunknown = 1\n"))
	out, err := execute(t, "", "version", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "htmltok version")
}

func TestLogFlags(t *testing.T) {
	oldLevel := logging.DefaultLogger.GetLevel()
	oldFormatter := logging.DefaultLogger.Formatter
	defer func() {
		logging.DefaultLogger.SetLevel(oldLevel)
		logging.DefaultLogger.SetFormatter(oldFormatter)
	}()

	_, err := execute(t, "<p>x</p>", "text", "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logging.DefaultLogger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logging.DefaultLogger.Formatter)
}
