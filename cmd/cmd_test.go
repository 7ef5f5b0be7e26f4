//nolint:paralleltest
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/radiofrance/strargs/internal/logger"
	"github.com/radiofrance/strargs/pkg/strutil"
)

// runCommand executes the root command with args, isolated from the user's environment.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("STRARGS_CONFIG", "")
	t.Setenv("STRARGS_LOG_LEVEL", "")
	t.Setenv("STRARGS_COMPARISON", "")
	t.Setenv("STRARGS_OUTPUT", "")
	t.Cleanup(func() { strutil.SetCurrentCulture(language.Und) })

	out := &bytes.Buffer{}
	rootCmd := newRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()

	return out.String(), err
}

// captureLogs redirects the logger output to a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	logs := &bytes.Buffer{}
	logger.SetWriter(logs)
	t.Cleanup(func() { logger.SetWriter(os.Stderr) })

	return logs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version: vunreleased-dev")
}

func TestParse_Console(t *testing.T) {
	out, err := runCommand(t, "parse", "--", "--registry-url", "eu.gcr.io", "--dry-run", "--log-level=debug")
	require.NoError(t, err)

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "--registry-url")
	assert.Contains(t, out, "eu.gcr.io")
	assert.Contains(t, out, "--dry-run")
	assert.Contains(t, out, "--log-level")
}

func TestParse_JSON(t *testing.T) {
	out, err := runCommand(t, "parse", "-o", "json", "--", "positional", "--KEY", "v1", "--key", "v2", "--flag")
	require.NoError(t, err)
	assert.JSONEq(t, `{"--KEY": "v2", "--flag": ""}`, out)
}

func TestParse_YAML(t *testing.T) {
	out, err := runCommand(t, "parse", "--output", "yaml", "--", "--key=value", "--empty=")
	require.NoError(t, err)

	actual := map[string]string{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &actual))
	assert.Equal(t, map[string]string{"--key": "value", "--empty": ""}, actual)
}

func TestParse_Tokens(t *testing.T) {
	out, err := runCommand(t, "parse", "-o", "tokens", "--", "--b", "2", "--a", "--c=x=y")
	require.NoError(t, err)
	assert.Equal(t, "--a=\n--b=2\n--c=x=y\n", out)
}

func TestParse_NoTokens(t *testing.T) {
	out, err := runCommand(t, "parse", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, out)
}

func TestParse_Get(t *testing.T) {
	out, err := runCommand(t, "parse", "--get", "tag", "--", "--TAG", "latest")
	require.NoError(t, err)
	assert.Equal(t, "latest\n", out)

	out, err = runCommand(t, "parse", "--get=--tag", "--", "--tag=")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestParse_GetMissingKey(t *testing.T) {
	out, err := runCommand(t, "parse", "--get", "missing", "--", "--key", "value")
	require.ErrorIs(t, err, errNoMatch)
	assert.Empty(t, out)
}

func TestParse_InvalidOutput(t *testing.T) {
	_, err := runCommand(t, "parse", "-o", "xml", "--", "--key")
	require.EqualError(t, err, `"xml" is not a valid output format`)
}

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "ordinal match",
			args:     []string{"contains", "nik", "docker", "kaniko"},
			expected: "true\n",
		},
		{
			name:     "ordinal is case-sensitive",
			args:     []string{"contains", "NIK", "docker", "kaniko"},
			expected: "false\n",
		},
		{
			name:     "ignore case",
			args:     []string{"contains", "--comparison", "ordinal-ignore-case", "NIK", "docker", "kaniko"},
			expected: "true\n",
		},
		{
			name:     "culture ignore case",
			args:     []string{"contains", "--comparison", "CurrentCultureIgnoreCase", "--culture", "fr", "JOUR", "bonjour"},
			expected: "true\n",
		},
		{
			name:     "no items",
			args:     []string{"contains", "x"},
			expected: "false\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestContains_Files(t *testing.T) {
	first := writeFile(t, "first.txt", "docker\nkaniko\n")
	second := writeFile(t, "second.txt", "buildkit\n")

	out, err := runCommand(t, "contains", "-f", first, "--file", second, "build")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCommand(t, "contains", "-f", first, "build")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestContains_MissingFile(t *testing.T) {
	_, err := runCommand(t, "contains", "-f", filepath.Join(t.TempDir(), "missing.txt"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open items file")
}

func TestContains_ExitCode(t *testing.T) {
	out, err := runCommand(t, "contains", "--exit-code", "x", "a", "b")
	require.ErrorIs(t, err, errNoMatch)
	assert.Equal(t, "false\n", out)

	_, err = runCommand(t, "contains", "--exit-code", "a", "a", "b")
	require.NoError(t, err)
}

func TestContains_InvalidComparison(t *testing.T) {
	_, err := runCommand(t, "contains", "--comparison", "locale", "a", "a")
	require.EqualError(t, err, `"locale" is not a valid comparison`)
}

func TestContains_InvalidCulture(t *testing.T) {
	_, err := runCommand(t, "contains", "--culture", "not a tag", "a", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid culture")
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "strargs.yaml", "comparison: ordinal-ignore-case\noutput: tokens\n")

	out, err := runCommand(t, "--config", cfg, "contains", "NIK", "kaniko")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCommand(t, "--config", cfg, "parse", "--", "--key", "value")
	require.NoError(t, err)
	assert.Equal(t, "--key=value\n", out)

	// Flags take precedence over the config file.
	out, err = runCommand(t, "--config", cfg, "contains", "--comparison", "ordinal", "NIK", "kaniko")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestConfigFile_NotFound(t *testing.T) {
	_, err := runCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEnvOverride(t *testing.T) {
	home := t.TempDir()

	out := &bytes.Buffer{}
	t.Setenv("HOME", home)
	t.Setenv("STRARGS_CONFIG", "")
	t.Setenv("STRARGS_COMPARISON", "invariant-culture-ignore-case")

	rootCmd := newRootCommand()
	rootCmd.SetArgs([]string{"contains", "NIK", "kaniko"})
	rootCmd.SetOut(out)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "true\n", out.String())
}

func TestDocgen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	_, err := runCommand(t, "docgen", "--path", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "strargs_parse.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `title: "strargs parse"`)
}

func TestConfigFile_LogsFileInUse(t *testing.T) {
	logs := captureLogs(t)
	cfg := writeFile(t, "strargs.yaml", "comparison: ordinal\n")

	_, err := runCommand(t, "--config", cfg, "version")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Using config file: "+cfg)
}

func TestContains_EmptyFileWarns(t *testing.T) {
	logs := captureLogs(t)
	empty := writeFile(t, "empty.txt", "")

	out, err := runCommand(t, "contains", "-f", empty, "x")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
	assert.Contains(t, logs.String(), "Items file "+empty+" is empty")
}
