package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "jfrag.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\ncolor = false\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckAccepted(t *testing.T) {
	out, err := run(t, "public static void main() { for (n = ;) { } }", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "('program', 'main', [('for_loop', ('statement', 'n', '=', ';'), [])])")
}

func TestCheckRejectedJSON(t *testing.T) {
	out, err := run(t, "public static void main() {", "check", "-", "--format", "json")
	require.EqualError(t, err, "input rejected: syntax_error")

	jsonText := out[:strings.LastIndex(out, "}")+1]
	var got struct {
		Verdict string `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal([]byte(jsonText), &got))
	assert.Equal(t, "syntax_error", got.Verdict)
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Main.java")
	require.NoError(t, os.WriteFile(path, []byte("public static void f() {}"), 0o644))

	out, err := run(t, "", "check", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "verdict: accepted")
}

func TestTokensLexicalError(t *testing.T) {
	out, err := run(t, "n = 1; ?", "tokens")
	require.EqualError(t, err, "1 lexical error(s)")
	assert.Contains(t, out, "invalid character '?' at line 1")
	assert.Contains(t, out, "NUMBER")
}

func TestTokensIgnoresGrammar(t *testing.T) {
	out, err := run(t, "n = 1;", "tokens")
	require.NoError(t, err)
	assert.NotContains(t, out, "Syntax errors")
}

func TestGrammarPrint(t *testing.T) {
	out, err := run(t, "", "grammar")
	require.NoError(t, err)
	assert.Contains(t, out, `Program    = "public" "static" "void"`)
}

func TestGrammarVerify(t *testing.T) {
	out, err := run(t, "", "grammar", "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "grammar.ebnf: ok")
	assert.Contains(t, out, "Statements")
	assert.Contains(t, out, "(may be empty)")
}

func TestGrammarVerifyConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ebnf")
	require.NoError(t, os.WriteFile(path, []byte(`S = "a" "b" | "a" "c" .`), 0o644))

	_, err := run(t, "", "grammar", "--verify", "--start", "S", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alternatives both start with")
}

func TestConfigError(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\nformat = \"xml\"\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "check"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestCheckCustomGrammar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decl.ebnf")
	src := `Decl = "let" name "=" integer terminator .
name = lower { lower } .
integer = digit { digit } .
terminator = ";" .
lower = "a" … "z" .
digit = "0" … "9" .
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	out, err := run(t, "let abc = 1;", "check", "--grammar", path, "--start", "Decl")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted")

	_, err = run(t, "let ABC = 1;", "check", "--grammar", path, "--start", "Decl")
	require.EqualError(t, err, "input rejected: syntax_error")
}

func TestTokensDeepNesting(t *testing.T) {
	input := "public static void m(){" + strings.Repeat("{", 1_000_000)
	out, err := run(t, input, "tokens", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"verdict": "tokenized"`)
}

func TestCheckDeepNesting(t *testing.T) {
	input := "public static void m(){" + strings.Repeat("{", 1_000_000) + strings.Repeat("}", 1_000_001)
	out, err := run(t, input, "check")
	require.EqualError(t, err, "input rejected: syntax_error")
	assert.Contains(t, out, "nesting exceeds 20000 levels")
}
