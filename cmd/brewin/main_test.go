package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const helloProgram = `{
  "type": "Program",
  "functions": [
    {"type": "FunctionDefinition", "name": "main", "statements": [
      {"type": "FunctionCall", "name": "print", "args": [{"type": "StringLiteral", "value": "hello"}]}
    ]}
  ]
}`

const echoProgram = `type: Program
functions:
  - type: FunctionDefinition
    name: main
    statements:
      - type: VariableDefinition
        name: n
      - type: Assignment
        name: n
        expression:
          type: FunctionCall
          name: inputi
          args:
            - type: StringLiteral
              value: "number:"
      - type: FunctionCall
        name: print
        args:
          - type: BinaryExpression
            operator: "+"
            left: {type: Identifier, name: n}
            right: {type: IntegerLiteral, value: 1}
`

const typeErrorProgram = `{
  "type": "Program",
  "functions": [
    {"type": "FunctionDefinition", "name": "main", "statements": [
      {"type": "FunctionCall", "name": "print", "args": [{"type": "StringLiteral", "value": "before"}]},
      {"type": "FunctionCall", "name": "print", "args": [
        {"type": "BinaryExpression", "operator": "-",
         "left": {"type": "StringLiteral", "value": "a"},
         "right": {"type": "IntegerLiteral", "value": 1}}
      ]}
    ]}
  ]
}`

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// runCLI executes run with swapped standard streams inside dir.
func runCLI(t *testing.T, dir, input string, args ...string) cliResult {
	t.Helper()
	t.Setenv("BREWIN_LOG_LEVEL", "")
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	defer func() {
		if chdirErr := os.Chdir(oldWD); chdirErr != nil {
			t.Fatalf("restore working directory: %v", chdirErr)
		}
	}()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}

	var out, errOut bytes.Buffer
	oldIn, oldOut, oldErr := stdin, stdout, stderr
	stdin, stdout, stderr = strings.NewReader(input), &out, &errOut
	defer func() {
		stdin, stdout, stderr = oldIn, oldOut, oldErr
	}()

	code := run(args)
	return cliResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRunEntryDirectFileNoConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hello.json"), helloProgram)

	res := runCLI(t, dir, "", "run", "hello.json")
	if res.code != exitOK {
		t.Fatalf("exit code %d, want %d (stderr %q)", res.code, exitOK, res.stderr)
	}
	if res.stdout != "hello\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestRunShortcutAcceptsProgramFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "echo.yml"), echoProgram)

	res := runCLI(t, dir, "41\n", "echo.yml")
	if res.code != exitOK {
		t.Fatalf("exit code %d, want %d (stderr %q)", res.code, exitOK, res.stderr)
	}
	if res.stdout != "number:\n42\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestRunUsesConfigEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "brewin.yml"), `
name: demo
entry: programs/hello.json
console:
  line_editing: false
`)
	writeFile(t, filepath.Join(dir, "programs", "hello.json"), helloProgram)
	child := filepath.Join(dir, "nested")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	res := runCLI(t, child, "", "run")
	if res.code != exitOK {
		t.Fatalf("exit code %d, want %d (stderr %q)", res.code, exitOK, res.stderr)
	}
	if res.stdout != "hello\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestRunWithoutEntryFails(t *testing.T) {
	res := runCLI(t, t.TempDir(), "", "run")
	if res.code != exitFailure {
		t.Fatalf("exit code %d, want %d", res.code, exitFailure)
	}
	if !strings.Contains(res.stderr, "requires a program file") {
		t.Fatalf("stderr = %q", res.stderr)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "brewin.yml"), "name: demo\nunknown_field: 1\n")
	writeFile(t, filepath.Join(dir, "hello.json"), helloProgram)

	res := runCLI(t, dir, "", "hello.json")
	if res.code != exitFailure {
		t.Fatalf("exit code %d, want %d", res.code, exitFailure)
	}
	if !strings.Contains(res.stderr, "failed to load config") {
		t.Fatalf("stderr = %q", res.stderr)
	}
}

func TestProgramErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.json"), typeErrorProgram)

	res := runCLI(t, dir, "", "bad.json")
	if res.code != exitProgramError {
		t.Fatalf("exit code %d, want %d", res.code, exitProgramError)
	}
	if res.stdout != "before\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
	if res.stderr != "TypeError: Incompatible types for arithmetic operation\n" {
		t.Fatalf("stderr = %q", res.stderr)
	}
}

func TestInvalidInputExitCode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "echo.yml"), echoProgram)

	res := runCLI(t, dir, "forty-one\n", "echo.yml")
	if res.code != exitFailure {
		t.Fatalf("exit code %d, want %d", res.code, exitFailure)
	}
	if !strings.Contains(res.stderr, "runtime error") {
		t.Fatalf("stderr = %q", res.stderr)
	}
}

func TestUnsupportedProgramFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.brewin"), "func main() {}")

	res := runCLI(t, dir, "", "main.brewin")
	if res.code != exitFailure {
		t.Fatalf("exit code %d, want %d", res.code, exitFailure)
	}
	if !strings.Contains(res.stderr, "failed to load program") {
		t.Fatalf("stderr = %q", res.stderr)
	}
}

func TestVersionAndHelp(t *testing.T) {
	dir := t.TempDir()
	res := runCLI(t, dir, "", "--version")
	if res.code != exitOK || strings.TrimSpace(res.stdout) != cliToolVersion {
		t.Fatalf("--version: code %d stdout %q", res.code, res.stdout)
	}
	res = runCLI(t, dir, "", "--help")
	if res.code != exitOK || !strings.Contains(res.stderr, "Usage:") {
		t.Fatalf("--help: code %d stderr %q", res.code, res.stderr)
	}
	res = runCLI(t, dir, "")
	if res.code != exitFailure {
		t.Fatalf("no args: code %d", res.code)
	}
}

func TestDebugLoggingGoesToStderr(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "brewin.yml"), "log_level: debug\n")
	writeFile(t, filepath.Join(dir, "hello.json"), helloProgram)

	res := runCLI(t, dir, "", "hello.json")
	if res.code != exitOK {
		t.Fatalf("exit code %d (stderr %q)", res.code, res.stderr)
	}
	if res.stdout != "hello\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "run started") {
		t.Fatalf("expected debug trace on stderr, got %q", res.stderr)
	}
}

func TestParseLogLevelDefaultsToWarn(t *testing.T) {
	if got := parseLogLevel("bogus"); got != parseLogLevel("warn") {
		t.Fatalf("parseLogLevel(bogus) = %v", got)
	}
	if parseLogLevel("DEBUG") == parseLogLevel("warn") {
		t.Fatalf("parseLogLevel must be case-insensitive")
	}
}

