package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-edifmt/formatter"
	"github.com/arloliu/go-edifmt/internal/buildinfo"
	"github.com/arloliu/go-edifmt/logger"
)

const (
	packedDoc    = "UNA:+.? 'UNB+IATB:1+6XPPC:ZZ+LHPPC:ZZ+940101:0950+1'UNH+1+PAORES:93:1:IA'UNZ+1+1'"
	formattedDoc = "UNA:+.? '\nUNB+IATB:1+6XPPC:ZZ+LHPPC:ZZ+940101:0950+1'\nUNH+1+PAORES:93:1:IA'\nUNZ+1+1'\n"
)

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()

	prev := logger.GetLogger()
	t.Cleanup(func() { logger.SetDefault(prev) })

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestRoot_FormatFile(t *testing.T) {
	require := require.New(t)

	path := writeFile(t, "order.edi", packedDoc)

	res := execute(t, "", path)
	require.NoError(res.err)
	require.Empty(res.stdout)
	require.Equal(formattedDoc, readFile(t, path))

	// second run leaves the file alone
	res = execute(t, "", "--log-level", "debug", path)
	require.NoError(res.err)
	require.Contains(res.stderr, "already formatted, skipping")
	require.Equal(formattedDoc, readFile(t, path))
}

func TestRoot_DryRun(t *testing.T) {
	require := require.New(t)

	path := writeFile(t, "order.edi", packedDoc)

	res := execute(t, "", "--dry-run", path)
	require.NoError(res.err)
	require.Equal(formattedDoc, res.stdout)
	require.Contains(res.stderr, "running in dry-run mode")
	require.Equal(packedDoc, readFile(t, path))
}

func TestRoot_Stdin(t *testing.T) {
	require := require.New(t)

	tests := []struct {
		desc     string
		stdin    string
		args     []string
		expected string
	}{
		{
			desc:     "packed document",
			stdin:    packedDoc,
			args:     []string{"--stdin"},
			expected: formattedDoc,
		},
		{
			desc:     "CRLF document",
			stdin:    strings.ReplaceAll(formattedDoc, "\n", "\r\n"),
			args:     []string{"--stdin", "--crlf"},
			expected: formattedDoc,
		},
		{
			desc:     "missing header",
			stdin:    "UNH+1+PAORES:93:1:IA'UNT+2+1'",
			args:     []string{"--stdin", "--default-header"},
			expected: "UNA:+.? '\nUNH+1+PAORES:93:1:IA'\nUNT+2+1'\n",
		},
	}

	for i, test := range tests {
		t.Logf("Test #%d: %s", i, test.desc)

		res := execute(t, test.stdin, test.args...)
		require.NoError(res.err)
		require.Equal(test.expected, res.stdout)
	}
}

func TestRoot_ConfigFile(t *testing.T) {
	require := require.New(t)

	cfgPath := writeFile(t, "edi-format.yaml", "crlf: true\nlog_format: console\n")

	res := execute(t, strings.ReplaceAll(formattedDoc, "\n", "\r\n"), "--stdin", "--config", cfgPath)
	require.NoError(res.err)
	require.Equal(formattedDoc, res.stdout)

	// flags win over the file
	res = execute(t, "UNA:+.? 'A'\r\nB'", "--stdin", "--config", cfgPath, "--crlf=false")
	require.NoError(res.err)
	require.Equal("UNA:+.? '\nA'\n\rB'\n", res.stdout)
}

func TestRoot_Errors(t *testing.T) {
	require := require.New(t)

	res := execute(t, "")
	require.ErrorIs(res.err, errMissingPath)
	require.Contains(res.stderr, errMissingPath.Error())

	res = execute(t, "", "--bogus", "order.edi")
	require.Error(res.err)
	require.Contains(res.stderr, "unknown flag: --bogus")

	res = execute(t, packedDoc, "--stdin", "order.edi")
	require.ErrorIs(res.err, errPathInStdin)

	res = execute(t, packedDoc, "--stdin", "--log-level", "verbose")
	require.Error(res.err)

	res = execute(t, packedDoc, "--stdin", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(res.err)

	res = execute(t, "a", "b", "c")
	require.Error(res.err)
	require.Contains(res.stderr, "accepts at most 1 arg(s)")

	res = execute(t, "UNA:+", "--stdin")
	require.True(formatter.IsKind(res.err, formatter.KindTruncatedHeader))
	require.Empty(res.stdout)
	require.Contains(res.stderr, "Error: ")

	path := writeFile(t, "order.edi", "XXX:+.? 'A'B'")
	res = execute(t, "", "--strict", path)
	require.True(formatter.IsKind(res.err, formatter.KindInvalidMarker))
	require.Equal("XXX:+.? 'A'B'", readFile(t, path))
}

func TestRoot_Version(t *testing.T) {
	require := require.New(t)

	res := execute(t, "", "--version")
	require.NoError(res.err)
	require.Equal(buildinfo.String()+"\n", res.stdout)
}
