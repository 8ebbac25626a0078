package writeback

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-edifmt/logger"
)

const (
	packedDoc    = "UNA:+.? 'UNB+IATB:1+6XPPC:ZZ+LHPPC:ZZ+940101:0950+1'UNH+1+PAORES:93:1:IA'UNZ+1+1'"
	formattedDoc = "UNA:+.? '\nUNB+IATB:1+6XPPC:ZZ+LHPPC:ZZ+940101:0950+1'\nUNH+1+PAORES:93:1:IA'\nUNZ+1+1'\n"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// tempFiles returns the leftover temporary files in dir.
func tempFiles(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, TempPattern))
	require.NoError(t, err)

	return matches
}

// newMockLogger returns a mock logger which accepts the path scoped child logger and debug messages.
func newMockLogger(t *testing.T) *logger.MockLogger {
	t.Helper()

	m := logger.NewMockLogger()
	m.On("With", "path", mock.Anything).Return(m).Maybe()
	m.On("Debug", mock.Anything, mock.Anything).Maybe()

	return m
}
