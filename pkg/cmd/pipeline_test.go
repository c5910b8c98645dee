package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birendpatel/lemon/pkg/diag"
)

func writeTempModule(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.lem")

	err := os.WriteFile(path, []byte(contents), 0644)
	assert.NoError(t, err)

	return path
}

func TestRunBuild_CleanModuleExitsZero(t *testing.T) {
	path := writeTempModule(t, `func main() : int32 {
	return 0;
}
`)

	code := runBuild([]string{path}, diag.Trace{})

	assert.Equal(t, 0, code)
}

func TestRunBuild_UndeclaredIdentifierExitsOne(t *testing.T) {
	path := writeTempModule(t, `func main() : int32 {
	return undeclaredName;
}
`)

	code := runBuild([]string{path}, diag.Trace{})

	assert.Equal(t, 1, code)
}

func TestRunBuild_MissingFileExitsOne(t *testing.T) {
	code := runBuild([]string{filepath.Join(t.TempDir(), "missing.lem")}, diag.Trace{})

	assert.Equal(t, 1, code)
}

func TestResolveBuffer_ReportsOkForCleanSource(t *testing.T) {
	_, ok := resolveBuffer("<test>", []byte(`func main() : int32 {
	return 0;
}
`), diag.Trace{})

	assert.True(t, ok)
}

func TestResolveBuffer_ReportsNotOkForBadSource(t *testing.T) {
	_, ok := resolveBuffer("<test>", []byte(`func main() : int32 {
	return bogus;
}
`), diag.Trace{})

	assert.False(t, ok)
}
