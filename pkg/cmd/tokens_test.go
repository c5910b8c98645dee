package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birendpatel/lemon/pkg/diag"
)

func TestRunTokens_ScansFileToEOF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.lem")

	err := os.WriteFile(path, []byte("let x = 1;"), 0644)
	assert.NoError(t, err)

	err = runTokens(path, diag.Trace{})

	assert.NoError(t, err)
}

func TestRunTokens_MissingFileReturnsError(t *testing.T) {
	err := runTokens(filepath.Join(t.TempDir(), "missing.lem"), diag.Trace{})

	assert.Error(t, err)
}
