package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birendpatel/lemon/pkg/diag"
)

func TestFlushREPLBuffer_NamesBuffersSequentially(t *testing.T) {
	var buf strings.Builder
	buf.WriteString("let x = 1;\n")

	n := 0

	flushREPLBuffer(&buf, &n, diag.Trace{})
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, buf.Len())

	buf.WriteString("let y = 2;\n")
	flushREPLBuffer(&buf, &n, diag.Trace{})
	assert.Equal(t, 2, n)
}
