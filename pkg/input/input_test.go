package input

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLineKeepsBufferedInput(t *testing.T) {
	rd := NewReader(strings.NewReader("first\r\nsecond\nlast"))

	for _, want := range []string{"first", "second", "last"} {
		got, err := rd.ReadLine(t.Context())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := rd.ReadLine(t.Context())
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLineCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewReader(pr).ReadLine(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
