package environment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnvFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env.local")
	require.NoError(t, os.WriteFile(path, []byte(`
# hosted backends
GROQ_API_KEY=gsk_test
export CEREBRAS_API_KEY = "csk test"
USE_CEREBRAS=
`), 0o600))

	pairs, err := ReadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, []KeyValuePair{
		{Key: "GROQ_API_KEY", Value: "gsk_test"},
		{Key: "CEREBRAS_API_KEY", Value: "csk test"},
		{Key: "USE_CEREBRAS", Value: ""},
	}, pairs)
}

func TestReadEnvFileInvalidLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT A PAIR\n"), 0o600))

	_, err := ReadEnvFile(path)
	require.Error(t, err)
}

func TestEnvFilesProviderLaterFileWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "a.env")
	second := filepath.Join(dir, "b.env")
	require.NoError(t, os.WriteFile(first, []byte("KEY=one\nONLY_FIRST=x\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("KEY=two\n"), 0o600))

	p, err := NewEnvFilesProvider([]string{first, second})
	require.NoError(t, err)

	v, ok := p.Get(t.Context(), "KEY")
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	v, ok = p.Get(t.Context(), "ONLY_FIRST")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = p.Get(t.Context(), "MISSING")
	assert.False(t, ok)
}

func TestMultiProviderOrder(t *testing.T) {
	t.Parallel()

	p := NewMultiProvider(
		NewKeyValueProvider(map[string]string{"A": "first", "EMPTY": ""}),
		NewKeyValueProvider(map[string]string{"A": "second", "B": "b", "EMPTY": "later"}),
	)

	v, _ := p.Get(t.Context(), "A")
	assert.Equal(t, "first", v)
	v, _ = p.Get(t.Context(), "B")
	assert.Equal(t, "b", v)

	v, ok := p.Get(t.Context(), "EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	env := NewKeyValueProvider(map[string]string{
		"ONE":   "1",
		"TRUE":  " True ",
		"ZERO":  "0",
		"BLANK": "  ",
	})

	assert.True(t, Truthy(t.Context(), env, "ONE"))
	assert.True(t, Truthy(t.Context(), env, "TRUE"))
	assert.False(t, Truthy(t.Context(), env, "ZERO"))
	assert.False(t, Truthy(t.Context(), env, "BLANK"))
	assert.False(t, Truthy(t.Context(), env, "UNSET"))

	_, ok := Lookup(t.Context(), env, "BLANK")
	assert.False(t, ok)
}

func TestRequiredEnvError(t *testing.T) {
	t.Parallel()

	err := &RequiredEnvError{Missing: []string{"GROQ_API_KEY", "OTHER"}}
	assert.Equal(t, "missing required environment variables: GROQ_API_KEY, OTHER", err.Error())
}
