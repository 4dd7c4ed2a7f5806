package environment

import (
	"context"
	"strings"
)

// NewDefaultProvider prefers the process environment over values read from
// env files.
func NewDefaultProvider(envFiles ...string) (Provider, error) {
	providers := []Provider{NewOsEnvProvider()}
	if len(envFiles) > 0 {
		fromFiles, err := NewEnvFilesProvider(envFiles)
		if err != nil {
			return nil, err
		}
		providers = append(providers, fromFiles)
	}
	return NewMultiProvider(providers...), nil
}

// Lookup returns the trimmed value of name and whether it is set and
// non-blank.
func Lookup(ctx context.Context, env Provider, name string) (string, bool) {
	v, ok := env.Get(ctx, name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Truthy reports whether name is set to "1" or "true", ignoring case.
func Truthy(ctx context.Context, env Provider, name string) bool {
	v, _ := Lookup(ctx, env, name)
	return v == "1" || strings.EqualFold(v, "true")
}
