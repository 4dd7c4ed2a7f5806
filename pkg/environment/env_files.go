package environment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dexora-ai/dexora/pkg/paths"
)

type KeyValuePair struct {
	Key   string
	Value string
}

// NewEnvFilesProvider reads dotenv files. Later files win.
func NewEnvFilesProvider(files []string) (*KeyValueProvider, error) {
	values := map[string]string{}
	for _, f := range files {
		p, err := expandTildePath(f)
		if err != nil {
			return nil, err
		}
		pairs, err := ReadEnvFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading env file %s: %w", f, err)
		}
		for _, kv := range pairs {
			values[kv.Key] = kv.Value
		}
	}
	return NewKeyValueProvider(values), nil
}

// expandTildePath expands ~ in file paths to the user's home directory
func expandTildePath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}

	homeDir := paths.GetHomeDir()
	if homeDir == "" {
		return "", fmt.Errorf("failed to get user home directory")
	}

	if p == "~" {
		return homeDir, nil
	}

	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir, p[2:]), nil
	}

	return "", fmt.Errorf("unsupported tilde expansion format: %s", p)
}

// ReadEnvFile parses KEY=VALUE lines. Blank lines, comments and an optional
// "export " prefix are accepted; values may be wrapped in double quotes.
func ReadEnvFile(absolutePath string) ([]KeyValuePair, error) {
	buf, err := os.ReadFile(absolutePath)
	if err != nil {
		return nil, err
	}

	var lines []KeyValuePair

	for line := range strings.SplitSeq(string(buf), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid env file line: %s", line)
		}

		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)

		if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
			v = v[1 : len(v)-1]
		}

		lines = append(lines, KeyValuePair{
			Key:   k,
			Value: v,
		})
	}

	return lines, nil
}
