package environment

import (
	"context"
	"os"
)

// OsEnvProvider reads variables from the process environment.
type OsEnvProvider struct{}

func NewOsEnvProvider() *OsEnvProvider {
	return &OsEnvProvider{}
}

func (p *OsEnvProvider) Get(_ context.Context, name string) (string, bool) {
	return os.LookupEnv(name)
}

// KeyValueProvider serves variables from a fixed map.
type KeyValueProvider struct {
	values map[string]string
}

func NewKeyValueProvider(values map[string]string) *KeyValueProvider {
	return &KeyValueProvider{values: values}
}

func (p *KeyValueProvider) Get(_ context.Context, name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}
