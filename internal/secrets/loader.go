// Package secrets resolves API keys and credentials from files or inline values.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or environment.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
}

// IsSet reports whether the source points at any secret at all.
func (s Source) IsSet() bool {
	return strings.TrimSpace(s.File) != "" || strings.TrimSpace(s.Value) != ""
}

// Load returns the resolved secret value from the provided source. When File is
// set it takes precedence over Value. The returned secret is always trimmed. An
// error is returned when neither File nor Value contain a usable secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}

// LoadAll resolves every source, failing on the first one that cannot be loaded.
func LoadAll(srcs ...Source) ([]string, error) {
	values := make([]string, 0, len(srcs))
	for _, src := range srcs {
		value, err := Load(src)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
