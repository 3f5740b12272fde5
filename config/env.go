package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/xraph/strata"
)

// FromEnvFiles reads dotenv files (".env" when none are given) and returns
// one value provider per variable. A key set in a later file overrides the
// same key from an earlier one.
func FromEnvFiles(files []string, opts ...Option) ([]strata.Provider, error) {
	values, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("config: read env files: %w", err)
	}

	return providers(values, opts), nil
}

// FromEnv parses dotenv content and returns one value provider per variable.
func FromEnv(content string, opts ...Option) ([]strata.Provider, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	return providers(values, opts), nil
}
