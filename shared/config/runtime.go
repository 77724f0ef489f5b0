package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadRuntime reads the flat key/value file the client is deployed with,
// e.g. `VITE_API_URL: https://api.example.com`. An empty path yields an empty map.
func LoadRuntime(filePath string) (map[string]string, error) {
	values := map[string]string{}
	if filePath == "" {
		return values, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read runtime config: %w", err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse runtime config %s: %w", filePath, err)
	}
	return values, nil
}
