// Package env reads KEY=VALUE files such as ".env" and layers them under the
// process environment.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultFile is read from the working directory when present.
const DefaultFile = ".env"

// Read parses path. Empty lines and lines starting with # are skipped, an
// "export " prefix is allowed and surrounding quotes are removed from values.
// A missing file yields an empty map and no error.
func Read(path string) (map[string]string, error) {
	vars := make(map[string]string)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("env: %s:%d: want KEY=VALUE", path, n)
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("env: %s: %w", path, err)
	}
	return vars, nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// Getenv returns a lookup where a non-empty process variable wins over the same
// key in vars.
func Getenv(vars map[string]string) func(string) string {
	return func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return vars[key]
	}
}
