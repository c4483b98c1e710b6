package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// LoadFixture reads a test fixture relative to the calling package.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(path))
}

// LoadGolden decodes a JSON golden file into v.
func LoadGolden(path string, v any) error {
	data, err := LoadFixture(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
