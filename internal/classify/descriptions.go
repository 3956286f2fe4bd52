package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadDescriptionRecords reads a description feedback file. A missing
// file yields no records.
func LoadDescriptionRecords(path string) ([]DescriptionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading descriptions: %w", err)
	}
	var records []DescriptionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing descriptions: %w", err)
	}
	return records, nil
}

// SaveDescriptionRecords writes description feedback atomically.
func SaveDescriptionRecords(path string, records []DescriptionRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating descriptions directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding descriptions: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}
