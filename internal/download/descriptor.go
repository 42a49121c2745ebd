package download

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Descriptor formats, chosen by file extension
const (
	DescriptorFormatJSON = "json"
	DescriptorFormatYAML = "yaml"
)

// DescriptorEntry names one download source of a descriptor file
type DescriptorEntry struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url" validate:"required"`
}

// LoadDescriptor reads a descriptor file wholesale. The file must hold a
// non-empty sequence of {name, url} records; every record needs a url.
func LoadDescriptor(path string) ([]DescriptorEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDescriptor, err)
	}
	return ParseDescriptor(data, DescriptorFormat(path))
}

// DescriptorFormat returns the format implied by the file extension
func DescriptorFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DescriptorFormatYAML
	default:
		return DescriptorFormatJSON
	}
}

// ParseDescriptor decodes descriptor content in the given format
func ParseDescriptor(data []byte, format string) ([]DescriptorEntry, error) {
	var entries []DescriptorEntry

	var err error
	switch format {
	case DescriptorFormatYAML:
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: malformed %s: %v", ErrDescriptor, format, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrDescriptor, ErrEmptyDescriptor)
	}

	for i := range entries {
		entries[i].Name = strings.TrimSpace(entries[i].Name)
		entries[i].URL = strings.TrimSpace(entries[i].URL)
		if err := validate.Struct(entries[i]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrDescriptor, i, err)
		}
	}

	return entries, nil
}
