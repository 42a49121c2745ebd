package download

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptor_JSON(t *testing.T) {
	entries, err := ParseDescriptor([]byte(`[{"name":" A ","url":"u1"},{"url":"u2"}]`), DescriptorFormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []DescriptorEntry{{Name: "A", URL: "u1"}, {URL: "u2"}}, entries)
}

func TestParseDescriptor_YAML(t *testing.T) {
	content := `
- name: Intro
  url: https://www.youtube.com/watch?v=1
- name: Outro
  url: https://www.youtube.com/watch?v=2
`
	entries, err := ParseDescriptor([]byte(content), DescriptorFormatYAML)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Outro", entries[1].Name)
}

func TestParseDescriptor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  string
		empty   bool
	}{
		{"json null", `null`, DescriptorFormatJSON, true},
		{"json object instead of list", `{"name":"A","url":"u1"}`, DescriptorFormatJSON, false},
		{"blank url", `[{"name":"A","url":"  "}]`, DescriptorFormatJSON, false},
		{"yaml empty", ``, DescriptorFormatYAML, true},
		{"yaml scalar", `just text`, DescriptorFormatYAML, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDescriptor([]byte(tt.content), tt.format)
			require.ErrorIs(t, err, ErrDescriptor)
			assert.Equal(t, tt.empty, errors.Is(err, ErrEmptyDescriptor))
		})
	}
}

func TestDescriptorFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"songs.json", DescriptorFormatJSON},
		{"songs.YAML", DescriptorFormatYAML},
		{"songs.yml", DescriptorFormatYAML},
		{"songs", DescriptorFormatJSON},
	}

	for _, test := range tests {
		if result := DescriptorFormat(test.path); result != test.expected {
			t.Errorf("DescriptorFormat(%q) = %s, expected %s", test.path, result, test.expected)
		}
	}
}
