package sqlite

import (
	"testing"
)

func TestConvertWebsearchToFTS5(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple term",
			input:    "smith",
			expected: "smith",
		},
		{
			name:     "multiple terms",
			input:    "john smith",
			expected: "john AND smith",
		},
		{
			name:     "explicit AND",
			input:    "smith AND jones",
			expected: "smith AND jones",
		},
		{
			name:     "explicit OR",
			input:    "smith OR jones",
			expected: "smith OR jones",
		},
		{
			name:     "negation",
			input:    "smith -jones",
			expected: "smith AND NOT jones",
		},
		{
			name:     "phrase",
			input:    `"john smith"`,
			expected: `"john smith"`,
		},
		{
			name:     "phrase with other term",
			input:    `"john smith" boston`,
			expected: `"john smith" AND boston`,
		},
		{
			name:     "gramps id prefix",
			input:    "I00*",
			expected: "I00*",
		},
		{
			name:     "tabs separate terms",
			input:    "anna\tmaria",
			expected: "anna AND maria",
		},
		{
			name:     "prefix search",
			input:    "smith*",
			expected: "smith*",
		},
		{
			name:     "complex query",
			input:    `"john smith" -jones boston OR salem`,
			expected: `"john smith" AND NOT jones AND boston OR salem`,
		},
		{
			name:     "NOT operator",
			input:    "smith NOT jones",
			expected: "smith NOT jones",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertWebsearchToFTS5(tt.input)
			if result != tt.expected {
				t.Errorf("convertWebsearchToFTS5(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
