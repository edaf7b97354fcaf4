package parser

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedEntries int
		expectedTitle   string
		expectedDef     string
		expectedClue    string
	}{
		{
			name:            "Simple title and definition",
			input:           "T: Photosynthesis\nD: Conversion of light into chemical energy",
			expectedEntries: 1,
			expectedTitle:   "Photosynthesis",
			expectedDef:     "Conversion of light into chemical energy",
			expectedClue:    "",
		},
		{
			name:            "Title, definition and clue",
			input:           "T: Mitochondria\nD: The powerhouse of the cell\nC: Think energy",
			expectedEntries: 1,
			expectedTitle:   "Mitochondria",
			expectedDef:     "The powerhouse of the cell",
			expectedClue:    "Think energy",
		},
		{
			name: "Multiline definition",
			input: `
T: Primary colors
D: Red
Blue
Yellow
`,
			expectedEntries: 1,
			expectedTitle:   "Primary colors",
			expectedDef:     "Red\nBlue\nYellow",
			expectedClue:    "",
		},
		{
			name: "Two entries without separator",
			input: `
T: First title
D: First definition

T: Second title
D: Second definition
`,
			expectedEntries: 2,
		},
		{
			name: "Two entries with separator",
			input: `
T: First title
D: First definition
---
T: Second title
D: Second definition
`,
			expectedEntries: 2,
		},
		{
			name:            "No entries, just text",
			input:           "This is a file with no cards.",
			expectedEntries: 0,
		},
		{
			name:            "Prefixes with no space",
			input:           "T:Title\nD:Definition",
			expectedEntries: 1,
			expectedTitle:   "Title",
			expectedDef:     "Definition",
		},
		{
			name:            "Entry without a title is dropped",
			input:           "D: A definition with no title",
			expectedEntries: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Parse() returned an unexpected error: %v", err)
			}

			if len(entries) != tc.expectedEntries {
				t.Fatalf("Expected %d entries, but got %d", tc.expectedEntries, len(entries))
			}

			if tc.expectedEntries == 1 {
				entry := entries[0]
				if entry.Title != tc.expectedTitle {
					t.Errorf("Expected Title to be '%s', but got '%s'", tc.expectedTitle, entry.Title)
				}
				if entry.Definition != tc.expectedDef {
					t.Errorf("Expected Definition to be '%s', but got '%s'", tc.expectedDef, entry.Definition)
				}
				if entry.Clue != tc.expectedClue {
					t.Errorf("Expected Clue to be '%s', but got '%s'", tc.expectedClue, entry.Clue)
				}
			}
		})
	}
}
