package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		expectedEntries int
		expectedName    string
		expectedImage   string
		expectedAnswer  string
	}{
		{
			name:            "Simple entry",
			input:           "N: Limits\nI: scans/limits.png\nA: 1/2",
			expectedEntries: 1,
			expectedName:    "Limits",
			expectedImage:   "scans/limits.png",
			expectedAnswer:  "1/2",
		},
		{
			name: "Multiline answer",
			input: `
N: Primary colors
I: colors.png
A: Red
Blue
Yellow
`,
			expectedEntries: 1,
			expectedName:    "Primary colors",
			expectedImage:   "colors.png",
			expectedAnswer:  "Red\nBlue\nYellow",
		},
		{
			name: "Two entries split by name",
			input: `
N: First
I: first.png
A: First answer

N: Second
I: second.png
A: Second answer
`,
			expectedEntries: 2,
		},
		{
			name: "Two entries split by separator",
			input: `
I: first.png
A: First answer
---
I: second.png
A: Second answer
---
`,
			expectedEntries: 2,
		},
		{
			name:            "Fields in any order",
			input:           "A: 42\nN: Answer first\nI: q.png",
			expectedEntries: 2,
		},
		{
			name:            "No entries, just text",
			input:           "This is a file with no entries.",
			expectedEntries: 0,
		},
		{
			name:            "Prefixes with no space",
			input:           "N:Name\nI:img.png\nA:Answer",
			expectedEntries: 1,
			expectedName:    "Name",
			expectedImage:   "img.png",
			expectedAnswer:  "Answer",
		},
		{
			name:            "Windows line endings",
			input:           "N: Name\r\nI: img.png\r\nA: line one\r\nline two\r\n",
			expectedEntries: 1,
			expectedName:    "Name",
			expectedImage:   "img.png",
			expectedAnswer:  "line one\nline two",
		},
		{
			name:            "Incomplete entry is still returned",
			input:           "N: Only a name",
			expectedEntries: 1,
			expectedName:    "Only a name",
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
				e := entries[0]
				if e.Name != tc.expectedName {
					t.Errorf("Expected Name to be '%s', but got '%s'", tc.expectedName, e.Name)
				}
				if e.ImagePath != tc.expectedImage {
					t.Errorf("Expected ImagePath to be '%s', but got '%s'", tc.expectedImage, e.ImagePath)
				}
				if e.Answer != tc.expectedAnswer {
					t.Errorf("Expected Answer to be '%s', but got '%s'", tc.expectedAnswer, e.Answer)
				}
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mistakes.txt")
	if err := os.WriteFile(path, []byte("N: Q1\nI: a.png\nA: 42\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	entries, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() returned an unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Answer != "42" {
		t.Errorf("Unexpected entries: %+v", entries)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
