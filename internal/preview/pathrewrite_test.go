package preview

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRewriteRelativePaths(t *testing.T) {
	base := t.TempDir()
	absBase, err := filepath.Abs(base)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "relative image rewritten",
			input:    `<img src="media/pic.png">`,
			expected: `file://` + filepath.ToSlash(filepath.Join(absBase, "media", "pic.png")),
		},
		{
			name:     "relative link rewritten",
			input:    `<a href="other.md">x</a>`,
			expected: `file://` + filepath.ToSlash(filepath.Join(absBase, "other.md")),
		},
		{
			name:     "absolute url untouched",
			input:    `<img src="https://example.org/pic.png">`,
			expected: `https://example.org/pic.png`,
		},
		{
			name:     "anchor untouched",
			input:    `<a href="#section">x</a>`,
			expected: `#section`,
		},
		{
			name:     "traversal escaping base untouched",
			input:    `<img src="../../etc/passwd">`,
			expected: `../../etc/passwd`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RewriteRelativePaths([]byte(tt.input), base)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			if !strings.Contains(string(got), tt.expected) {
				t.Errorf("RewriteRelativePaths() = %q, want it to contain %q", got, tt.expected)
			}
		})
	}
}
