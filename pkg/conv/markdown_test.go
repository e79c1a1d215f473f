package conv

import (
	"testing"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello world",
			expected: "<p>Hello world</p>\n",
		},
		{
			name:     "bold text",
			input:    "**bold**",
			expected: "<p><strong>bold</strong></p>\n",
		},
		{
			name:     "italic text",
			input:    "*italic*",
			expected: "<p><em>italic</em></p>\n",
		},
		{
			name:     "strikethrough",
			input:    "~~strikethrough~~",
			expected: "<p><del>strikethrough</del></p>\n",
		},
		{
			name:     "mixed formatting",
			input:    "**Bold** and *italic* with `code`",
			expected: "<p><strong>Bold</strong> and <em>italic</em> with <code>code</code></p>\n",
		},
		{
			name:     "header tags stripped",
			input:    "# Info",
			expected: "Info\n",
		},
		{
			name:     "script tags sanitized",
			input:    "<script>alert('xss')</script>",
			expected: "\n",
		},
		{
			name:     "link with target blank stripped",
			input:    "[link](https://example.com)",
			expected: "<p><a href=\"https://example.com\">link</a></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
