package conv

import (
	"strings"

	"github.com/inbucket/html2text"
)

// PlainText flattens an HTML document into readable text, dropping links.
// Only pass input that is known to be HTML: a literal "<" in plain text is
// read as the start of a tag. On a parse failure the trimmed input is returned.
func PlainText(s string) string {
	out, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(out)
}
