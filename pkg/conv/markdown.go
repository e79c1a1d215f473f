package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	pagePolicy = bluemonday.NewPolicy()
)

func init() {
	// Inline formatting only; fact panels never carry headings, images or raw HTML.
	pagePolicy.AllowElements("p", "br", "b", "strong", "i", "em", "s", "del", "code", "pre", "blockquote")
	pagePolicy.AllowAttrs("href").OnElements("a")
}

// MarkdownToHTML renders md and strips everything outside the inline allow-list.
// The result is safe to embed in a page as-is.
func MarkdownToHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(pagePolicy.SanitizeBytes(unsafeHTML))
}
