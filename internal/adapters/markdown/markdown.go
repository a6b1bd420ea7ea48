package markdown

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// renderer is a goldmark instance configured for safe HTML output with GFM tables.
// Raw HTML in the source is escaped since WithUnsafe is not set.
var renderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// ToHTML converts Markdown to an HTML fragment.
// PRE: src is UTF-8 Markdown
// POST: Returns the rendered fragment or a conversion error
func ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Document wraps an HTML fragment in a minimal printable page.
func Document(title, body string) string {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title></head><body>\n")
	buf.WriteString(body)
	buf.WriteString("</body></html>\n")
	return buf.String()
}
