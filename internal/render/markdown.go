package render

import (
	"errors"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdown is shared; goldmark parsers keep per-call state in the reader.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// checkMarkdown parses a rendered document and requires it to open with a
// level-1 heading, which the hosting runtime uses as the agent title.
func checkMarkdown(src string) error {
	doc := markdown.Parser().Parse(text.NewReader([]byte(src)))
	first := doc.FirstChild()
	if first == nil {
		return errors.New("document has no content")
	}
	heading, ok := first.(*ast.Heading)
	if !ok || heading.Level != 1 {
		return errors.New("document must start with a level-1 heading")
	}
	return nil
}
