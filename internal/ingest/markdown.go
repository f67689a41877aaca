package ingest

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdownFlattener reduces markdown to plain text for embedding and pulls
// a document title out of the heading structure.
type markdownFlattener struct {
	parser goldmark.Markdown
}

func newMarkdownFlattener() *markdownFlattener {
	return &markdownFlattener{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// flatten returns the plain text of the document, one block per line, and
// the title: the first level-1 heading, or the first level-2 heading when
// no level-1 exists, or the source id with its words capitalized.
func (f *markdownFlattener) flatten(content []byte, sourceID string) (plain, title string) {
	if len(content) == 0 {
		return "", titleFromSourceID(sourceID)
	}

	reader := text.NewReader(content)
	doc := f.parser.Parser().Parse(reader)

	var firstH1, firstH2 string
	var blocks []string

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		blockText := extractText(node, content)
		if blockText == "" {
			continue
		}
		blocks = append(blocks, blockText)

		if heading, ok := node.(*ast.Heading); ok {
			switch {
			case heading.Level == 1 && firstH1 == "":
				firstH1 = blockText
			case heading.Level == 2 && firstH2 == "":
				firstH2 = blockText
			}
		}
	}

	title = firstH1
	if title == "" {
		title = firstH2
	}
	if title == "" {
		title = titleFromSourceID(sourceID)
	}
	return strings.Join(blocks, "\n"), title
}

// extractText collects the text content of a node's subtree.
func extractText(n ast.Node, content []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

// titleFromSourceID turns an identifier like "notes/dog-care.md" into
// "Dog Care".
func titleFromSourceID(sourceID string) string {
	name := sourceID
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	name = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
