package markdown

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/southpawriter02/docstratum"
)

// Parse walks the goldmark AST of an llms.txt document top to bottom:
// the first H1 becomes the title, a blockquote before the first H2 becomes
// the description, each H2 starts a section, and list links, fenced code
// blocks, and paragraphs attach to the current section.
func (a *Adapter) Parse(ctx context.Context, contents []byte) (*docstratum.LlmsFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := getParser().Parser().Parse(text.NewReader(contents))
	if doc == nil {
		return nil, fmt.Errorf("no markdown document")
	}

	var (
		lines   = newLineIndex(contents)
		f       = &docstratum.LlmsFile{}
		current *docstratum.Section
	)

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			switch node.Level {
			case 1:
				f.H1Count++
				if f.Title == "" {
					f.Title = textOf(node, contents)
				}
			case 2:
				name := textOf(node, contents)
				canonical, _ := docstratum.CanonicalSectionFromName(name)
				f.Sections = append(f.Sections, docstratum.Section{
					Name:      name,
					Canonical: canonical,
					Line:      lines.at(startOffset(node)),
				})
				current = &f.Sections[len(f.Sections)-1]
			}
		case *ast.Blockquote:
			if current == nil && f.Description == "" {
				f.Description = textOf(node, contents)
			} else if current != nil {
				appendText(current, textOf(node, contents))
			}
		case *ast.List:
			if current == nil {
				continue
			}
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				if link, ok := extractLink(item, contents, lines); ok {
					current.Links = append(current.Links, link)
				} else {
					appendText(current, textOf(item, contents))
				}
			}
		case *ast.FencedCodeBlock:
			if current == nil {
				continue
			}
			current.CodeBlocks = append(current.CodeBlocks, docstratum.CodeBlock{
				Language: string(node.Language(contents)),
				Line:     lines.at(startOffset(node)),
			})
		case *ast.Paragraph, *ast.TextBlock:
			if current != nil {
				appendText(current, textOf(n, contents))
			}
		}
	}

	a.logger.Sugar().With(
		"title", f.Title,
		"sections", len(f.Sections),
	).Debug("parsed llms.txt document")

	return f, nil
}

// extractLink pulls a '- [Title](url): Description' entry out of a list
// item. Text following the link node, minus a leading colon, becomes the
// description.
func extractLink(item ast.Node, source []byte, lines lineIndex) (docstratum.Link, bool) {
	var (
		link  *ast.Link
		after strings.Builder
	)

	_ = ast.Walk(item, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if l, ok := n.(*ast.Link); ok && link == nil {
			link = l
			return ast.WalkSkipChildren, nil
		}
		if link == nil {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			after.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})

	if link == nil {
		return docstratum.Link{}, false
	}

	description := strings.TrimSpace(after.String())
	description = strings.TrimSpace(strings.TrimPrefix(description, ":"))

	return docstratum.Link{
		Title:       textOf(link, source),
		URL:         string(link.Destination),
		Description: description,
		Line:        lines.at(startOffset(item)),
	}, true
}

func appendText(section *docstratum.Section, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if section.Text != "" {
		section.Text += "\n"
	}
	section.Text += text
}

// textOf collects the raw text segments beneath a node.
func textOf(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := node.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// startOffset returns the byte offset of the first line of a block node,
// or 0 when the node carries no segments.
func startOffset(n ast.Node) int {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start
	}
	if fc := n.FirstChild(); fc != nil {
		return startOffset(fc)
	}
	return 0
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(source []byte) lineIndex {
	idx := lineIndex{0}
	for i, b := range source {
		if b == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (idx lineIndex) at(offset int) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset })
}
