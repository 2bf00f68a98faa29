package docstratum

import "strings"

// Link is a single '- [Title](url): Description' entry inside a section.
type Link struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Line        int    `json:"line"`
}

// CodeBlock records a fenced code block and its language specifier.
type CodeBlock struct {
	Language string `json:"language"`
	Line     int    `json:"line"`
}

// Section is one H2 section of a parsed llms.txt file.
type Section struct {
	Name       string           `json:"name"`
	Canonical  CanonicalSection `json:"canonical,omitempty"`
	Links      []Link           `json:"links,omitempty"`
	CodeBlocks []CodeBlock      `json:"code_blocks,omitempty"`
	Text       string           `json:"text,omitempty"`
	Line       int              `json:"line"`
}

// Empty reports whether the section carries no meaningful content.
func (s Section) Empty() bool {
	return len(s.Links) == 0 && len(s.CodeBlocks) == 0 && strings.TrimSpace(s.Text) == ""
}

// LlmsFile is the parsed model of an llms.txt document: a single H1 title,
// an optional blockquote description, and a list of H2 sections.
type LlmsFile struct {
	Title       string    `json:"title"`
	H1Count     int       `json:"h1_count"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections"`
}

// FindSection returns the first section normalizing to the given
// canonical name.
func (f *LlmsFile) FindSection(canonical CanonicalSection) (Section, bool) {
	for _, s := range f.Sections {
		if s.Canonical == canonical {
			return s, true
		}
	}
	return Section{}, false
}

// Links returns all link entries across all sections.
func (f *LlmsFile) Links() []Link {
	var links []Link
	for _, s := range f.Sections {
		links = append(links, s.Links...)
	}
	return links
}

// ContextDocument is a unit of llms.txt-derived context handed to the
// generative model when producing the enhanced answer.
type ContextDocument struct {
	SourceID SourceID `json:"source_id"`
	Section  string   `json:"section"`
	Content  string   `json:"content"`
}

// Sanitize normalizes whitespace in the document content.
func (d ContextDocument) Sanitize() ContextDocument {
	d.Content = strings.TrimSpace(d.Content)
	d.Content = strings.Join(strings.Fields(d.Content), " ")
	return d
}

// ContextDocuments derives context units from a parsed file: one document
// per non-empty section, carrying the section text and its link entries in
// a compact plain-text form.
func (f *LlmsFile) ContextDocuments(id SourceID) []ContextDocument {
	docs := make([]ContextDocument, 0, len(f.Sections)+1)

	if f.Description != "" {
		docs = append(docs, ContextDocument{
			SourceID: id,
			Section:  f.Title,
			Content:  f.Description,
		}.Sanitize())
	}

	for _, s := range f.Sections {
		if s.Empty() {
			continue
		}
		var b strings.Builder
		if s.Text != "" {
			b.WriteString(s.Text)
			b.WriteString("\n")
		}
		for _, l := range s.Links {
			b.WriteString(l.Title)
			if l.Description != "" {
				b.WriteString(": ")
				b.WriteString(l.Description)
			}
			b.WriteString(" (")
			b.WriteString(l.URL)
			b.WriteString(")\n")
		}
		docs = append(docs, ContextDocument{
			SourceID: id,
			Section:  s.Name,
			Content:  strings.TrimSpace(b.String()),
		})
	}

	return docs
}

// MatchSnippetsToDocuments tries to match model-returned snippets to context
// documents by exact match or by containment. It returns matched documents
// and remaining snippets that could not be matched to any document.
func MatchSnippetsToDocuments(possibleSnippets []string, documents []ContextDocument) ([]ContextDocument, []string) {
	var (
		snippets = make([]string, 0, len(possibleSnippets))
		matched  = make([]ContextDocument, 0, len(documents))
	)

	// Sanitize snippets first. It is not always possible to force the LLM to
	// return snippets exactly matching the documents, so we need to be a bit
	// flexible. Sometimes the model returns multiple snippets separated by
	// new lines as one snippet, so we split and treat each one individually.
	for _, possibleSnippet := range possibleSnippets {
		for _, aSnippet := range strings.Split(possibleSnippet, "\n") {
			if strings.TrimSpace(aSnippet) == "" {
				continue
			}
			snippets = append(snippets, strings.TrimSpace(aSnippet))
		}
	}

	for _, aDocument := range documents {
		if len(snippets) == 0 {
			break
		}
		for i, aSnippet := range snippets {
			if aSnippet == aDocument.Content || strings.Contains(aDocument.Content, aSnippet) {
				matched = append(matched, aDocument)
				if len(snippets) == 1 {
					snippets = nil
					break
				}
				snippets = append(snippets[:i], snippets[i+1:]...)
				break
			}
		}
	}

	if len(matched) == 0 {
		return nil, snippets
	}

	return matched, snippets
}
