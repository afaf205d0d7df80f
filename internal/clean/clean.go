// Package clean normalizes and deduplicates fetched job postings: HTML is
// stripped out of descriptions, whitespace is collapsed, and duplicate rows
// are dropped by a content hash over the identifying fields.
package clean

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/resumatch/resumatch/internal/ingest"
)

// Description flattens a posting description to a single clean line: HTML
// tags and entities removed, line breaks and runs of spaces collapsed.
func Description(raw string) string {
	return strings.Join(strings.Fields(stripHTML(raw)), " ")
}

// stripHTML drops tags and decodes entities, keeping only text content.
// Script and style bodies are skipped entirely.
func stripHTML(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// The html parser recovers from almost anything; if it truly cannot,
		// the raw text is better than nothing.
		return raw
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "br", "p", "li", "div":
				buf.WriteString(" ")
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String()
}

// TitleCase uppercases the first letter of each word, lowering the rest,
// for standardizing job titles.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Posting standardizes a posting's fields in place and returns it.
func Posting(p ingest.Posting) ingest.Posting {
	p.Title = TitleCase(strings.TrimSpace(p.Title))
	p.Company = strings.TrimSpace(p.Company)
	p.Location = strings.TrimSpace(p.Location)
	p.Description = Description(p.Description)
	return p
}

// Postings standardizes every posting in order.
func Postings(postings []ingest.Posting) []ingest.Posting {
	out := make([]ingest.Posting, len(postings))
	for i, p := range postings {
		out[i] = Posting(p)
	}
	return out
}
