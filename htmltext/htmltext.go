// Package htmltext converts HTML articles into the markdown-flavoured plain
// text the analyzers read: '#' headings, '- ' and '1. ' list items,
// **bold**, [text](href) links, ![alt](src) images and blank-line separated
// paragraphs.
package htmltext

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is the text form of an HTML page
type Document struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
	"svg":      true,
	"head":     true,
}

var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// Extract parses an HTML document and renders its body as text
func Extract(r io.Reader) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := collapse(doc.Find("title").First().Text())

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var b blocks
	b.container(root)
	return Document{Title: title, Text: b.String()}, nil
}

// ExtractString is Extract over an in-memory string
func ExtractString(html string) (Document, error) {
	return Extract(strings.NewReader(html))
}

// blocks collects rendered paragraphs. Inline content between block
// elements is buffered and flushed as its own paragraph.
type blocks struct {
	out    []string
	inline strings.Builder
}

func (b *blocks) add(block string) {
	b.flush()
	if block = strings.TrimSpace(block); block != "" {
		b.out = append(b.out, block)
	}
}

func (b *blocks) flush() {
	if text := collapse(b.inline.String()); text != "" {
		b.out = append(b.out, text)
	}
	b.inline.Reset()
}

func (b *blocks) String() string {
	b.flush()
	return strings.Join(b.out, "\n\n")
}

func (b *blocks) container(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		switch {
		case skipped[name]:
		case headingLevels[name] > 0:
			b.add(strings.Repeat("#", headingLevels[name]) + " " + inline(s))
		case name == "p":
			b.add(inline(s))
		case name == "ul":
			b.add(strings.Join(listItems(s, false), "\n"))
		case name == "ol":
			b.add(strings.Join(listItems(s, true), "\n"))
		case name == "pre":
			b.add(s.Text())
		case name == "br":
			b.inline.WriteString(" ")
		case isBlock(name):
			b.flush()
			b.container(s)
		default:
			b.inline.WriteString(" " + inlineNode(s) + " ")
		}
	})
}

func isBlock(name string) bool {
	switch name {
	case "div", "section", "article", "main", "header", "footer", "aside",
		"nav", "blockquote", "figure", "figcaption", "table", "tbody",
		"thead", "tr", "td", "th", "form", "dl", "dd", "dt", "hr", "body", "html":
		return true
	}
	return false
}

// listItems renders the direct li children of a list. Nested lists are
// flattened into the following lines.
func listItems(list *goquery.Selection, ordered bool) []string {
	var lines []string
	n := 0
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		n++
		marker := "- "
		if ordered {
			marker = strconv.Itoa(n) + ". "
		}
		if text := inline(li); text != "" {
			lines = append(lines, marker+text)
		}
		li.ChildrenFiltered("ul, ol").Each(func(_ int, nested *goquery.Selection) {
			lines = append(lines, listItems(nested, goquery.NodeName(nested) == "ol")...)
		})
	})
	return lines
}

// inline renders the phrasing content of sel on a single line.
func inline(sel *goquery.Selection) string {
	var sb strings.Builder
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(inlineNode(s))
	})
	return collapse(sb.String())
}

func inlineNode(s *goquery.Selection) string {
	name := goquery.NodeName(s)
	switch {
	case name == "#text":
		return s.Text()
	case skipped[name], name == "ul", name == "ol":
		return ""
	case name == "br":
		return " "
	case name == "img":
		alt, _ := s.Attr("alt")
		if src, ok := s.Attr("src"); ok {
			return " ![" + collapse(alt) + "](" + src + ") "
		}
		return ""
	case name == "a":
		text := inline(s)
		if href, ok := s.Attr("href"); ok && href != "" && text != "" {
			return "[" + text + "](" + href + ")"
		}
		return text
	case name == "strong", name == "b":
		if text := inline(s); text != "" {
			return "**" + text + "**"
		}
		return ""
	default:
		return inline(s)
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
