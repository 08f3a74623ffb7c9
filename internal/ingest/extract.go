package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// Extraction holds the article text and title pulled out of an HTML
// document.
type Extraction struct {
	Text  string
	Title string
}

// ExtractArticle extracts the main readable text from an HTML document.
// It prefers a single content block (<article>, then <main>, then
// <div id="content">) and falls back to joining all <p> elements,
// prefixed with the page title when one exists.
func ExtractArticle(htmlContent string) (*Extraction, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	ex := &Extraction{Title: findTitle(doc)}

	for _, match := range []func(*html.Node) bool{
		func(n *html.Node) bool { return n.Data == "article" },
		func(n *html.Node) bool { return n.Data == "main" },
		func(n *html.Node) bool { return n.Data == "div" && attrVal(n, "id") == "content" },
	} {
		if block := findElement(doc, match); block != nil {
			ex.Text = NormalizeWhitespace(visibleText(block))
			return ex, nil
		}
	}

	// No content block: join every paragraph, title first.
	var parts []string
	if ex.Title != "" {
		parts = append(parts, ex.Title)
	}
	collectElements(doc, "p", func(n *html.Node) {
		if t := visibleText(n); strings.TrimSpace(t) != "" {
			parts = append(parts, t)
		}
	})
	ex.Text = NormalizeWhitespace(strings.Join(parts, "\n\n"))
	return ex, nil
}

// visibleText walks text nodes, skipping non-content elements
func visibleText(root *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "aside":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)
	return buf.String()
}

func findTitle(doc *html.Node) string {
	title := findElement(doc, func(n *html.Node) bool { return n.Data == "title" })
	if title == nil || title.FirstChild == nil {
		return ""
	}
	return strings.TrimSpace(title.FirstChild.Data)
}

// findElement returns the first element node matching the predicate in
// document order.
func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func collectElements(n *html.Node, tag string, visit func(*html.Node)) {
	if n.Type == html.ElementNode && n.Data == tag {
		visit(n)
		return // Nested <p> inside <p> is invalid anyway
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectElements(c, tag, visit)
	}
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
