// Package linkcheck verifies that internal links in a built site resolve.
package linkcheck

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

// Link is a reference found in an HTML document.
type Link struct {
	URL       string // raw attribute value
	Text      string // link text, alt or rel
	Tag       string // a, img, link, script, ...
	Attribute string // href or src
}

// linkAttrs maps element names to the attribute that carries their reference.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"source": "src",
	"video":  "src",
	"audio":  "src",
}

// ExtractLinks extracts all references from an HTML file.
func ExtractLinks(htmlPath string) ([]Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").
			WithContext("html_path", htmlPath).Build()
	}
	defer func() {
		_ = file.Close()
	}()

	return ExtractLinksFromReader(file)
}

// ExtractLinksFromReader extracts all references from an HTML reader.
func ExtractLinksFromReader(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := linkAttrs[n.Data]; ok {
				if val := getAttr(n, attr); val != "" {
					links = append(links, Link{URL: val, Text: linkText(n), Tag: n.Data, Attribute: attr})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func linkText(n *html.Node) string {
	switch n.Data {
	case "a":
		return extractText(n)
	case "img":
		return getAttr(n, "alt")
	case "link":
		return getAttr(n, "rel")
	}
	return ""
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return strings.TrimSpace(text.String())
}
